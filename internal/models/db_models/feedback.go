package db_models

type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "pending"
	FeedbackApproved FeedbackStatus = "approved"
	FeedbackRejected FeedbackStatus = "rejected"
)

func (s FeedbackStatus) Valid() bool {
	switch s {
	case FeedbackPending, FeedbackApproved, FeedbackRejected:
		return true
	}
	return false
}

type Feedback struct {
	BaseModel
	Name      string         `gorm:"type:text;not null" json:"name"`
	Comment   string         `gorm:"type:text;not null" json:"comment"`
	Latitude  float64        `gorm:"not null" json:"latitude"`
	Longitude float64        `gorm:"not null" json:"longitude"`
	ImageURL  *string        `gorm:"column:image_url" json:"image_url"`
	Status    FeedbackStatus `gorm:"type:text;not null;default:pending" json:"status"`
}

func (Feedback) TableName() string { return "feedback" }
