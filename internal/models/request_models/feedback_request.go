package request_models

type SubmitFeedbackRequest struct {
	Name      string     `json:"name" form:"name"`
	Comment   string     `json:"comment" form:"comment"`
	Latitude  Coordinate `json:"latitude" form:"latitude"`
	Longitude Coordinate `json:"longitude" form:"longitude"`
}

type UpdateFeedbackStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required"`
}
