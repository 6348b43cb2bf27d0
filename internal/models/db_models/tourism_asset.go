package db_models

type TourismAsset struct {
	BaseModel
	Name        string  `gorm:"type:text;not null"`
	Category    string  `gorm:"type:text;not null;index"`
	Description *string `gorm:"type:text"`
	Latitude    float64 `gorm:"not null"`
	Longitude   float64 `gorm:"not null"`
	ImageURL    *string `gorm:"column:image_url"`
}

func (TourismAsset) TableName() string { return "tourism_assets" }
