package db_models

type AdminUser struct {
	BaseModel
	Username     string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
}

func (AdminUser) TableName() string { return "admin_users" }
