package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nwptourism/internal/models/db_models"
)

type AdminUserRepository interface {
	FindByUsername(ctx context.Context, username string) (*db_models.AdminUser, error)
	Upsert(ctx context.Context, user *db_models.AdminUser) error
}

type adminUserRepository struct {
	db *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) AdminUserRepository {
	return &adminUserRepository{db: db}
}

func (r *adminUserRepository) FindByUsername(ctx context.Context, username string) (*db_models.AdminUser, error) {
	var user db_models.AdminUser
	err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Upsert inserts the user or replaces the password of an existing username.
func (r *adminUserRepository) Upsert(ctx context.Context, user *db_models.AdminUser) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash"}),
	}).Create(user).Error
}
