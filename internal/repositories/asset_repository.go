package repositories

import (
	"context"

	"gorm.io/gorm"

	"nwptourism/internal/models/db_models"
)

type CategoryCount struct {
	Category string
	Count    int64
}

type AssetRepository interface {
	CreateAsset(ctx context.Context, asset *db_models.TourismAsset) error
	ListAssets(ctx context.Context) ([]db_models.TourismAsset, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
}

type assetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) CreateAsset(ctx context.Context, asset *db_models.TourismAsset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *assetRepository) ListAssets(ctx context.Context) ([]db_models.TourismAsset, error) {
	var assets []db_models.TourismAsset
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepository) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.WithContext(ctx).
		Model(&db_models.TourismAsset{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
