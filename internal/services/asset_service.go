package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"nwptourism/internal/models/db_models"
	"nwptourism/internal/repositories"
	"nwptourism/pkg/metrics"
	"nwptourism/pkg/utils"
)

type UploadAssetInput struct {
	Name        string
	Category    string
	Description string
	Latitude    string
	Longitude   string
	Image       *Upload
}

type BulkImportResult struct {
	Imported int
	Skipped  int
}

type AssetServiceInterface interface {
	Upload(ctx context.Context, in UploadAssetInput) (uuid.UUID, error)
	BulkImport(ctx context.Context, raw []byte) (BulkImportResult, error)
	ListFeatureCollection(ctx context.Context) (*geojson.FeatureCollection, error)
	CategoryDistribution(ctx context.Context) (map[string]int64, error)
}

type AssetService struct {
	assetRepo repositories.AssetRepository
	boundary  Boundary
	uploader  ImageUploader
	log       *zap.Logger
}

func NewAssetService(
	assetRepo repositories.AssetRepository,
	boundary Boundary,
	uploader ImageUploader,
	log *zap.Logger,
) AssetServiceInterface {
	return &AssetService{
		assetRepo: assetRepo,
		boundary:  boundary,
		uploader:  uploader,
		log:       log.Named("assets"),
	}
}

func (s *AssetService) Upload(ctx context.Context, in UploadAssetInput) (uuid.UUID, error) {
	lat, lon, err := utils.ParseCoordinates(in.Latitude, in.Longitude)
	if err != nil {
		return uuid.Nil, err
	}
	if err := s.boundary.Check(lat, lon); err != nil {
		return uuid.Nil, err
	}

	var imageURL *string
	if in.Image != nil {
		url, err := s.uploader.Upload(ctx, AssetImageFolder, in.Image)
		if err != nil {
			return uuid.Nil, err
		}
		if url != "" {
			imageURL = &url
		}
	}

	asset := &db_models.TourismAsset{
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		Description: optionalText(in.Description),
		Latitude:    lat,
		Longitude:   lon,
		ImageURL:    imageURL,
	}
	if err := s.assetRepo.CreateAsset(ctx, asset); err != nil {
		s.log.Error("error creating asset", zap.Error(err))
		return uuid.Nil, utils.ErrDatabaseError
	}
	metrics.AssetsCreatedTotal.WithLabelValues("upload").Inc()
	return asset.ID, nil
}

// Skip reasons reported for bulk import features.
const (
	skipDecode       = "decode"
	skipGeometry     = "not_point"
	skipProperties   = "no_properties"
	skipCoordinates  = "bad_coordinates"
	skipBoundary     = "boundary_unavailable"
	skipOutOfRegion  = "out_of_region"
	skipInsertFailed = "insert_failed"
)

// BulkImport stores every usable Point feature of a FeatureCollection. Bad
// features are logged and skipped; only a document that is not a
// FeatureCollection is an error.
func (s *AssetService) BulkImport(ctx context.Context, raw []byte) (BulkImportResult, error) {
	var envelope struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return BulkImportResult{}, utils.ErrInvalidGeoJSON
	}
	if envelope.Type != "FeatureCollection" || envelope.Features == nil {
		return BulkImportResult{}, utils.ErrInvalidGeoJSON
	}

	var res BulkImportResult
	skip := func(i int, reason string, fields ...zap.Field) {
		res.Skipped++
		metrics.BulkImportSkippedTotal.WithLabelValues(reason).Inc()
		s.log.Warn("skipping feature", append([]zap.Field{zap.Int("index", i), zap.String("reason", reason)}, fields...)...)
	}

	for i, rawFeature := range envelope.Features {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		f, err := geojson.UnmarshalFeature(rawFeature)
		if err != nil {
			skip(i, skipDecode, zap.Error(err))
			continue
		}
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			skip(i, skipGeometry)
			continue
		}
		if f.Properties == nil {
			skip(i, skipProperties)
			continue
		}

		lon, lat := pt.Lon(), pt.Lat()
		if lat == 0 || lon == 0 || !utils.ValidCoordinates(lat, lon) {
			skip(i, skipCoordinates, zap.Float64("lat", lat), zap.Float64("lon", lon))
			continue
		}
		if err := s.boundary.Check(lat, lon); err != nil {
			if errors.Is(err, utils.ErrBoundaryUnavailable) {
				skip(i, skipBoundary)
			} else {
				skip(i, skipOutOfRegion, zap.Float64("lat", lat), zap.Float64("lon", lon))
			}
			continue
		}

		name := f.Properties.MustString("name", "")
		asset := &db_models.TourismAsset{
			Name:        name,
			Category:    f.Properties.MustString("category", ""),
			Description: optionalText(f.Properties.MustString("description", "")),
			Latitude:    lat,
			Longitude:   lon,
		}
		if err := s.assetRepo.CreateAsset(ctx, asset); err != nil {
			skip(i, skipInsertFailed, zap.String("name", name), zap.Error(err))
			continue
		}
		metrics.AssetsCreatedTotal.WithLabelValues("bulk").Inc()
		res.Imported++
	}

	s.log.Info("bulk import finished", zap.Int("imported", res.Imported), zap.Int("skipped", res.Skipped))
	return res, nil
}

func (s *AssetService) ListFeatureCollection(ctx context.Context) (*geojson.FeatureCollection, error) {
	assets, err := s.assetRepo.ListAssets(ctx)
	if err != nil {
		s.log.Error("error listing assets", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	fc := geojson.NewFeatureCollection()
	for _, a := range assets {
		f := geojson.NewFeature(orb.Point{a.Longitude, a.Latitude})
		f.Properties["id"] = a.ID.String()
		f.Properties["name"] = a.Name
		f.Properties["category"] = a.Category
		f.Properties["description"] = a.Description
		f.Properties["image_url"] = a.ImageURL
		fc.Append(f)
	}
	return fc, nil
}

func (s *AssetService) CategoryDistribution(ctx context.Context) (map[string]int64, error) {
	rows, err := s.assetRepo.CountByCategory(ctx)
	if err != nil {
		s.log.Error("error counting assets by category", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Category] += r.Count
	}
	return out, nil
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

