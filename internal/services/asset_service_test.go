package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nwptourism/internal/geo"
	"nwptourism/internal/models/db_models"
	"nwptourism/pkg/utils"
)

func newAssetSvc(repo *fakeAssetRepo, gate Boundary, up ImageUploader) AssetServiceInterface {
	return NewAssetService(repo, gate, up, zap.NewNop())
}

func pointFeature(lon, lat float64, name, category string) string {
	return fmt.Sprintf(`{"type":"Feature","geometry":{"type":"Point","coordinates":[%g,%g]},"properties":{"name":%q,"category":%q}}`,
		lon, lat, name, category)
}

func collection(features ...string) []byte {
	return []byte(`{"type":"FeatureCollection","features":[` + strings.Join(features, ",") + `]}`)
}

func TestUploadAsset(t *testing.T) {
	repo := &fakeAssetRepo{}
	up := &fakeUploader{url: "https://img/asset.jpg"}
	svc := newAssetSvc(repo, testGate(), up)

	id, err := svc.Upload(context.Background(), UploadAssetInput{
		Name: "Yapahuwa", Category: "heritage", Description: " rock fortress ",
		Latitude: "7.82", Longitude: "80.31",
		Image: &Upload{Filename: "y.jpg", Reader: strings.NewReader("img")},
	})
	require.NoError(t, err)
	require.Len(t, repo.items, 1)
	a := repo.items[0]
	assert.Equal(t, id, a.ID)
	assert.Equal(t, "heritage", a.Category)
	require.NotNil(t, a.Description)
	assert.Equal(t, "rock fortress", *a.Description)
	assert.Equal(t, []string{AssetImageFolder}, up.folders)

	t.Run("outside", func(t *testing.T) {
		_, err := svc.Upload(context.Background(), UploadAssetInput{Name: "Galle", Latitude: "6.03", Longitude: "80.21"})
		assert.ErrorIs(t, err, utils.ErrOutOfRegion)
		assert.Len(t, repo.items, 1)
	})

	t.Run("missing coordinates", func(t *testing.T) {
		_, err := svc.Upload(context.Background(), UploadAssetInput{Name: "x"})
		assert.ErrorIs(t, err, utils.ErrValidation)
	})

	t.Run("upload failure", func(t *testing.T) {
		failing := newAssetSvc(repo, testGate(), &fakeUploader{err: utils.ErrUpload})
		_, err := failing.Upload(context.Background(), UploadAssetInput{
			Latitude: "7.8", Longitude: "80.5",
			Image: &Upload{Reader: strings.NewReader("img")},
		})
		assert.ErrorIs(t, err, utils.ErrUpload)
		assert.Len(t, repo.items, 1)
	})
}

func TestBulkImportCountsOnlyInsideFeatures(t *testing.T) {
	var features []string
	for i := 0; i < 10; i++ {
		features = append(features, pointFeature(80.0+float64(i)*0.05, 7.5, fmt.Sprintf("in-%d", i), "nature"))
	}
	for i := 0; i < 5; i++ {
		features = append(features, pointFeature(79.8, 6.0+float64(i)*0.1, fmt.Sprintf("out-%d", i), "nature"))
	}

	repo := &fakeAssetRepo{}
	svc := newAssetSvc(repo, testGate(), NoopImageUploader{})

	res, err := svc.BulkImport(context.Background(), collection(features...))
	require.NoError(t, err)
	assert.Equal(t, 10, res.Imported)
	assert.Equal(t, 5, res.Skipped)
	assert.Len(t, repo.items, 10)
}

func TestBulkImportSkipsBadFeatures(t *testing.T) {
	repo := &fakeAssetRepo{failNames: map[string]bool{"broken": true}}
	svc := newAssetSvc(repo, testGate(), NoopImageUploader{})

	raw := collection(
		pointFeature(80.1, 7.6, "ok", "religious"),
		`{"type":"Feature","geometry":{"type":"LineString","coordinates":[[80.1,7.6],[80.2,7.7]]},"properties":{"name":"line"}}`,
		`{"type":"Feature","geometry":{"type":"Point","coordinates":[80.1,7.6]}}`,
		`{"type":"Feature","geometry":null,"properties":{"name":"nogeom"}}`,
		pointFeature(0, 7.6, "zero-lon", "urban"),
		`{"type":"Feature","geometry":{"type":"Point","coordinates":"bad"},"properties":{}}`,
		pointFeature(80.2, 7.7, "broken", "urban"),
		pointFeature(80.3, 7.8, "ok-2", "heritage"),
	)

	res, err := svc.BulkImport(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 6, res.Skipped)

	names := []string{repo.items[0].Name, repo.items[1].Name}
	assert.Equal(t, []string{"ok", "ok-2"}, names)
}

func TestBulkImportBoundaryUnavailable(t *testing.T) {
	repo := &fakeAssetRepo{}
	svc := newAssetSvc(repo, &geo.Gate{}, NoopImageUploader{})

	res, err := svc.BulkImport(context.Background(), collection(pointFeature(80.1, 7.6, "ok", "nature")))
	require.NoError(t, err)
	assert.Zero(t, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, repo.items)
}

func TestBulkImportRejectsNonCollections(t *testing.T) {
	svc := newAssetSvc(&fakeAssetRepo{}, testGate(), NoopImageUploader{})

	for name, raw := range map[string]string{
		"not json":     `{"type":`,
		"feature":      pointFeature(80.1, 7.6, "ok", "nature"),
		"no features":  `{"type":"FeatureCollection"}`,
		"array":        `[]`,
		"features obj": `{"type":"FeatureCollection","features":{}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.BulkImport(context.Background(), []byte(raw))
			assert.ErrorIs(t, err, utils.ErrInvalidGeoJSON)
		})
	}
}

func TestListFeatureCollection(t *testing.T) {
	desc := "temple"
	repo := &fakeAssetRepo{}
	svc := newAssetSvc(repo, testGate(), NoopImageUploader{})
	require.NoError(t, repo.CreateAsset(context.Background(), &db_models.TourismAsset{
		Name: "Munneswaram", Category: "religious", Description: &desc, Latitude: 7.58, Longitude: 79.81,
	}))

	fc, err := svc.ListFeatureCollection(context.Background())
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	raw, err := json.Marshal(fc)
	require.NoError(t, err)

	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "FeatureCollection", decoded.Type)
	f := decoded.Features[0]
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, []float64{79.81, 7.58}, f.Geometry.Coordinates)
	assert.Equal(t, "Munneswaram", f.Properties["name"])
	assert.Equal(t, "religious", f.Properties["category"])
	assert.Equal(t, "temple", f.Properties["description"])
	assert.Nil(t, f.Properties["image_url"])
	assert.Equal(t, repo.items[0].ID.String(), f.Properties["id"])

	t.Run("empty store", func(t *testing.T) {
		empty := newAssetSvc(&fakeAssetRepo{}, testGate(), NoopImageUploader{})
		fc, err := empty.ListFeatureCollection(context.Background())
		require.NoError(t, err)
		raw, err := json.Marshal(fc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(raw))
	})

	t.Run("storage failure", func(t *testing.T) {
		broken := newAssetSvc(&fakeAssetRepo{listErr: errors.New("down")}, testGate(), NoopImageUploader{})
		_, err := broken.ListFeatureCollection(context.Background())
		assert.ErrorIs(t, err, utils.ErrDatabaseError)
	})
}

func TestCategoryDistribution(t *testing.T) {
	repo := &fakeAssetRepo{}
	svc := newAssetSvc(repo, testGate(), NoopImageUploader{})
	for _, c := range []string{"nature", "nature", "heritage"} {
		require.NoError(t, repo.CreateAsset(context.Background(), &db_models.TourismAsset{Category: c}))
	}

	got, err := svc.CategoryDistribution(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"nature": 2, "heritage": 1}, got)
}
