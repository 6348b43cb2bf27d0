package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nwptourism/internal/models/request_models"
	"nwptourism/internal/models/response_models"
	"nwptourism/internal/services"
	"nwptourism/pkg/utils"
)

type AssetController struct {
	assetService services.AssetServiceInterface
	log          *zap.Logger
}

func NewAssetController(assetService services.AssetServiceInterface, log *zap.Logger) *AssetController {
	return &AssetController{assetService: assetService, log: log}
}

// UploadAsset godoc
// @Summary Create a tourism asset
// @Description Multipart form with name, category, description, lat, lng and an optional image in "dataFile".
// @Tags Assets
// @Accept mpfd,json
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/upload-asset [post]
func (a *AssetController) UploadAsset(c *gin.Context) {
	var req request_models.UploadAssetRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	img, closeImg, err := optionalUpload(c, "dataFile")
	defer closeImg()
	if err != nil {
		utils.HandleServiceError(c, a.log, err)
		return
	}

	id, err := a.assetService.Upload(c.Request.Context(), services.UploadAssetInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Latitude:    req.Lat.String(),
		Longitude:   req.Lng.String(),
		Image:       img,
	})
	if err != nil {
		utils.HandleServiceError(c, a.log, err)
		return
	}
	utils.RespondSuccess(c, response_models.Created{ID: id.String()}, "Asset uploaded successfully!")
}

// UploadGeoJSON godoc
// @Summary Bulk import assets
// @Description Imports every Point feature of a GeoJSON FeatureCollection in "geojsonFile". Admin only.
// @Tags Assets
// @Accept mpfd
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/upload-geojson [post]
func (a *AssetController) UploadGeoJSON(c *gin.Context) {
	fh, err := c.FormFile("geojsonFile")
	if err != nil {
		utils.HandleServiceError(c, a.log, utils.ErrMissingFile)
		return
	}
	if fh.Size > MaxUploadBytes {
		utils.HandleServiceError(c, a.log, errFileTooLarge)
		return
	}
	f, err := fh.Open()
	if err != nil {
		utils.HandleServiceError(c, a.log, utils.ErrMissingFile)
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes))
	if err != nil {
		utils.HandleServiceError(c, a.log, fmt.Errorf("read geojson upload: %w", err))
		return
	}

	res, err := a.assetService.BulkImport(c.Request.Context(), raw)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidGeoJSON) {
			a.log.Info("rejected geojson upload", zap.String("filename", fh.Filename))
		}
		utils.HandleServiceError(c, a.log, err)
		return
	}

	utils.RespondSuccess(c,
		response_models.BulkImport{Imported: res.Imported, Skipped: res.Skipped},
		fmt.Sprintf("Successfully uploaded %d assets.", res.Imported))
}

// ListAssets godoc
// @Summary All assets as GeoJSON
// @Description Returns a bare FeatureCollection so map libraries can consume it directly.
// @Tags Assets
// @Produce json
// @Success 200 {object} geojson.FeatureCollection
// @Router /api/assets [get]
func (a *AssetController) ListAssets(c *gin.Context) {
	fc, err := a.assetService.ListFeatureCollection(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}

// CategoryDistribution godoc
// @Summary Asset counts per category
// @Tags Assets
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /api/stats/category-distribution [get]
func (a *AssetController) CategoryDistribution(c *gin.Context) {
	counts, err := a.assetService.CategoryDistribution(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, a.log, err)
		return
	}

	out := make([]response_models.CategoryCount, 0, len(counts))
	for category, n := range counts {
		out = append(out, response_models.CategoryCount{Category: category, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	utils.RespondSuccess(c, out, "Category distribution fetched successfully")
}
