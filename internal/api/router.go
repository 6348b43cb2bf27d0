package api

import (
	"net/http"
	"os"
	"path"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"nwptourism/internal/api/controllers"
	"nwptourism/pkg/metrics"
	"nwptourism/pkg/middleware"
	"nwptourism/pkg/utils"
)

type RouterConfig struct {
	AllowedOrigins           []string
	StaticDir                string
	AssetUploadRequiresAdmin bool
}

type RouterParams struct {
	fx.In

	Config   RouterConfig
	Log      *zap.Logger
	Sessions middleware.SessionResolver

	Feedback *controllers.FeedbackController
	Assets   *controllers.AssetController
	Admin    *controllers.AdminController
	Export   *controllers.ExportController
	System   *controllers.SystemController
}

// request bodies may carry one upload plus form fields
const maxBodyBytes = controllers.MaxUploadBytes + 1<<20

func ProvideRouter(p RouterParams) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = controllers.MaxUploadBytes

	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(metrics.Middleware())
	r.Use(middleware.AccessLogMiddleware(p.Log.Named("http")))
	r.Use(middleware.CORSMiddleware(p.Config.AllowedOrigins))
	r.Use(limitBody(maxBodyBytes))
	r.Use(middleware.SessionMiddleware(p.Sessions, p.Log))

	RegisterRoutes(r, p)
	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	requireAdmin := middleware.RequireAdmin()

	r.POST("/submit", p.Feedback.SubmitFeedback)

	apiGroup := r.Group("/api")
	if p.Config.AssetUploadRequiresAdmin {
		apiGroup.POST("/upload-asset", requireAdmin, p.Assets.UploadAsset)
	} else {
		apiGroup.POST("/upload-asset", p.Assets.UploadAsset)
	}
	apiGroup.POST("/upload-geojson", requireAdmin, p.Assets.UploadGeoJSON)
	apiGroup.GET("/assets", p.Assets.ListAssets)
	apiGroup.GET("/stats/category-distribution", p.Assets.CategoryDistribution)

	adminGroup := r.Group("/admin")
	adminGroup.POST("/login", p.Admin.Login)
	adminGroup.POST("/logout", p.Admin.Logout)

	protected := adminGroup.Group("", requireAdmin)
	protected.GET("/feedback", p.Feedback.ListFeedback)
	protected.POST("/feedback/:id/status", p.Feedback.UpdateStatus)
	protected.GET("/export/csv", p.Export.ExportCSV)
	protected.GET("/export/pdf", p.Export.ExportPDF)

	r.GET("/data/boundary.geojson", p.System.Boundary)
	r.GET("/data/NWP_BOUNDARY.geojson", p.System.Boundary)
	r.GET("/healthz", p.System.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.NoRoute(staticOrNotFound(p.Config.StaticDir))
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

// staticOrNotFound serves the front-end pages for unmatched GETs.
func staticOrNotFound(dir string) gin.HandlerFunc {
	var files http.Handler
	if dir != "" {
		files = http.FileServer(indexOnlyFS{http.Dir(dir)})
	}
	return func(c *gin.Context) {
		if files != nil && (c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead) {
			files.ServeHTTP(c.Writer, c.Request)
			return
		}
		utils.RespondError(c, http.StatusNotFound, "Not found")
	}
}

// indexOnlyFS hides directories that have no index.html, so the file
// server never renders a listing.
type indexOnlyFS struct {
	fs http.FileSystem
}

func (f indexOnlyFS) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		index, err := f.fs.Open(path.Join(name, "index.html"))
		if err != nil {
			_ = file.Close()
			return nil, os.ErrNotExist
		}
		_ = index.Close()
	}
	return file, nil
}
