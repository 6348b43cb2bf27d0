package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nwptourism/internal/models/request_models"
	"nwptourism/internal/services"
	"nwptourism/pkg/middleware"
	"nwptourism/pkg/utils"
)

type CookieConfig struct {
	TTL    time.Duration
	Secure bool
}

type AdminController struct {
	adminService services.AdminServiceInterface
	cookie       CookieConfig
	log          *zap.Logger
}

func NewAdminController(adminService services.AdminServiceInterface, cookie CookieConfig, log *zap.Logger) *AdminController {
	return &AdminController{adminService: adminService, cookie: cookie, log: log}
}

// Login godoc
// @Summary Admin login
// @Description Verifies credentials and sets the session cookie.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /admin/login [post]
func (a *AdminController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleServiceError(c, a.log, utils.ErrInvalidCredentials)
		return
	}

	token, _, err := a.adminService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		utils.HandleServiceError(c, a.log, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, int(a.cookie.TTL.Seconds()), "/", "", a.cookie.Secure, true)
	utils.RespondSuccess(c, nil, "Login successful")
}

// Logout godoc
// @Summary Admin logout
// @Description Ends the current session, if any, and clears the cookie.
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /admin/logout [post]
func (a *AdminController) Logout(c *gin.Context) {
	if err := a.adminService.Logout(c.Request.Context(), middleware.SessionToken(c)); err != nil {
		a.log.Warn("logout failed to remove session", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", a.cookie.Secure, true)
	utils.RespondSuccess(c, nil, "Logged out")
}
