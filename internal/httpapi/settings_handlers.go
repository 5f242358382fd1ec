package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bhindi/internal/models"
	"bhindi/internal/services"
)

type settingsHandler struct {
	svc    services.SettingsService
	models services.ModelCatalogService
}

type themeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

type apiKeyRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

func (h *settingsHandler) register(r *gin.RouterGroup) {
	r.GET("/models", h.listModels)

	g := r.Group("/settings")
	g.GET("", h.get)
	g.PUT("/profile", h.profile)
	g.PUT("/preferences", h.preferences)
	g.PUT("/ai", h.ai)
	g.PUT("/privacy", h.privacy)
	g.PUT("/theme", h.theme)
	g.POST("/theme/cycle", h.cycleTheme)
	g.PUT("/api-key", h.setAPIKey)
	g.DELETE("/api-key", h.clearAPIKey)
}

func (h *settingsHandler) respond(c *gin.Context, st models.Settings, err error) {
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, "Updated", st)
}

func (h *settingsHandler) listModels(c *gin.Context) {
	groups, err := h.models.ListModelGroups()
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	ok(c, http.StatusOK, "OK", groups)
}

func (h *settingsHandler) get(c *gin.Context) {
	ok(c, http.StatusOK, "OK", h.svc.Get())
}

func (h *settingsHandler) profile(c *gin.Context) {
	var req models.ProfileSettings
	if !bindJSON(c, &req) {
		return
	}
	st, err := h.svc.UpdateProfile(req)
	h.respond(c, st, err)
}

func (h *settingsHandler) preferences(c *gin.Context) {
	var req models.PreferenceSettings
	if !bindJSON(c, &req) {
		return
	}
	st, err := h.svc.UpdatePreferences(req)
	h.respond(c, st, err)
}

func (h *settingsHandler) ai(c *gin.Context) {
	var req models.AISettings
	if !bindJSON(c, &req) {
		return
	}
	st, err := h.svc.UpdateAI(req)
	h.respond(c, st, err)
}

func (h *settingsHandler) privacy(c *gin.Context) {
	var req models.PrivacySettings
	if !bindJSON(c, &req) {
		return
	}
	st, err := h.svc.UpdatePrivacy(req)
	h.respond(c, st, err)
}

func (h *settingsHandler) theme(c *gin.Context) {
	var req themeRequest
	if !bindJSON(c, &req) {
		return
	}
	st, err := h.svc.SetTheme(req.Theme)
	h.respond(c, st, err)
}

func (h *settingsHandler) cycleTheme(c *gin.Context) {
	st, err := h.svc.CycleTheme()
	h.respond(c, st, err)
}

func (h *settingsHandler) setAPIKey(c *gin.Context) {
	var req apiKeyRequest
	if !bindJSON(c, &req) {
		return
	}
	st, err := h.svc.SetAPIKey(req.APIKey)
	h.respond(c, st, err)
}

func (h *settingsHandler) clearAPIKey(c *gin.Context) {
	st, err := h.svc.ClearAPIKey()
	h.respond(c, st, err)
}
