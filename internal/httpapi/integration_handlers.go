package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bhindi/internal/services"
)

type integrationHandler struct {
	svc services.IntegrationService
}

func (h *integrationHandler) register(r *gin.RouterGroup) {
	g := r.Group("/integrations")
	g.GET("", h.list)
	g.GET("/categories", h.categories)
	g.GET("/stats", h.stats)
	g.POST("/:id/connect", h.connect)
}

func (h *integrationHandler) list(c *gin.Context) {
	ok(c, http.StatusOK, "OK", h.svc.List(c.Query("category"), c.Query("q")))
}

func (h *integrationHandler) categories(c *gin.Context) {
	ok(c, http.StatusOK, "OK", h.svc.Categories())
}

func (h *integrationHandler) stats(c *gin.Context) {
	ok(c, http.StatusOK, "OK", gin.H{
		"stats":      h.svc.Stats(),
		"comingSoon": h.svc.ComingSoonCount(),
	})
}

func (h *integrationHandler) connect(c *gin.Context) {
	res, err := h.svc.Connect(c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, res.Message, res)
}
