package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bhindi/internal/services"
)

type dataHandler struct {
	svc services.DataService
}

func (h *dataHandler) register(r *gin.RouterGroup) {
	g := r.Group("/data")
	g.GET("/export", h.export)
	g.POST("/clear", h.clear)
}

// export streams the backup as a download rather than inside the envelope.
func (h *dataHandler) export(c *gin.Context) {
	name, data, err := h.svc.ExportJSON()
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

func (h *dataHandler) clear(c *gin.Context) {
	if err := h.svc.ClearAll(); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	ok(c, http.StatusOK, "All data cleared successfully!", nil)
}
