package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bhindi/internal/models"
	"bhindi/internal/services"
)

type fileHandler struct {
	svc services.FileService
}

type importRequest struct {
	Pattern string `json:"pattern" binding:"required"`
}

func (h *fileHandler) register(r *gin.RouterGroup) {
	g := r.Group("/files")
	g.GET("", h.list)
	g.POST("", h.add)
	g.GET("/folders", h.folders)
	g.POST("/import", h.importGlob)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.delete)
}

func (h *fileHandler) list(c *gin.Context) {
	ok(c, http.StatusOK, "OK", h.svc.List(c.Query("folder"), c.Query("q")))
}

func (h *fileHandler) folders(c *gin.Context) {
	ok(c, http.StatusOK, "OK", h.svc.FolderCounts())
}

func (h *fileHandler) add(c *gin.Context) {
	var req []models.FileUpload
	if !bindJSON(c, &req) {
		return
	}
	items, err := h.svc.Add(req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, "Created", items)
}

func (h *fileHandler) importGlob(c *gin.Context) {
	var req importRequest
	if !bindJSON(c, &req) {
		return
	}
	items, err := h.svc.ImportGlob(req.Pattern)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, "Imported", items)
}

func (h *fileHandler) get(c *gin.Context) {
	f, err := h.svc.Get(c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, "OK", f)
}

func (h *fileHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, "Deleted", nil)
}
