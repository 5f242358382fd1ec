package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bhindi/internal/dispatch"
	"bhindi/internal/models"
	"bhindi/internal/services"
)

type chatHandler struct {
	svc services.ChatService
}

func (h *chatHandler) register(r *gin.RouterGroup) {
	g := r.Group("/chat")
	g.GET("/state", h.state)
	g.GET("/sessions/current", h.current)
	g.PUT("/sessions/current", h.switchSession)
	g.POST("/sessions", h.createSession)
	g.DELETE("/sessions/:id", h.deleteSession)
	g.POST("/messages", h.send)
	g.PUT("/messages/:id", h.updateMessage)
	g.DELETE("/messages/:id", h.deleteMessage)
	g.POST("/clear", h.clear)
	g.POST("/uploads", h.upload)
	g.POST("/search", h.search)
	g.POST("/analyze", h.analyze)
}

type createSessionRequest struct {
	Title string `json:"title"`
}

type switchSessionRequest struct {
	ID string `json:"id" binding:"required"`
}

type contentRequest struct {
	Content string `json:"content" binding:"required"`
}

type searchRequest struct {
	Query string `json:"query" binding:"required"`
}

func (h *chatHandler) state(c *gin.Context) {
	ok(c, http.StatusOK, "OK", h.svc.State())
}

func (h *chatHandler) current(c *gin.Context) {
	sess := h.svc.GetCurrentSession()
	if sess == nil {
		fail(c, http.StatusNotFound, "no current session")
		return
	}
	ok(c, http.StatusOK, "OK", sess)
}

func (h *chatHandler) switchSession(c *gin.Context) {
	var req switchSessionRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.svc.SetCurrentSession(req.ID); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, "Updated", h.svc.GetCurrentSession())
}

func (h *chatHandler) createSession(c *gin.Context) {
	var req createSessionRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	id := h.svc.CreateSession(req.Title)
	ok(c, http.StatusCreated, "Created", gin.H{"id": id})
}

func (h *chatHandler) deleteSession(c *gin.Context) {
	h.svc.DeleteSession(c.Param("id"))
	ok(c, http.StatusOK, "Deleted", nil)
}

func (h *chatHandler) send(c *gin.Context) {
	var req contentRequest
	if !bindJSON(c, &req) {
		return
	}
	// The exchange outlives a disconnected client so the reply still lands.
	res, err := h.svc.SendMessageContext(context.WithoutCancel(c.Request.Context()), req.Content)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, "OK", res)
}

func (h *chatHandler) updateMessage(c *gin.Context) {
	var req contentRequest
	if !bindJSON(c, &req) {
		return
	}
	if !h.svc.UpdateMessage(c.Param("id"), req.Content) {
		fail(c, http.StatusNotFound, "message not found in current session")
		return
	}
	ok(c, http.StatusOK, "Updated", nil)
}

func (h *chatHandler) deleteMessage(c *gin.Context) {
	if !h.svc.DeleteMessage(c.Param("id")) {
		fail(c, http.StatusNotFound, "message not found in current session")
		return
	}
	ok(c, http.StatusOK, "Deleted", nil)
}

func (h *chatHandler) clear(c *gin.Context) {
	if !h.svc.ClearCurrentSession() {
		fail(c, http.StatusNotFound, "no current session")
		return
	}
	ok(c, http.StatusOK, "Cleared", nil)
}

func (h *chatHandler) upload(c *gin.Context) {
	var req []models.FileUpload
	if !bindJSON(c, &req) {
		return
	}
	msgs, err := h.svc.UploadFiles(req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, "Uploaded", msgs)
}

func (h *chatHandler) search(c *gin.Context) {
	var req searchRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.svc.SearchWeb(req.Query)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, "OK", gin.H{"result": out})
}

func (h *chatHandler) analyze(c *gin.Context) {
	var req dispatch.FileInfo
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.svc.AnalyzeFile(req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, "OK", gin.H{"result": out})
}
