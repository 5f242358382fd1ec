package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bhindi/internal/models"
	"bhindi/internal/services"
)

type scheduleHandler struct {
	svc services.ScheduleService
}

// scheduleView adds the computed status the schedule list renders.
type scheduleView struct {
	models.ScheduleItem
	Status models.ScheduleStatus `json:"status"`
}

func (h *scheduleHandler) register(r *gin.RouterGroup) {
	g := r.Group("/schedules")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.POST("/:id/toggle", h.toggle)
}

func (h *scheduleHandler) view(it models.ScheduleItem) scheduleView {
	return scheduleView{ScheduleItem: it, Status: h.svc.Status(it)}
}

func (h *scheduleHandler) list(c *gin.Context) {
	items, err := h.svc.List(models.ScheduleFilter(c.DefaultQuery("filter", string(models.FilterAll))))
	if err != nil {
		failErr(c, err)
		return
	}
	out := make([]scheduleView, 0, len(items))
	for _, it := range items {
		out = append(out, h.view(it))
	}
	ok(c, http.StatusOK, "OK", out)
}

func (h *scheduleHandler) get(c *gin.Context) {
	it, err := h.svc.Get(c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, "OK", h.view(*it))
}

func (h *scheduleHandler) create(c *gin.Context) {
	var req models.ScheduleInput
	if !bindJSON(c, &req) {
		return
	}
	it, err := h.svc.Create(req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, "Created", h.view(*it))
}

func (h *scheduleHandler) update(c *gin.Context) {
	var req models.SchedulePatch
	if !bindJSON(c, &req) {
		return
	}
	it, err := h.svc.Update(c.Param("id"), req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, "Updated", h.view(*it))
}

func (h *scheduleHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, "Deleted", nil)
}

func (h *scheduleHandler) toggle(c *gin.Context) {
	it, err := h.svc.ToggleComplete(c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, "Updated", h.view(*it))
}
