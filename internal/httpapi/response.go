package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bhindi/internal/chat"
	"bhindi/internal/services"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Code: status, Message: message, Data: data})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{Code: status, Message: message})
}

// failErr maps service errors onto HTTP statuses. Anything unrecognised is
// treated as a rejected request.
func failErr(c *gin.Context, err error) {
	fail(c, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, chat.ErrSessionNotFound),
		errors.Is(err, services.ErrScheduleNotFound),
		errors.Is(err, services.ErrFileNotFound),
		errors.Is(err, services.ErrIntegrationNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrExchangeInProgress):
		return http.StatusConflict
	case errors.Is(err, services.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrFileType):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}
	return true
}
