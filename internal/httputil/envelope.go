package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/h662/x-clone-go/internal/apperr"
	"github.com/h662/x-clone-go/internal/logs"
)

// OK writes the success envelope. Payload keys are merged next to "ok",
// so OK(c, gin.H{"post": p}) renders {"ok":true,"post":{...}}.
func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail terminates the request with {"ok":false,"message":...}. The HTTP
// status comes from the apperr kind table; unknown errors are treated as
// internal faults, logged with their cause and masked to the caller.
func Fail(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Wrap(apperr.Internal, "Server error.", err)
	}

	if ae.Kind == apperr.Internal {
		logs.LogJSON("ERROR", "request failed", map[string]interface{}{
			"route":  c.FullPath(),
			"method": c.Request.Method,
			"error":  ae.Error(),
		})
		c.AbortWithStatusJSON(apperr.Status(ae.Kind), gin.H{
			"ok":      false,
			"message": "Server error.",
		})
		return
	}

	c.AbortWithStatusJSON(apperr.Status(ae.Kind), gin.H{
		"ok":      false,
		"message": ae.Message,
	})
}
