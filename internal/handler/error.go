package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/middleware"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/validation"
	"go.uber.org/zap"
)

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  nil,
	})
}

// serverError records err on the internal stream and answers with a 500
// that carries only message.
func serverError(c *gin.Context, log *zap.Logger, code, message string, err error) {
	log.Error(message,
		zap.String("code", code),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		zap.Error(err),
	)
	_ = c.Error(err)

	writeError(c, http.StatusInternalServerError, code, message)
}
