package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"store-api/apperrors"
)

// respondError renders an application error, logging unexpected failures
// without leaking their detail past a generic message.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}
	if appErr.Code >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(appErr),
		)
	}
	c.JSON(appErr.Code, gin.H{"message": appErr.Message})
}
