package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	"github.com/totodo713/miometory-sub007/internal/dto"
	"github.com/totodo713/miometory-sub007/internal/middleware"
)

// respondError writes the uniform error body, mapping the stable code and
// HTTP status carried by the error.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusOf(err)
	code := apperrors.CodeOf(err)
	if status >= 500 {
		logger.Error("Request failed", slog.String("code", code), slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.String("code", code), slog.String("error", err.Error()))
	}
	c.JSON(status, dto.ErrorResponse{Code: code, Message: apperrors.MessageOf(err)})
}

// bindJSON binds the request body, answering with the uniform error shape on
// malformed input.
func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(400, dto.ErrorResponse{Code: apperrors.CodeValidationFailed, Message: err.Error()})
		return false
	}
	return true
}

// requireDateQuery parses the mandatory date query parameter.
func requireDateQuery(c *gin.Context) (time.Time, bool) {
	param := c.Query("date")
	if param == "" {
		respondError(c, apperrors.NewValidationError(apperrors.CodeDateRequired, "date query parameter is required"))
		return time.Time{}, false
	}
	date, err := dto.ParseDate(&param)
	if err != nil {
		respondError(c, err)
		return time.Time{}, false
	}
	return date, true
}

// actorID pulls the acting member's id injected by the RequireActor
// middleware.
func actorID(c *gin.Context) (string, bool) {
	id, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(401, dto.ErrorResponse{Code: apperrors.CodePermissionDenied, Message: "actor id missing from request"})
		return "", false
	}
	return id, true
}
