package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	portssvc "github.com/totodo713/miometory-sub007/internal/core/ports/services"
	"github.com/totodo713/miometory-sub007/internal/dto"
	"github.com/totodo713/miometory-sub007/internal/middleware"
)

// workLogHandler handles HTTP requests for work-log entries.
type workLogHandler struct {
	workLogService portssvc.WorkLogSvcFacade
}

func newWorkLogHandler(ws portssvc.WorkLogSvcFacade) *workLogHandler {
	return &workLogHandler{workLogService: ws}
}

// registerWorkLogRoutes registers routes related to work-log entries.
func registerWorkLogRoutes(rg *gin.RouterGroup, workLogService portssvc.WorkLogSvcFacade) {
	h := newWorkLogHandler(workLogService)

	entries := rg.Group("/worklog-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.POST("/:entryID/status", h.changeEntryStatus)
		entries.DELETE("/:entryID", h.deleteEntry)
	}
}

func (h *workLogHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWorkLogEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	entry, err := h.workLogService.CreateEntry(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Work-log entry created", slog.String("entry_id", entry.ID), slog.String("member_id", entry.MemberID))
	c.JSON(http.StatusCreated, dto.ToWorkLogEntryResponse(entry))
}

func (h *workLogHandler) getEntry(c *gin.Context) {
	entryID := c.Param("entryID")

	entry, err := h.workLogService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkLogEntryResponse(entry))
}

func (h *workLogHandler) updateEntry(c *gin.Context) {
	entryID := c.Param("entryID")
	var req dto.UpdateWorkLogEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	entry, err := h.workLogService.UpdateEntry(c.Request.Context(), entryID, req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkLogEntryResponse(entry))
}

func (h *workLogHandler) changeEntryStatus(c *gin.Context) {
	entryID := c.Param("entryID")
	var req dto.ChangeWorkLogStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	target, err := parseWorkLogStatus(req.TargetStatus)
	if err != nil {
		respondError(c, err)
		return
	}

	entry, err := h.workLogService.ChangeEntryStatus(c.Request.Context(), entryID, target, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkLogEntryResponse(entry))
}

func (h *workLogHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")
	actor, ok := actorID(c)
	if !ok {
		return
	}

	if err := h.workLogService.DeleteEntry(c.Request.Context(), entryID, actor); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Work-log entry deleted", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}

// parseWorkLogStatus validates a wire status value.
func parseWorkLogStatus(value string) (domain.WorkLogStatus, error) {
	switch status := domain.WorkLogStatus(value); status {
	case domain.WorkLogDraft, domain.WorkLogSubmitted, domain.WorkLogApproved, domain.WorkLogRejected:
		return status, nil
	default:
		return "", apperrors.NewValidationError(apperrors.CodeInvalidStatusTransition, "unknown target status "+value)
	}
}
