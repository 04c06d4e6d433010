package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/totodo713/miometory-sub007/internal/core/ports/services"
	"github.com/totodo713/miometory-sub007/internal/dto"
	"github.com/totodo713/miometory-sub007/internal/middleware"
)

// dailyApprovalHandler handles HTTP requests for per-entry supervisor
// decisions.
type dailyApprovalHandler struct {
	dailyService portssvc.DailyApprovalSvcFacade
}

func newDailyApprovalHandler(ds portssvc.DailyApprovalSvcFacade) *dailyApprovalHandler {
	return &dailyApprovalHandler{dailyService: ds}
}

// registerDailyApprovalRoutes registers routes related to daily approvals.
func registerDailyApprovalRoutes(rg *gin.RouterGroup, dailyService portssvc.DailyApprovalSvcFacade) {
	h := newDailyApprovalHandler(dailyService)

	approvals := rg.Group("/daily-approvals")
	{
		approvals.POST("", h.recordDecision)
		approvals.POST("/:decisionID/recall", h.recallDecision)
		approvals.GET("/entry/:entryID", h.getActiveDecision)
	}
}

func (h *dailyApprovalHandler) getActiveDecision(c *gin.Context) {
	decision, err := h.dailyService.GetActiveDecision(c.Request.Context(), c.Param("entryID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyApprovalResponse(decision))
}

func (h *dailyApprovalHandler) recordDecision(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordDailyApprovalRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	decision, err := h.dailyService.RecordDecision(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Daily approval recorded",
		slog.String("decision_id", decision.ID),
		slog.String("entry_id", decision.WorkLogEntryID),
		slog.String("status", string(decision.Status)))
	c.JSON(http.StatusCreated, dto.ToDailyApprovalResponse(decision))
}

func (h *dailyApprovalHandler) recallDecision(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	decisionID := c.Param("decisionID")
	actor, ok := actorID(c)
	if !ok {
		return
	}

	decision, err := h.dailyService.RecallDecision(c.Request.Context(), decisionID, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Daily approval recalled", slog.String("decision_id", decision.ID))
	c.JSON(http.StatusOK, dto.ToDailyApprovalResponse(decision))
}
