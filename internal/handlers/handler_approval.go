package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	portssvc "github.com/totodo713/miometory-sub007/internal/core/ports/services"
	"github.com/totodo713/miometory-sub007/internal/dto"
	"github.com/totodo713/miometory-sub007/internal/middleware"
)

// monthlyApprovalHandler handles HTTP requests for monthly approvals.
type monthlyApprovalHandler struct {
	approvalService portssvc.MonthlyApprovalSvcFacade
}

func newMonthlyApprovalHandler(as portssvc.MonthlyApprovalSvcFacade) *monthlyApprovalHandler {
	return &monthlyApprovalHandler{approvalService: as}
}

// registerMonthlyApprovalRoutes registers routes related to monthly approvals.
func registerMonthlyApprovalRoutes(rg *gin.RouterGroup, approvalService portssvc.MonthlyApprovalSvcFacade) {
	h := newMonthlyApprovalHandler(approvalService)

	approvals := rg.Group("/monthly-approvals")
	{
		approvals.POST("/submit", h.submitMonth)
		approvals.POST("/:approvalID/approve", h.approveMonth)
		approvals.POST("/:approvalID/reject", h.rejectMonth)
		approvals.GET("/detail", h.getApprovalDetail)
	}
}

func (h *monthlyApprovalHandler) submitMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitMonthRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	approval, err := h.approvalService.SubmitMonth(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Monthly approval submitted",
		slog.String("approval_id", approval.ID),
		slog.String("member_id", approval.MemberID),
		slog.Int("entries", len(approval.WorkLogEntryIDs)))
	c.JSON(http.StatusOK, dto.ToMonthlyApprovalResponse(approval))
}

func (h *monthlyApprovalHandler) approveMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	approvalID := c.Param("approvalID")
	actor, ok := actorID(c)
	if !ok {
		return
	}

	approval, err := h.approvalService.ApproveMonth(c.Request.Context(), approvalID, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Monthly approval approved", slog.String("approval_id", approval.ID))
	c.JSON(http.StatusOK, dto.ToMonthlyApprovalResponse(approval))
}

func (h *monthlyApprovalHandler) rejectMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	approvalID := c.Param("approvalID")
	var req dto.RejectMonthRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	approval, err := h.approvalService.RejectMonth(c.Request.Context(), approvalID, req.Reason, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Monthly approval rejected", slog.String("approval_id", approval.ID))
	c.JSON(http.StatusOK, dto.ToMonthlyApprovalResponse(approval))
}

func (h *monthlyApprovalHandler) getApprovalDetail(c *gin.Context) {
	memberID := c.Query("memberID")
	if memberID == "" {
		respondError(c, apperrors.NewValidationError(apperrors.CodeValidationFailed, "memberID query parameter is required"))
		return
	}
	date, ok := requireDateQuery(c)
	if !ok {
		return
	}

	detail, err := h.approvalService.GetApprovalDetail(c.Request.Context(), memberID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}
