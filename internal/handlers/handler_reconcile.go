package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/totodo713/miometory-sub007/internal/core/ports/services"
	"github.com/totodo713/miometory-sub007/internal/middleware"
)

// reconcileHandler exposes the projection repair operations. These sit under
// /admin and are expected to be reached by operators, not end users.
type reconcileHandler struct {
	reconcilerService portssvc.ReconcilerSvcFacade
}

func newReconcileHandler(rs portssvc.ReconcilerSvcFacade) *reconcileHandler {
	return &reconcileHandler{reconcilerService: rs}
}

// registerReconcileRoutes registers the admin reconciliation routes.
func registerReconcileRoutes(rg *gin.RouterGroup, reconcilerService portssvc.ReconcilerSvcFacade) {
	h := newReconcileHandler(reconcilerService)

	admin := rg.Group("/admin")
	{
		admin.POST("/reconcile", h.reconcile)
		admin.POST("/members/:memberID/rebuild", h.rebuildMemberMonth)
	}
}

func (h *reconcileHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reconcilerService.Reconcile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Reconciliation run finished",
		slog.Int("drift_repaired", report.DriftRepaired),
		slog.Int("status_repaired", report.StatusRepaired),
		slog.Int("rows_backfilled", report.RowsBackfilled),
		slog.Int("months_rebuilt", report.MonthsRebuilt))
	c.JSON(http.StatusOK, report)
}

func (h *reconcileHandler) rebuildMemberMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("memberID")
	date, ok := requireDateQuery(c)
	if !ok {
		return
	}

	if err := h.reconcilerService.RebuildMemberMonth(c.Request.Context(), memberID, date); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Member month rebuilt", slog.String("member_id", memberID))
	c.Status(http.StatusNoContent)
}
