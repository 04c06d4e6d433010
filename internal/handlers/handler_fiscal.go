package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	portssvc "github.com/totodo713/miometory-sub007/internal/core/ports/services"
	"github.com/totodo713/miometory-sub007/internal/dto"
)

// fiscalHandler handles HTTP requests for fiscal period resolution.
type fiscalHandler struct {
	fiscalService portssvc.FiscalSvcFacade
}

func newFiscalHandler(fs portssvc.FiscalSvcFacade) *fiscalHandler {
	return &fiscalHandler{fiscalService: fs}
}

// registerFiscalRoutes registers the fiscal period query.
func registerFiscalRoutes(rg *gin.RouterGroup, fiscalService portssvc.FiscalSvcFacade) {
	h := newFiscalHandler(fiscalService)

	fiscal := rg.Group("/fiscal")
	{
		fiscal.GET("/period", h.getPeriod)
	}
}

func (h *fiscalHandler) getPeriod(c *gin.Context) {
	organizationID := c.Query("organizationID")
	tenantID := c.Query("tenantID")
	if organizationID == "" && tenantID == "" {
		respondError(c, apperrors.NewValidationError(apperrors.CodeValidationFailed, "organizationID or tenantID query parameter is required"))
		return
	}
	date, ok := requireDateQuery(c)
	if !ok {
		return
	}

	info, err := h.fiscalService.ResolvePeriod(c.Request.Context(), organizationID, tenantID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	month := info.Month

	holidays, err := h.fiscalService.HolidaysInRange(c.Request.Context(), organizationID, tenantID, month.Start, month.End)
	if err != nil {
		respondError(c, err)
		return
	}
	holidayResponses := make([]dto.HolidayResponse, 0, len(holidays))
	for _, holiday := range holidays {
		holidayResponses = append(holidayResponses, dto.HolidayResponse{
			Date:          dto.FormatDate(holiday.Date),
			Name:          holiday.Name,
			LocalizedName: holiday.LocalizedName,
		})
	}
	sort.Slice(holidayResponses, func(i, j int) bool {
		return holidayResponses[i].Date < holidayResponses[j].Date
	})

	c.JSON(http.StatusOK, dto.FiscalPeriodResponse{
		PeriodStart:            dto.FormatDate(month.Start),
		PeriodEnd:              dto.FormatDate(month.End),
		FiscalYear:             month.FiscalYear,
		MonthIndex:             month.MonthIndex,
		FiscalYearPatternScope: string(info.FiscalYearScope),
		MonthlyPatternScope:    string(info.MonthlyScope),
		Holidays:               holidayResponses,
	})
}
