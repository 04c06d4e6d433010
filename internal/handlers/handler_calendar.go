package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/totodo713/miometory-sub007/internal/core/ports/services"
)

// calendarHandler handles HTTP requests for the read-side projections.
type calendarHandler struct {
	calendarService portssvc.CalendarQuerySvcFacade
}

func newCalendarHandler(cs portssvc.CalendarQuerySvcFacade) *calendarHandler {
	return &calendarHandler{calendarService: cs}
}

// registerCalendarRoutes registers the member calendar and summary queries.
func registerCalendarRoutes(rg *gin.RouterGroup, calendarService portssvc.CalendarQuerySvcFacade) {
	h := newCalendarHandler(calendarService)

	members := rg.Group("/members/:memberID")
	{
		members.GET("/calendar", h.getCalendar)
		members.GET("/summary", h.getSummary)
	}
}

func (h *calendarHandler) getCalendar(c *gin.Context) {
	memberID := c.Param("memberID")
	date, ok := requireDateQuery(c)
	if !ok {
		return
	}

	calendar, err := h.calendarService.GetMemberCalendar(c.Request.Context(), memberID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, calendar)
}

func (h *calendarHandler) getSummary(c *gin.Context) {
	memberID := c.Param("memberID")
	date, ok := requireDateQuery(c)
	if !ok {
		return
	}

	summary, err := h.calendarService.GetMemberSummary(c.Request.Context(), memberID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
