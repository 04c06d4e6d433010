package dto

import (
	"github.com/totodo713/miometory-sub007/internal/core/domain"
)

// CalendarEntryResponse is one entry's contribution to a calendar day.
type CalendarEntryResponse struct {
	EntryID   string  `json:"entryID"`
	ProjectID string  `json:"projectID"`
	Hours     float64 `json:"hours"`
	Status    string  `json:"status"`
}

// CalendarDayResponse is the per-date rollup returned by the calendar query.
type CalendarDayResponse struct {
	Date       string                  `json:"date"`
	TotalHours float64                 `json:"totalHours"`
	Holiday    string                  `json:"holiday,omitempty"`
	Entries    []CalendarEntryResponse `json:"entries"`
}

// CalendarResponse is a member's calendar for one fiscal month.
type CalendarResponse struct {
	MemberID    string                `json:"memberID"`
	FiscalYear  int                   `json:"fiscalYear"`
	MonthIndex  int                   `json:"monthIndex"`
	PeriodStart string                `json:"periodStart"`
	PeriodEnd   string                `json:"periodEnd"`
	Days        []CalendarDayResponse `json:"days"`
}

// ProjectSummaryResponse is the per-project rollup returned by the summary
// query.
type ProjectSummaryResponse struct {
	ProjectID  string  `json:"projectID"`
	TotalHours float64 `json:"totalHours"`
	Percentage float64 `json:"percentage"`
}

// SummaryResponse is a member's project summary for one fiscal month.
type SummaryResponse struct {
	MemberID    string                   `json:"memberID"`
	FiscalYear  int                      `json:"fiscalYear"`
	MonthIndex  int                      `json:"monthIndex"`
	PeriodStart string                   `json:"periodStart"`
	PeriodEnd   string                   `json:"periodEnd"`
	TotalHours  float64                  `json:"totalHours"`
	Projects    []ProjectSummaryResponse `json:"projects"`
}

// HolidayResponse is a resolved holiday instance.
type HolidayResponse struct {
	Date          string `json:"date"`
	Name          string `json:"name"`
	LocalizedName string `json:"localizedName,omitempty"`
}

// FiscalPeriodResponse reports the fiscal month containing a date, plus the
// configuration scope each pattern came from (traceability only).
type FiscalPeriodResponse struct {
	PeriodStart            string            `json:"periodStart"`
	PeriodEnd              string            `json:"periodEnd"`
	FiscalYear             int               `json:"fiscalYear"`
	MonthIndex             int               `json:"monthIndex"`
	FiscalYearPatternScope string            `json:"fiscalYearPatternScope"`
	MonthlyPatternScope    string            `json:"monthlyPatternScope"`
	Holidays               []HolidayResponse `json:"holidays"`
}

// ToCalendarDayResponse converts a domain calendar day.
func ToCalendarDayResponse(day domain.CalendarDay) CalendarDayResponse {
	entries := make([]CalendarEntryResponse, len(day.Entries))
	for i, e := range day.Entries {
		entries[i] = CalendarEntryResponse{
			EntryID:   e.EntryID,
			ProjectID: e.ProjectID,
			Hours:     e.Hours.Float64(),
			Status:    string(e.Status),
		}
	}
	return CalendarDayResponse{
		Date:       FormatDate(day.Date),
		TotalHours: day.TotalHours.InexactFloat64(),
		Entries:    entries,
	}
}

// ToProjectSummaryResponse converts a domain project summary.
func ToProjectSummaryResponse(s domain.ProjectSummary) ProjectSummaryResponse {
	return ProjectSummaryResponse{
		ProjectID:  s.ProjectID,
		TotalHours: s.TotalHours.InexactFloat64(),
		Percentage: s.Percentage.InexactFloat64(),
	}
}
