package dto

import (
	"github.com/totodo713/miometory-sub007/internal/core/domain"
)

// CreateWorkLogEntryRequest carries the CreateTimeEntry command. Date and
// Hours are pointers so the domain can distinguish missing from zero and
// answer with its own codes.
type CreateWorkLogEntryRequest struct {
	MemberID  string   `json:"memberID" binding:"required"`
	ProjectID string   `json:"projectID" binding:"required"`
	Date      *string  `json:"date"`
	Hours     *float64 `json:"hours"`
	Comment   string   `json:"comment"`
}

// UpdateWorkLogEntryRequest carries the UpdateTimeEntry command.
type UpdateWorkLogEntryRequest struct {
	Hours   *float64 `json:"hours"`
	Comment string   `json:"comment"`
}

// ChangeWorkLogStatusRequest carries the ChangeTimeEntryStatus command.
type ChangeWorkLogStatusRequest struct {
	TargetStatus string `json:"targetStatus" binding:"required"`
}

// WorkLogEntryResponse defines the data returned for a work-log entry.
type WorkLogEntryResponse struct {
	EntryID    string  `json:"entryID"`
	MemberID   string  `json:"memberID"`
	ProjectID  string  `json:"projectID"`
	Date       string  `json:"date"`
	Hours      float64 `json:"hours"`
	Comment    string  `json:"comment,omitempty"`
	Status     string  `json:"status"`
	EnteredBy  string  `json:"enteredBy"`
	ProxyEntry bool    `json:"proxyEntry"`
	Version    int64   `json:"version"`
}

// ToWorkLogEntryResponse converts a domain aggregate to its response DTO.
func ToWorkLogEntryResponse(e *domain.WorkLogEntry) WorkLogEntryResponse {
	return WorkLogEntryResponse{
		EntryID:    e.ID,
		MemberID:   e.MemberID,
		ProjectID:  e.ProjectID,
		Date:       FormatDate(e.Date),
		Hours:      e.Hours.Float64(),
		Comment:    e.Comment,
		Status:     string(e.Status),
		EnteredBy:  e.EnteredBy,
		ProxyEntry: e.IsProxyEntry(),
		Version:    e.Version,
	}
}
