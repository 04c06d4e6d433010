package dto

import (
	"time"

	"github.com/totodo713/miometory-sub007/internal/core/domain"
)

// RecordDailyApprovalRequest carries the RecordDailyApproval command.
type RecordDailyApprovalRequest struct {
	WorkLogEntryID string `json:"workLogEntryID" binding:"required"`
	Status         string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	Comment        string `json:"comment"`
}

// DailyApprovalResponse defines the data returned for a supervisor decision.
type DailyApprovalResponse struct {
	DecisionID     string    `json:"decisionID"`
	WorkLogEntryID string    `json:"workLogEntryID"`
	MemberID       string    `json:"memberID"`
	SupervisorID   string    `json:"supervisorID"`
	EntryDate      string    `json:"entryDate"`
	Status         string    `json:"status"`
	Comment        string    `json:"comment,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToDailyApprovalResponse converts a domain decision to its response DTO.
func ToDailyApprovalResponse(d *domain.DailyEntryApproval) DailyApprovalResponse {
	return DailyApprovalResponse{
		DecisionID:     d.ID,
		WorkLogEntryID: d.WorkLogEntryID,
		MemberID:       d.MemberID,
		SupervisorID:   d.SupervisorID,
		EntryDate:      FormatDate(d.EntryDate),
		Status:         string(d.Status),
		Comment:        d.Comment,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
