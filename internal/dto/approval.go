package dto

import (
	"time"

	"github.com/totodo713/miometory-sub007/internal/core/domain"
)

// SubmitMonthRequest carries the SubmitMonth command. Date is any date inside
// the fiscal month being submitted; the resolver computes the period.
type SubmitMonthRequest struct {
	MemberID        string   `json:"memberID" binding:"required"`
	Date            *string  `json:"date"`
	WorkLogEntryIDs []string `json:"workLogEntryIDs" binding:"required"`
	AbsenceIDs      []string `json:"absenceIDs"`
}

// RejectMonthRequest carries the RejectMonth command.
type RejectMonthRequest struct {
	Reason string `json:"reason"`
}

// MonthlyApprovalResponse defines the data returned for a monthly approval.
type MonthlyApprovalResponse struct {
	ApprovalID      string     `json:"approvalID"`
	MemberID        string     `json:"memberID"`
	PeriodStart     string     `json:"periodStart"`
	PeriodEnd       string     `json:"periodEnd"`
	Status          string     `json:"status"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	SubmittedBy     string     `json:"submittedBy,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	ReviewedBy      string     `json:"reviewedBy,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	WorkLogEntryIDs []string   `json:"workLogEntryIDs,omitempty"`
	AbsenceIDs      []string   `json:"absenceIDs,omitempty"`
	Version         int64      `json:"version"`
}

// ToMonthlyApprovalResponse converts a domain aggregate to its response DTO.
func ToMonthlyApprovalResponse(a *domain.MonthlyApproval) MonthlyApprovalResponse {
	return MonthlyApprovalResponse{
		ApprovalID:      a.ID,
		MemberID:        a.MemberID,
		PeriodStart:     FormatDate(a.PeriodStart),
		PeriodEnd:       FormatDate(a.PeriodEnd),
		Status:          string(a.Status),
		SubmittedAt:     a.SubmittedAt,
		SubmittedBy:     a.SubmittedBy,
		ReviewedAt:      a.ReviewedAt,
		ReviewedBy:      a.ReviewedBy,
		RejectionReason: a.RejectionReason,
		WorkLogEntryIDs: a.WorkLogEntryIDs,
		AbsenceIDs:      a.AbsenceIDs,
		Version:         a.Version,
	}
}

// DailyApprovalRollup counts the active supervisor decisions across the
// fiscal month's entries.
type DailyApprovalRollup struct {
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Undecided int `json:"undecided"`
}

// ApprovalDetailResponse combines the monthly approval with its daily
// decision rollup and any rejections still awaiting correction.
type ApprovalDetailResponse struct {
	Approval             MonthlyApprovalResponse `json:"approval"`
	Rollup               DailyApprovalRollup     `json:"dailyApprovals"`
	UnresolvedRejections []DailyApprovalResponse `json:"unresolvedRejections"`
}
