package mapping

import (
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	"github.com/totodo713/miometory-sub007/internal/models"
)

// ToModelDailyEntry converts a domain DailyEntry to a model DailyEntry
func ToModelDailyEntry(d domain.DailyEntry) models.DailyEntry {
	return models.DailyEntry{
		EntryID:   d.EntryID,
		MemberID:  d.MemberID,
		ProjectID: d.ProjectID,
		EntryDate: d.Date,
		Hours:     d.Hours.Decimal(),
		Comment:   d.Comment,
		Status:    string(d.Status),
		EnteredBy: d.EnteredBy,
	}
}

// ToDomainDailyEntry converts a model DailyEntry to a domain DailyEntry
func ToDomainDailyEntry(m models.DailyEntry) (domain.DailyEntry, error) {
	hours, err := domain.NewTimeAmount(m.Hours)
	if err != nil {
		return domain.DailyEntry{}, err
	}
	return domain.DailyEntry{
		EntryID:   m.EntryID,
		MemberID:  m.MemberID,
		ProjectID: m.ProjectID,
		Date:      m.EntryDate,
		Hours:     hours,
		Comment:   m.Comment,
		Status:    domain.WorkLogStatus(m.Status),
		EnteredBy: m.EnteredBy,
	}, nil
}

// ToModelMonthlyApprovalRow converts a domain lookup row to its model
func ToModelMonthlyApprovalRow(d domain.MonthlyApprovalRow) models.MonthlyApprovalRow {
	return models.MonthlyApprovalRow{
		ApprovalID:  d.ApprovalID,
		MemberID:    d.MemberID,
		PeriodStart: d.PeriodStart,
		PeriodEnd:   d.PeriodEnd,
		Status:      string(d.Status),
	}
}

// ToDomainMonthlyApprovalRow converts a model lookup row to its domain form
func ToDomainMonthlyApprovalRow(m models.MonthlyApprovalRow) domain.MonthlyApprovalRow {
	return domain.MonthlyApprovalRow{
		ApprovalID:  m.ApprovalID,
		MemberID:    m.MemberID,
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		Status:      domain.MonthlyApprovalStatus(m.Status),
	}
}
