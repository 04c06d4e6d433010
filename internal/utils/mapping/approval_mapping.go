package mapping

import (
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	"github.com/totodo713/miometory-sub007/internal/models"
)

// ToModelDailyEntryApproval converts a domain decision to a model decision
func ToModelDailyEntryApproval(d domain.DailyEntryApproval) models.DailyEntryApproval {
	return models.DailyEntryApproval{
		DecisionID:     d.ID,
		WorkLogEntryID: d.WorkLogEntryID,
		MemberID:       d.MemberID,
		SupervisorID:   d.SupervisorID,
		EntryDate:      d.EntryDate,
		Status:         string(d.Status),
		Comment:        d.Comment,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// ToDomainDailyEntryApproval converts a model decision to a domain decision
func ToDomainDailyEntryApproval(m models.DailyEntryApproval) domain.DailyEntryApproval {
	return domain.DailyEntryApproval{
		ID:             m.DecisionID,
		WorkLogEntryID: m.WorkLogEntryID,
		MemberID:       m.MemberID,
		SupervisorID:   m.SupervisorID,
		EntryDate:      m.EntryDate,
		Status:         domain.DailyApprovalStatus(m.Status),
		Comment:        m.Comment,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
