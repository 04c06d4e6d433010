package mapping

import (
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	"github.com/totodo713/miometory-sub007/internal/models"
)

// ToDomainMember converts a model Member to a domain Member
func ToDomainMember(m models.Member) domain.Member {
	return domain.Member{
		MemberID:       m.MemberID,
		DisplayName:    m.DisplayName,
		ManagerID:      m.ManagerID,
		OrganizationID: m.OrganizationID,
		TenantID:       m.TenantID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
