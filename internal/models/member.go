package models

// Member is the persisted directory record.
type Member struct {
	MemberID       string `db:"member_id"`
	DisplayName    string `db:"display_name"`
	ManagerID      string `db:"manager_id"`
	OrganizationID string `db:"organization_id"`
	TenantID       string `db:"tenant_id"`
	AuditFields
}
