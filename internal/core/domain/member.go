package domain

// Member is the directory record the core consults for supervisor checks and
// pattern scoping. Membership management itself lives outside this service.
type Member struct {
	MemberID       string `json:"memberID"`
	DisplayName    string `json:"displayName"`
	ManagerID      string `json:"managerID,omitempty"`
	OrganizationID string `json:"organizationID"`
	TenantID       string `json:"tenantID"`
	AuditFields
}
