package domain

import "time"

// AuditFields records who touched a directory record and when. The By fields
// hold member ids; membership management itself lives outside this service,
// so the fields are carried through unchanged.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
