package domain

import "time"

// AuditFields is the creation/update trail embedded in every persisted
// entity. CreatedBy and LastUpdatedBy hold the acting user's subject ID, or
// the contact email for records created through the shopping cart.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
