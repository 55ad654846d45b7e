package domain

// PartyType distinguishes the kinds of parties a transaction can involve.
type PartyType string

const (
	Customer PartyType = "Customer"
	Supplier PartyType = "Supplier"
	Lead     PartyType = "Lead"
)

// LeadRecord is a prospective customer created for website users who have no
// customer record yet.
type LeadRecord struct {
	LeadID   string `json:"leadID"`
	LeadName string `json:"leadName"`
	Email    string `json:"email"`
	Status   string `json:"status"`
	Company  string `json:"company"`
	AuditFields
}

// Address holds the geographic fields of a party address relevant to tax rule
// matching.
type Address struct {
	AddressID         string `json:"addressID"`
	City              string `json:"city"`
	State             string `json:"state"`
	Country           string `json:"country"`
	IsPrimaryAddress  bool   `json:"isPrimaryAddress"`
	IsShippingAddress bool   `json:"isShippingAddress"`
}

// PartyDetails bundles the billing and shipping geography of a party, used to
// build tax rule match attributes.
type PartyDetails struct {
	BillingCity     string `json:"billingCity,omitempty"`
	BillingState    string `json:"billingState,omitempty"`
	BillingCountry  string `json:"billingCountry,omitempty"`
	ShippingCity    string `json:"shippingCity,omitempty"`
	ShippingState   string `json:"shippingState,omitempty"`
	ShippingCountry string `json:"shippingCountry,omitempty"`
}
