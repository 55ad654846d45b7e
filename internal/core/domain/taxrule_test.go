package domain_test

import (
	"testing"
	"time"

	"github.com/finpoint/erp_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestTaxRule_Template(t *testing.T) {
	tests := []struct {
		name string
		rule domain.TaxRule
		want string
	}{
		{
			name: "sales template",
			rule: domain.TaxRule{TaxType: domain.SalesTax, SalesTaxTemplate: "Standard VAT"},
			want: "Standard VAT",
		},
		{
			name: "purchase template",
			rule: domain.TaxRule{TaxType: domain.PurchaseTax, PurchaseTaxTemplate: "Input VAT"},
			want: "Input VAT",
		},
		{
			name: "no template",
			rule: domain.TaxRule{TaxType: domain.SalesTax},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Template())
		})
	}
}

func TestDateRangesConflict(t *testing.T) {
	tests := []struct {
		name                   string
		aFrom, aTo, bFrom, bTo *time.Time
		want                   bool
	}{
		{
			name:  "disjoint ranges",
			aFrom: datePtr(2026, 1, 1), aTo: datePtr(2026, 3, 31),
			bFrom: datePtr(2026, 7, 1), bTo: datePtr(2026, 9, 30),
			want: false,
		},
		{
			name:  "shared endpoint only does not conflict",
			aFrom: datePtr(2026, 1, 1), aTo: datePtr(2026, 6, 1),
			bFrom: datePtr(2026, 6, 1), bTo: datePtr(2026, 12, 1),
			want: false,
		},
		{
			name:  "identical range conflicts",
			aFrom: datePtr(2026, 1, 1), aTo: datePtr(2026, 6, 1),
			bFrom: datePtr(2026, 1, 1), bTo: datePtr(2026, 6, 1),
			want: true,
		},
		{
			name:  "existing start falls inside candidate",
			aFrom: datePtr(2026, 1, 1), aTo: datePtr(2026, 6, 1),
			bFrom: datePtr(2026, 3, 1), bTo: datePtr(2026, 9, 1),
			want: true,
		},
		{
			name:  "existing end falls inside candidate",
			aFrom: datePtr(2026, 3, 1), aTo: datePtr(2026, 9, 1),
			bFrom: datePtr(2026, 1, 1), bTo: datePtr(2026, 6, 1),
			want: true,
		},
		{
			name:  "candidate start falls inside existing",
			aFrom: datePtr(2026, 3, 1), aTo: datePtr(2026, 4, 1),
			bFrom: datePtr(2026, 1, 1), bTo: datePtr(2026, 12, 1),
			want: true,
		},
		{
			name:  "candidate inside existing but sharing its start",
			aFrom: datePtr(2026, 1, 1), aTo: datePtr(2026, 3, 1),
			bFrom: datePtr(2026, 1, 1), bTo: datePtr(2026, 12, 1),
			want: false,
		},
		{
			name:  "candidate open ended from conflicts with later end",
			aFrom: datePtr(2026, 6, 1),
			bFrom: datePtr(2026, 1, 1), bTo: datePtr(2026, 9, 1),
			want: true,
		},
		{
			name:  "candidate open ended from ignores earlier end",
			aFrom: datePtr(2026, 6, 1),
			bFrom: datePtr(2026, 1, 1), bTo: datePtr(2026, 6, 1),
			want: false,
		},
		{
			name:  "candidate open ended from ignores fully open existing",
			aFrom: datePtr(2026, 6, 1),
			want:  false,
		},
		{
			name: "candidate open ended to conflicts with earlier start",
			aTo:  datePtr(2026, 6, 1),
			bFrom: datePtr(2026, 1, 1), bTo: datePtr(2026, 3, 1),
			want: true,
		},
		{
			name: "candidate open ended to ignores later start",
			aTo:  datePtr(2026, 6, 1),
			bFrom: datePtr(2026, 6, 1),
			want: false,
		},
		{
			name: "fully open candidate conflicts with everything",
			bFrom: datePtr(2026, 1, 1), bTo: datePtr(2026, 3, 1),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DateRangesConflict(tt.aFrom, tt.aTo, tt.bFrom, tt.bTo)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaxRule_Specificity(t *testing.T) {
	filters := domain.TaxRuleFilters{
		TaxType:     domain.SalesTax,
		Customer:    "Initech",
		BillingCity: "Pune",
		Company:     "Acme Ltd",
	}

	tests := []struct {
		name string
		rule domain.TaxRule
		want int
	}{
		{
			name: "tax type only",
			rule: domain.TaxRule{TaxType: domain.SalesTax},
			want: 1,
		},
		{
			name: "customer narrows the match",
			rule: domain.TaxRule{TaxType: domain.SalesTax, Customer: "Initech"},
			want: 2,
		},
		{
			name: "customer plus geography plus company",
			rule: domain.TaxRule{TaxType: domain.SalesTax, Customer: "Initech", BillingCity: "Pune", Company: "Acme Ltd"},
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Specificity(filters))
		})
	}
}
