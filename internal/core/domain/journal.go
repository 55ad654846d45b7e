package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a constructed, unsaved double-entry accounting record.
// The payment matcher builds one from a payment request; the caller is
// responsible for persisting it.
type JournalEntry struct {
	Company       string     `json:"company"`
	VoucherType   string     `json:"voucherType"` // Always "Journal Entry"
	ChequeNo      string     `json:"chequeNo"`
	ChequeDate    *time.Time `json:"chequeDate,omitempty"`
	Lines         []JournalEntryLine `json:"lines"`
}

// JournalEntryLine is one accounting row of a journal entry. Exactly one of
// Debit/Credit is nonzero on lines the payment matcher produces.
type JournalEntryLine struct {
	Account       string          `json:"account"`
	PartyType     PartyType       `json:"partyType,omitempty"`
	Party         string          `json:"party,omitempty"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"` // account balance snapshot, display only
	ReferenceType VoucherType     `json:"referenceType,omitempty"`
	ReferenceName string          `json:"referenceName,omitempty"`
	IsAdvance     bool            `json:"isAdvance"`
}

// TotalDebit sums the debit side of all lines.
func (j *JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (j *JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// Balanced reports whether total debits equal total credits.
func (j *JournalEntry) Balanced() bool {
	return j.TotalDebit().Equal(j.TotalCredit())
}
