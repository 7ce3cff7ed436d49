package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayoutISO is the calendar date format used for all persisted and parsed
// dates (YYYY-MM-DD).
const DateLayoutISO = "2006-01-02"

// Payment methods recognized by the payment-method extractor.
const (
	PaymentUPI        = "UPI"
	PaymentCash       = "CASH"
	PaymentCard       = "CARD"
	PaymentNetbanking = "NETBANKING"
	PaymentUnknown    = "Unknown"
)

// ParsedExpense is the transient result of parsing one free-text expense line.
// It is constructed per parse call and immediately consumed by the caller;
// it is never stored itself.
type ParsedExpense struct {
	// Amount is only meaningful when AmountFound is true. A found amount of
	// zero is distinct from "no amount found".
	Amount      decimal.Decimal `json:"amount"`
	AmountFound bool            `json:"amount_found"`

	// Category is always present and defaults to CategoryOther.
	Category Category `json:"category"`

	// Merchant is empty when no merchant could be extracted.
	Merchant string `json:"merchant,omitempty"`

	// Date is an ISO calendar date and is always present; extraction degrades
	// to the current date rather than failing.
	Date string `json:"date"`

	// PaymentMethod defaults to PaymentUnknown.
	PaymentMethod string `json:"payment_method"`

	// Confidence is in [0,1]. It measures textual evidence, not a calibrated
	// probability.
	Confidence float64 `json:"confidence"`

	// OriginalText is the verbatim input.
	OriginalText string `json:"original_text"`
}

// ExpenseEntry is a persisted expense record. Entries are immutable after
// creation; they are only ever deleted (by date-range reset or en masse).
type ExpenseEntry struct {
	ID       int64           `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
}

// NewExpenseEntry creates an entry dated today.
func NewExpenseEntry(amount decimal.Decimal, category string) ExpenseEntry {
	return NewExpenseEntryOn(amount, category, time.Now().Format(DateLayoutISO))
}

// NewExpenseEntryOn creates an entry with an explicit ISO date.
func NewExpenseEntryOn(amount decimal.Decimal, category, date string) ExpenseEntry {
	return ExpenseEntry{
		Amount:   amount,
		Category: category,
		Date:     date,
	}
}

// Debt is a named liability with its payoff parameters.
type Debt struct {
	Name           string          `json:"name"`
	Balance        decimal.Decimal `json:"balance"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	MinimumPayment decimal.Decimal `json:"minimum_payment"`
}

// SavingsGoal is a named target amount with a target date.
type SavingsGoal struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	TargetDate string          `json:"target_date"`
}

// Budget holds the top-level monthly budget figures. Only the most recently
// saved budget is meaningful.
type Budget struct {
	Income             decimal.Decimal `json:"income"`
	ExpensesTotal      decimal.Decimal `json:"expenses"`
	RecommendedSavings decimal.Decimal `json:"recommended_savings"`
	Leftover           decimal.Decimal `json:"leftover"`
}
