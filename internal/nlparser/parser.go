package nlparser

import (
	"time"

	"paisahub/finassist/internal/categorizer"
	"paisahub/finassist/internal/models"
)

// Confidence contributions per extracted field. The sum is capped at 1.0.
const (
	amountWeight   = 0.5
	categoryWeight = 0.3
	merchantWeight = 0.1
	dateWeight     = 0.1

	// validThreshold is the confidence a parse must exceed, in addition to
	// having an amount, to be considered usable.
	validThreshold = 0.5
)

// Parser extracts structured expense fields from free text.
type Parser struct {
	matcher *categorizer.KeywordMatcher
	now     func() time.Time
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithClock overrides the time source, used by tests and replayed imports.
func WithClock(now func() time.Time) ParserOption {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// WithMatcher replaces the keyword matcher used for category extraction.
func WithMatcher(m *categorizer.KeywordMatcher) ParserOption {
	return func(p *Parser) {
		if m != nil {
			p.matcher = m
		}
	}
}

// NewParser creates a Parser with the built-in keyword tables.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		matcher: categorizer.NewKeywordMatcher(nil),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts the amount, category, merchant, date and payment method from
// text and scores how much evidence was found. It never fails: missing fields
// lower the confidence instead.
func (p *Parser) Parse(text string) models.ParsedExpense {
	now := p.now()

	result := models.ParsedExpense{
		Category:      models.CategoryOther,
		PaymentMethod: models.PaymentUnknown,
		OriginalText:  text,
	}

	if amount, found := ExtractAmount(text); found {
		result.Amount = amount
		result.AmountFound = true
		result.Confidence += amountWeight
	}

	if category := p.matcher.Match(text); category != models.CategoryOther {
		result.Category = category
		result.Confidence += categoryWeight
	}

	if merchant, found := ExtractMerchant(text); found {
		result.Merchant = merchant
		result.Confidence += merchantWeight
	}

	result.Date = ExtractDate(text, now)
	result.Confidence += dateWeight

	result.PaymentMethod = ExtractPaymentMethod(text)

	if result.Confidence > 1.0 {
		result.Confidence = 1.0
	}

	return result
}

// Validate reports whether a parse carries enough evidence to act on: an
// amount was found and the confidence clears the threshold.
func Validate(parsed models.ParsedExpense) bool {
	return parsed.AmountFound && parsed.Confidence > validThreshold
}
