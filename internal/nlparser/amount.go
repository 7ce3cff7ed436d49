// Package nlparser turns free-text expense descriptions like
// "spent 500 on groceries yesterday" into structured fields.
package nlparser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPatterns are tried in order. Earlier patterns carry stronger textual
// evidence (an explicit currency marker beats a bare number next to "for").
var amountPatterns = []*regexp.Regexp{
	// ₹500, Rs 500, rs. 1,200.50
	regexp.MustCompile(`(?:rs\.?|₹)\s*(\d+(?:,\d+)*(?:\.\d{2})?)`),
	// 500 rs, 500 rupees
	regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d{2})?)\s*(?:rs|rupees)`),
	// spent 500, paid 1200
	regexp.MustCompile(`(?:spent|paid|cost|worth)\s+(\d+(?:,\d+)*(?:\.\d{2})?)`),
	// 500 for, 250 on
	regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d{2})?)\s+(?:for|on)`),
}

// bareNumber is the last-resort fallback: the first number anywhere in the
// text.
var bareNumber = regexp.MustCompile(`\d+(?:\.\d{2})?`)

// ExtractAmount finds a monetary amount in text. The second return value is
// false when no amount could be found at all.
func ExtractAmount(text string) (decimal.Decimal, bool) {
	lower := strings.ToLower(text)

	for _, pattern := range amountPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(match[1], ",", ""))
		if err != nil {
			continue
		}
		return amount, true
	}

	if raw := bareNumber.FindString(text); raw != "" {
		if amount, err := decimal.NewFromString(raw); err == nil {
			return amount, true
		}
	}

	return decimal.Zero, false
}
