package nlparser

import (
	"regexp"
	"strings"

	"paisahub/finassist/internal/models"
)

// knownMerchants are checked before the positional pattern. Matching is a
// case-insensitive substring test.
var knownMerchants = []string{
	"swiggy", "zomato", "uber", "ola", "dmart", "bigbazaar",
	"flipkart", "amazon", "myntra", "ajio", "paytm", "gpay",
	"phonepe", "dominos", "kfc", "mcdonalds", "apollo", "medlife",
	"netflix", "prime", "hotstar", "spotify", "zerodha", "groww",
}

// atFromPattern captures the word after "at" or "from".
var atFromPattern = regexp.MustCompile(`(?:at|from)\s+([a-z\s]+?)(?:\s|$)`)

// paymentKeywords maps each payment method to the phrases that indicate it.
// Methods are checked in this order.
var paymentKeywords = []struct {
	method   string
	keywords []string
}{
	{models.PaymentUPI, []string{"upi", "gpay", "phonepe", "paytm", "bhim"}},
	{models.PaymentCash, []string{"cash", "paid in cash"}},
	{models.PaymentCard, []string{"card", "credit card", "debit card", "swiped"}},
	{models.PaymentNetbanking, []string{"netbanking", "net banking", "online"}},
}

// ExtractMerchant finds a merchant name in text. Known merchant names win
// over the "at <name>" / "from <name>" pattern. The result is title-cased;
// the second return value is false when nothing was found.
func ExtractMerchant(text string) (string, bool) {
	lower := strings.ToLower(text)

	for _, merchant := range knownMerchants {
		if strings.Contains(lower, merchant) {
			return titleCase(merchant), true
		}
	}

	if match := atFromPattern.FindStringSubmatch(lower); match != nil {
		name := strings.TrimSpace(match[1])
		if name != "" {
			return titleCase(name), true
		}
	}

	return "", false
}

// ExtractPaymentMethod finds a payment method keyword in text, returning
// PaymentUnknown when none matches.
func ExtractPaymentMethod(text string) string {
	lower := strings.ToLower(text)
	for _, group := range paymentKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(lower, keyword) {
				return group.method
			}
		}
	}
	return models.PaymentUnknown
}

// titleCase upper-cases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
