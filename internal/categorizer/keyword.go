package categorizer

import (
	"strings"

	"paisahub/finassist/internal/models"
)

// defaultTables holds the built-in keyword tables. Order is significant: when
// two categories score the same keyword count, the one listed first wins.
var defaultTables = []models.CategoryConfig{
	{Name: string(models.CategoryGroceries), Keywords: []string{
		"dmart", "bigbazaar", "bigbasket", "reliance fresh", "supermarket", "grocery", "groceries",
		"vegetables", "fruits", "milk", "bread", "rice", "dal", "sabzi",
		"kirana", "ration", "provisions", "haldiram",
	}},
	{Name: string(models.CategoryDining), Keywords: []string{
		"swiggy", "zomato", "restaurant", "cafe", "dhaba", "food",
		"lunch", "dinner", "breakfast", "pizza", "burger", "biryani",
		"dominos", "kfc", "mcdonalds", "subway", "bikanervala",
	}},
	{Name: string(models.CategoryTransport), Keywords: []string{
		"uber", "ola", "rapido", "metro", "bus", "train", "auto", "rickshaw",
		"petrol", "diesel", "fuel", "cng", "parking", "toll", "fastag",
		"irctc", "flight", "taxi", "cab",
	}},
	{Name: string(models.CategoryHousing), Keywords: []string{
		"rent", "maintenance", "society", "housing", "apartment", "flat",
		"cylinder", "lpg", "repair", "furniture", "paint",
	}},
	{Name: string(models.CategoryEntertainment), Keywords: []string{
		"movie", "pvr", "inox", "netflix", "amazon prime", "hotstar", "spotify",
		"concert", "show", "bookmyshow", "game", "party", "club",
	}},
	{Name: string(models.CategoryHealthcare), Keywords: []string{
		"doctor", "hospital", "clinic", "medicine", "pharmacy", "apollo",
		"medlife", "1mg", "netmeds", "health", "treatment", "checkup",
		"lab", "medical",
	}},
	{Name: string(models.CategoryShopping), Keywords: []string{
		"amazon", "flipkart", "myntra", "ajio", "meesho", "shopping",
		"clothes", "shoes", "mall", "store", "order",
		"fashion", "accessories", "gadget",
	}},
	{Name: string(models.CategoryEducation), Keywords: []string{
		"fees", "tuition", "course", "udemy", "coursera", "book", "study",
		"school", "college", "university", "coaching", "exam", "education",
	}},
	{Name: string(models.CategoryUtilities), Keywords: []string{
		"electricity", "water bill", "phone bill", "internet", "wifi",
		"broadband", "jio", "airtel", "vodafone", "bsnl", "recharge",
		"mobile", "postpaid", "prepaid", "bill",
	}},
	{Name: string(models.CategoryInsurance), Keywords: []string{
		"lic", "insurance", "premium", "policy",
	}},
	{Name: string(models.CategoryInvestment), Keywords: []string{
		"mutual fund", "sip", "stock", "shares", "zerodha", "groww",
		"upstox", "investment", "fixed deposit", "ppf", "nps",
	}},
}

// DefaultTables returns a copy of the built-in keyword tables.
func DefaultTables() []models.CategoryConfig {
	tables := make([]models.CategoryConfig, len(defaultTables))
	copy(tables, defaultTables)
	return tables
}

// KeywordMatcher maps free text onto the closed category set using substring
// containment against per-category keyword lists. It holds only static data
// loaded at construction and is safe for concurrent use.
type KeywordMatcher struct {
	tables []models.CategoryConfig
}

// NewKeywordMatcher builds a matcher over the given ordered tables. Empty or
// nil tables fall back to the built-in set.
func NewKeywordMatcher(tables []models.CategoryConfig) *KeywordMatcher {
	if len(tables) == 0 {
		tables = DefaultTables()
	}
	return &KeywordMatcher{tables: tables}
}

// Match returns the category whose keywords occur most often in text, with
// ties broken by table order. Matching is case-insensitive substring
// containment, not word matching: "dmartian" matches "dmart". Input that
// matches no keyword yields CategoryOther.
func (m *KeywordMatcher) Match(text string) models.Category {
	lower := strings.ToLower(text)

	best := models.CategoryOther
	bestScore := 0
	for _, table := range m.tables {
		score := 0
		for _, keyword := range table.Keywords {
			if strings.Contains(lower, keyword) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = models.Category(table.Name)
		}
	}

	return best
}
