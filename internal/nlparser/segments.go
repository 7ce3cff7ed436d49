package nlparser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ExpenseSegment is one "amount category" pair parsed from a multi-item line
// like "200 groceries; 50 dining".
type ExpenseSegment struct {
	Amount      decimal.Decimal
	AmountFound bool
	Category    string
}

// DebtSegment is one "Name balance rate minimum" group parsed from a debt
// line. Missing numeric fields leave the corresponding Found flag false.
type DebtSegment struct {
	Name         string
	Balance      decimal.Decimal
	BalanceFound bool
	InterestRate decimal.Decimal
	RateFound    bool
	Minimum      decimal.Decimal
	MinimumFound bool
}

var (
	segmentSplit    = regexp.MustCompile(`[;,]`)
	debtSplit       = regexp.MustCompile(`;`)
	segmentAmount   = regexp.MustCompile(`\$?([0-9,]*\.?[0-9]+)`)
	debtCommandWord = regexp.MustCompile(`(?i)^add\s+debts?\s*`)
	debtNumber      = regexp.MustCompile(`[-+]?[0-9]*\.?[0-9]+`)
)

// ParseExpenseSegments splits a line like "200 groceries; 50 dining" on
// semicolons and commas and extracts an amount and a category from each part.
// A part with an amount but no trailing words gets the category "Misc"; a
// part with no amount keeps its text as the category and AmountFound false.
func ParseExpenseSegments(raw string) []ExpenseSegment {
	var items []ExpenseSegment
	for _, part := range segmentSplit.Split(raw, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		loc := segmentAmount.FindStringSubmatchIndex(part)
		if loc == nil {
			items = append(items, ExpenseSegment{Category: part})
			continue
		}
		numText := strings.ReplaceAll(part[loc[2]:loc[3]], ",", "")
		amount, err := decimal.NewFromString(numText)
		seg := ExpenseSegment{Category: strings.TrimSpace(part[loc[1]:])}
		if err == nil {
			seg.Amount = amount
			seg.AmountFound = true
		}
		if seg.Category == "" {
			seg.Category = "Misc"
		}
		items = append(items, seg)
	}
	return items
}

// ParseDebtSegments parses lines like
// "CreditCard 1500 18 50; StudentLoan 10000 5 100" into debt fields: name,
// balance, interest rate and minimum payment. A leading "add debt(s)" command
// word is stripped. Segments with fewer numbers fill what they can.
func ParseDebtSegments(raw string) []DebtSegment {
	var debts []DebtSegment
	for _, part := range debtSplit.Split(raw, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		clean := strings.TrimSpace(debtCommandWord.ReplaceAllString(part, ""))
		tokens := strings.Fields(clean)

		if len(tokens) >= 4 {
			seg := DebtSegment{Name: tokens[0]}
			seg.Balance, seg.BalanceFound = parseNumber(tokens[1])
			seg.InterestRate, seg.RateFound = parseNumber(tokens[2])
			seg.Minimum, seg.MinimumFound = parseNumber(tokens[3])
			debts = append(debts, seg)
			continue
		}

		numbers := debtNumber.FindAllString(clean, -1)
		seg := DebtSegment{Name: clean}
		if len(tokens) > 0 && len(numbers) > 0 {
			seg.Name = tokens[0]
		}
		if len(numbers) > 0 {
			seg.Balance, seg.BalanceFound = parseNumber(numbers[0])
		}
		if len(numbers) > 1 {
			seg.InterestRate, seg.RateFound = parseNumber(numbers[1])
		}
		if len(numbers) > 2 {
			seg.Minimum, seg.MinimumFound = parseNumber(numbers[2])
		}
		debts = append(debts, seg)
	}
	return debts
}

func parseNumber(s string) (decimal.Decimal, bool) {
	n, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return n, true
}
