package pricing

import "github.com/shopspring/decimal"

// ComputeTotals prices a cart snapshot against a rule set. It is a pure
// function: identical inputs produce identical totals, and no state survives
// between calls. Conflicted rules are excluded and reported, never fatal.
// Fees are flat add-ons applied to the total only; they are never discounted.
func ComputeTotals(items []LineItem, rules []Rule, fees decimal.Decimal) Totals {
	valid, conflicts := SanitizeRules(rules)

	totals := Totals{
		Subtotal:  decimal.Zero,
		Discount:  decimal.Zero,
		Fees:      fees,
		Lines:     make([]PricedLine, 0, len(items)),
		Conflicts: conflicts,
	}

	for _, item := range items {
		line := PriceLine(item, BestRule(item, items, valid))
		totals.Lines = append(totals.Lines, line)
		totals.Subtotal = totals.Subtotal.Add(line.LineSubtotal)
		totals.Discount = totals.Discount.Add(line.LineDiscount)
	}

	totals.Total = totals.Subtotal.Sub(totals.Discount).Add(fees)
	totals.Suggestions = BuildSuggestions(items, valid)
	return totals
}
