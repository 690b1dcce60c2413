package pricing

import "github.com/shopspring/decimal"

// PriceLine computes the effective price for one line. Rule pricing applies
// to the single-sided weekly price first; the double-sided multiplier is
// applied afterwards, to the discounted and undiscounted value alike, so the
// line discount stays consistent with the subtotal.
func PriceLine(item LineItem, rule *Rule) PricedLine {
	weeks := item.Weeks()
	weeksDec := decimal.NewFromInt(int64(weeks))
	mult := item.doubleSidedMultiplier()

	base := item.BasePriceWeekly
	unitSingle := base
	if rule != nil {
		unitSingle = rule.UnitPrice(base)
	}

	lineSubtotal := base.Mul(mult).Mul(weeksDec)
	unitPrice := unitSingle.Mul(mult)
	lineTotal := unitPrice.Mul(weeksDec)

	// A fixed unit price above the base would price the "discounted" line
	// higher than the undiscounted one; cap it so totals never exceed the
	// subtotal.
	if lineTotal.GreaterThan(lineSubtotal) {
		lineTotal = lineSubtotal
		unitPrice = base.Mul(mult)
	}

	ruleDiscount := base.Sub(unitSingle).Mul(weeksDec)
	if ruleDiscount.IsNegative() {
		ruleDiscount = decimal.Zero
	}

	return PricedLine{
		Item:         item,
		Rule:         rule,
		Weeks:        weeks,
		UnitPrice:    unitPrice,
		LineSubtotal: lineSubtotal,
		LineTotal:    lineTotal,
		LineDiscount: lineSubtotal.Sub(lineTotal),
		RuleDiscount: ruleDiscount,
	}
}
