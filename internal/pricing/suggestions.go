package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/panoport/panoport-backend/pkg/enums"
)

// BuildSuggestions emits at most one "buy N more" nudge per panel type
// present in the cart. A type that already meets some rule gets no nudge;
// otherwise the rule with the smallest shortfall wins, ties broken by larger
// savings. Savings are estimated per week against the first cart item of
// that type.
func BuildSuggestions(items []LineItem, rules []Rule) []Suggestion {
	var order []enums.PanelType
	representative := map[enums.PanelType]LineItem{}
	for _, item := range items {
		if _, seen := representative[item.PanelType]; !seen {
			representative[item.PanelType] = item
			order = append(order, item.PanelType)
		}
	}

	var suggestions []Suggestion
	for _, panelType := range order {
		rep := representative[panelType]
		if suggestion := nearestWin(rep, items, rules); suggestion != nil {
			suggestions = append(suggestions, *suggestion)
		}
	}
	return suggestions
}

func nearestWin(rep LineItem, items []LineItem, rules []Rule) *Suggestion {
	var best *Suggestion
	var bestSavingsPerUnit decimal.Decimal

	for i := range rules {
		rule := rules[i]
		if !rule.Matches(rep) {
			continue
		}
		count := MatchingCount(items, rule)
		if count >= rule.MinQuantity {
			// The group already unlocked a rule; no nudge for this type.
			return nil
		}

		savingsPerUnit := rep.BasePriceWeekly.Sub(rule.UnitPrice(rep.BasePriceWeekly))
		if !savingsPerUnit.IsPositive() {
			continue
		}

		needed := rule.MinQuantity - count
		candidate := &Suggestion{
			PanelType:        rep.PanelType,
			RuleID:           rule.ID,
			RuleName:         rule.Name,
			NeededCount:      needed,
			DiscountPercent:  rule.DiscountPercent,
			FixedUnitPrice:   rule.FixedUnitPrice,
			PotentialSavings: savingsPerUnit.Mul(decimal.NewFromInt(int64(rule.MinQuantity))),
		}

		if best == nil || closerWin(candidate, savingsPerUnit, best, bestSavingsPerUnit) {
			best = candidate
			bestSavingsPerUnit = savingsPerUnit
		}
	}
	return best
}

func closerWin(a *Suggestion, aSavings decimal.Decimal, b *Suggestion, bSavings decimal.Decimal) bool {
	if a.NeededCount != b.NeededCount {
		return a.NeededCount < b.NeededCount
	}
	if !aSavings.Equal(bSavings) {
		return aSavings.GreaterThan(bSavings)
	}
	return strings.Compare(a.RuleID.String(), b.RuleID.String()) < 0
}
