package pricing

import "strings"

// SanitizeRules drops inactive rules and filters out conflicted ones so a
// bad rule row never blocks a cart computation. Conflicts are reported back
// for logging.
func SanitizeRules(rules []Rule) ([]Rule, []RuleConflictError) {
	valid := make([]Rule, 0, len(rules))
	var conflicts []RuleConflictError
	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		if rule.Conflicted() {
			conflicts = append(conflicts, RuleConflictError{RuleID: rule.ID, Name: rule.Name})
			continue
		}
		if rule.MinQuantity < 1 {
			continue
		}
		valid = append(valid, rule)
	}
	return valid, conflicts
}

// MatchingCount counts cart items satisfying all of the rule's non-nil
// filters. The count drives the quantity gate; an empty cart never meets any
// threshold.
func MatchingCount(items []LineItem, rule Rule) int {
	count := 0
	for _, item := range items {
		if rule.Matches(item) {
			count++
		}
	}
	return count
}

// BestRule selects the single rule applied to the item, or nil. Candidates
// must match the item and have their quantity gate met by the whole cart.
// Ties resolve by priority, then specificity, then lowest rule ID so the
// result is deterministic.
func BestRule(item LineItem, items []LineItem, rules []Rule) *Rule {
	var best *Rule
	for i := range rules {
		rule := rules[i]
		if !rule.Matches(item) {
			continue
		}
		if MatchingCount(items, rule) < rule.MinQuantity {
			continue
		}
		if best == nil || outranks(rule, *best) {
			chosen := rule
			best = &chosen
		}
	}
	return best
}

func outranks(a, b Rule) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if a.Specificity() != b.Specificity() {
		return a.Specificity() > b.Specificity()
	}
	return strings.Compare(a.ID.String(), b.ID.String()) < 0
}
