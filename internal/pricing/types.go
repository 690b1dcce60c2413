package pricing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/panoport/panoport-backend/pkg/enums"
)

// LineItem is the engine's read-only view of one cart line. It is a snapshot
// copied from persistence at the call boundary; the engine never mutates it.
type LineItem struct {
	ID              uuid.UUID
	PanelID         uuid.UUID
	PanelType       enums.PanelType
	OwnerName       string // empty when the owner is unknown
	City            string
	BasePriceWeekly decimal.Decimal
	StartDate       *time.Time
	EndDate         *time.Time
	DoubleSided     bool
}

// Validate enforces the line-item invariants at the engine boundary.
func (i LineItem) Validate() error {
	if !i.PanelType.IsValid() {
		return fmt.Errorf("line %s: invalid panel type %q", i.ID, i.PanelType)
	}
	if i.BasePriceWeekly.IsNegative() {
		return fmt.Errorf("line %s: weekly price cannot be negative", i.ID)
	}
	if (i.StartDate == nil) != (i.EndDate == nil) {
		return fmt.Errorf("line %s: start and end dates must be set together", i.ID)
	}
	if i.StartDate != nil && i.EndDate.Before(*i.StartDate) {
		return fmt.Errorf("line %s: end date precedes start date", i.ID)
	}
	return nil
}

// Weeks returns the billable week count: one week minimum, rounded up from the
// date span. Undated lines are quoted at a single week.
func (i LineItem) Weeks() int {
	if i.StartDate == nil || i.EndDate == nil {
		return 1
	}
	days := int(i.EndDate.Sub(*i.StartDate).Hours() / 24)
	if days <= 0 {
		return 1
	}
	weeks := (days + 6) / 7
	if weeks < 1 {
		return 1
	}
	return weeks
}

// doubleSidedMultiplier is applied after rule pricing for formats that rent
// both faces.
func (i LineItem) doubleSidedMultiplier() decimal.Decimal {
	if i.DoubleSided && i.PanelType.SupportsDoubleSided() {
		return decimal.NewFromInt(2)
	}
	return decimal.NewFromInt(1)
}

// Rule is the engine's view of a discount rule. Nil filters match any value
// of their dimension.
type Rule struct {
	ID              uuid.UUID
	Name            string
	PanelType       *enums.PanelType
	OwnerName       *string
	City            *string
	MinQuantity     int
	DiscountPercent *decimal.Decimal
	FixedUnitPrice  *decimal.Decimal
	Priority        int
	Active          bool
}

// Matches reports whether every non-nil filter of the rule accepts the item.
func (r Rule) Matches(item LineItem) bool {
	if r.PanelType != nil && *r.PanelType != item.PanelType {
		return false
	}
	if r.OwnerName != nil && *r.OwnerName != item.OwnerName {
		return false
	}
	if r.City != nil && *r.City != item.City {
		return false
	}
	return true
}

// Specificity counts the non-nil filters; a more specific rule wins priority
// ties.
func (r Rule) Specificity() int {
	n := 0
	if r.PanelType != nil {
		n++
	}
	if r.OwnerName != nil {
		n++
	}
	if r.City != nil {
		n++
	}
	return n
}

// Conflicted reports a data-integrity problem: a rule carrying both or
// neither of its pricing fields cannot be applied safely.
func (r Rule) Conflicted() bool {
	return (r.DiscountPercent == nil) == (r.FixedUnitPrice == nil)
}

// UnitPrice applies the rule's pricing field to the base weekly price.
func (r Rule) UnitPrice(base decimal.Decimal) decimal.Decimal {
	if r.FixedUnitPrice != nil {
		return *r.FixedUnitPrice
	}
	if r.DiscountPercent != nil {
		factor := decimal.NewFromInt(1).Sub(r.DiscountPercent.Div(decimal.NewFromInt(100)))
		return base.Mul(factor)
	}
	return base
}

// RuleConflictError reports a rule filtered out of a computation because its
// pricing fields violate the exactly-one invariant.
type RuleConflictError struct {
	RuleID uuid.UUID
	Name   string
}

func (e RuleConflictError) Error() string {
	return fmt.Sprintf("discount rule %s (%s) must set exactly one of discount percent and fixed unit price", e.RuleID, e.Name)
}

// PricedLine is the engine's output for one cart line.
type PricedLine struct {
	Item  LineItem
	Rule  *Rule
	Weeks int

	// UnitPrice is the effective weekly price after discount and doubling.
	UnitPrice decimal.Decimal
	// LineSubtotal is the undiscounted line value (doubling applied).
	LineSubtotal decimal.Decimal
	// LineTotal is the payable line value, never above LineSubtotal.
	LineTotal decimal.Decimal
	// LineDiscount is LineSubtotal minus LineTotal.
	LineDiscount decimal.Decimal
	// RuleDiscount is the single-sided rule saving, reported per line and
	// excluded from the doubling multiplier.
	RuleDiscount decimal.Decimal
}

// Suggestion nudges the buyer toward the nearest unmet rule threshold for a
// panel type present in the cart.
type Suggestion struct {
	PanelType        enums.PanelType
	RuleID           uuid.UUID
	RuleName         string
	NeededCount      int
	DiscountPercent  *decimal.Decimal
	FixedUnitPrice   *decimal.Decimal
	PotentialSavings decimal.Decimal
}

// Totals is the computed cart summary. It is derived data, never persisted
// as-is; Total = Subtotal - Discount + Fees.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Fees     decimal.Decimal
	Total    decimal.Decimal

	Lines       []PricedLine
	Suggestions []Suggestion
	Conflicts   []RuleConflictError
}
