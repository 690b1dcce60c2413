package pricing

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/panoport/panoport-backend/pkg/enums"
)

func clpKocaeliCart(n int) []LineItem {
	items := make([]LineItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, testItem(enums.PanelTypeCLP, "", "Kocaeli", 2000))
	}
	return items
}

func kocaeliBulkRule() Rule {
	rule := fixedRule(1500, 20, 0)
	rule.Name = "CLP Kocaeli 20+"
	rule.PanelType = panelTypePtr(enums.PanelTypeCLP)
	rule.City = strPtr("Kocaeli")
	return rule
}

func TestComputeTotalsBulkDiscountUnlock(t *testing.T) {
	t.Parallel()

	rules := []Rule{kocaeliBulkRule()}

	// 19 items: rule gated off, suggestion nudges for the 20th.
	before := ComputeTotals(clpKocaeliCart(19), rules, decimal.Zero)
	if !before.Subtotal.Equal(decimal.NewFromInt(38000)) {
		t.Fatalf("expected subtotal 38000, got %s", before.Subtotal)
	}
	if !before.Discount.IsZero() {
		t.Fatalf("expected no discount below the threshold, got %s", before.Discount)
	}
	if len(before.Suggestions) != 1 {
		t.Fatalf("expected one suggestion, got %d", len(before.Suggestions))
	}
	nudge := before.Suggestions[0]
	if nudge.NeededCount != 1 {
		t.Fatalf("expected needed count 1, got %d", nudge.NeededCount)
	}
	if !nudge.PotentialSavings.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("expected potential savings 10000, got %s", nudge.PotentialSavings)
	}

	// The 20th item flips every matching line to the fixed tier price.
	after := ComputeTotals(clpKocaeliCart(20), rules, decimal.Zero)
	if !after.Subtotal.Equal(decimal.NewFromInt(40000)) {
		t.Fatalf("expected subtotal 40000, got %s", after.Subtotal)
	}
	if !after.Discount.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("expected discount 10000, got %s", after.Discount)
	}
	if !after.Total.Equal(decimal.NewFromInt(30000)) {
		t.Fatalf("expected total 30000, got %s", after.Total)
	}
	if len(after.Suggestions) != 0 {
		t.Fatalf("unlocked tier must not keep nudging, got %d suggestions", len(after.Suggestions))
	}
	for _, line := range after.Lines {
		if !line.UnitPrice.Equal(decimal.NewFromInt(1500)) {
			t.Fatalf("expected every unit price at 1500, got %s", line.UnitPrice)
		}
	}
}

func TestComputeTotalsIdempotent(t *testing.T) {
	t.Parallel()

	items := clpKocaeliCart(20)
	rules := []Rule{kocaeliBulkRule()}

	first := ComputeTotals(items, rules, decimal.NewFromInt(250))
	second := ComputeTotals(items, rules, decimal.NewFromInt(250))

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs must produce identical totals")
	}
}

func TestComputeTotalsMonotonicity(t *testing.T) {
	t.Parallel()

	rules := []Rule{kocaeliBulkRule()}

	prev := decimal.Zero
	for n := 0; n <= 25; n++ {
		totals := ComputeTotals(clpKocaeliCart(n), rules, decimal.Zero)
		if totals.Subtotal.LessThan(prev) {
			t.Fatalf("adding an item must never decrease the subtotal")
		}
		if totals.Discount.IsNegative() {
			t.Fatalf("discount must never be negative")
		}
		if totals.Total.GreaterThan(totals.Subtotal) {
			t.Fatalf("total must never exceed subtotal without fees")
		}
		prev = totals.Subtotal
	}
}

func TestComputeTotalsRuleExclusivity(t *testing.T) {
	t.Parallel()

	// Two applicable rules; each line must reflect exactly one of them.
	strong := kocaeliBulkRule()
	strong.Priority = 10
	weak := percentRule(10, 1, 1)

	totals := ComputeTotals(clpKocaeliCart(20), []Rule{weak, strong}, decimal.Zero)
	for _, line := range totals.Lines {
		if line.Rule == nil || line.Rule.ID != strong.ID {
			t.Fatalf("expected the priority rule to be the only one applied")
		}
		if !line.UnitPrice.Equal(decimal.NewFromInt(1500)) {
			t.Fatalf("line priced by more than one rule: unit %s", line.UnitPrice)
		}
	}
}

func TestComputeTotalsFeesAddedToTotalOnly(t *testing.T) {
	t.Parallel()

	fee := decimal.NewFromInt(500)
	totals := ComputeTotals(clpKocaeliCart(2), nil, fee)

	if !totals.Subtotal.Equal(decimal.NewFromInt(4000)) {
		t.Fatalf("fees must not inflate the subtotal, got %s", totals.Subtotal)
	}
	if !totals.Fees.Equal(fee) {
		t.Fatalf("expected fees 500, got %s", totals.Fees)
	}
	if !totals.Total.Equal(decimal.NewFromInt(4500)) {
		t.Fatalf("expected total 4500, got %s", totals.Total)
	}
}

func TestComputeTotalsSurfacesConflictsWithoutFailing(t *testing.T) {
	t.Parallel()

	pct := decimal.NewFromInt(10)
	fixed := decimal.NewFromInt(100)
	bad := Rule{ID: uuid.New(), Name: "bad", MinQuantity: 1, DiscountPercent: &pct, FixedUnitPrice: &fixed, Active: true}

	totals := ComputeTotals(clpKocaeliCart(3), []Rule{bad}, decimal.Zero)
	if len(totals.Conflicts) != 1 {
		t.Fatalf("expected conflicted rule to be reported, got %d", len(totals.Conflicts))
	}
	if !totals.Discount.IsZero() {
		t.Fatalf("conflicted rule must never price a line")
	}
	if !totals.Total.Equal(totals.Subtotal) {
		t.Fatalf("cart computation must survive a bad rule row")
	}
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	t.Parallel()

	totals := ComputeTotals(nil, []Rule{kocaeliBulkRule()}, decimal.Zero)
	if !totals.Subtotal.IsZero() || !totals.Discount.IsZero() || !totals.Total.IsZero() {
		t.Fatalf("empty cart must compute to zero")
	}
	if len(totals.Suggestions) != 0 {
		t.Fatalf("empty cart yields no suggestions")
	}
}
