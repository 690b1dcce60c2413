package cartdto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/panoport/panoport-backend/pkg/enums"
	"github.com/panoport/panoport-backend/pkg/types"
)

// CartQuote represents the authoritative cart snapshot exposed through the API.
type CartQuote struct {
	ID          uuid.UUID         `json:"id"`
	SessionID   string            `json:"session_id"`
	Status      enums.CartStatus  `json:"status"`
	Currency    string            `json:"currency"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	Discount    decimal.Decimal   `json:"discount"`
	Fees        decimal.Decimal   `json:"fees"`
	Total       decimal.Decimal   `json:"total"`
	Items       []CartQuoteItem   `json:"items"`
	Suggestions []QuoteSuggestion `json:"suggestions,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CartQuoteItem describes each priced line in the quote.
type CartQuoteItem struct {
	ID           uuid.UUID            `json:"id"`
	PanelID      uuid.UUID            `json:"panel_id"`
	PanelType    enums.PanelType      `json:"panel_type"`
	OwnerName    *string              `json:"owner_name,omitempty"`
	City         string               `json:"city"`
	StartDate    *string              `json:"start_date,omitempty"`
	EndDate      *string              `json:"end_date,omitempty"`
	DoubleSided  bool                 `json:"double_sided"`
	Weeks        int                  `json:"weeks"`
	UnitPrice    decimal.Decimal      `json:"unit_price"`
	LineSubtotal decimal.Decimal      `json:"line_subtotal"`
	LineDiscount decimal.Decimal      `json:"line_discount"`
	AppliedRule  *types.AppliedRule   `json:"applied_rule,omitempty"`
	Status       enums.CartItemStatus `json:"status"`
}

// QuoteSuggestion nudges the buyer toward the nearest unmet bulk threshold.
type QuoteSuggestion struct {
	PanelType        enums.PanelType  `json:"panel_type"`
	RuleID           uuid.UUID        `json:"rule_id"`
	RuleName         string           `json:"rule_name"`
	NeededCount      int              `json:"needed_count"`
	DiscountPercent  *decimal.Decimal `json:"discount_percent,omitempty"`
	FixedUnitPrice   *decimal.Decimal `json:"fixed_unit_price,omitempty"`
	PotentialSavings decimal.Decimal  `json:"potential_savings"`
}

// ValidationOutcome reports per-item checks plus totals over passing items.
type ValidationOutcome struct {
	Items  []ItemCheck `json:"items"`
	Totals QuoteTotals `json:"totals"`
}

// ItemCheck is the outcome for one requested item.
type ItemCheck struct {
	PanelID uuid.UUID            `json:"panel_id"`
	Status  enums.CartItemStatus `json:"status"`
	Reason  string               `json:"reason,omitempty"`
}

// QuoteTotals is the cart summary block shared by quote and validate payloads.
type QuoteTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Fees     decimal.Decimal `json:"fees"`
	Total    decimal.Decimal `json:"total"`
}
