package cart

import (
	"time"

	cartdto "github.com/panoport/panoport-backend/api/controllers/cart/dto"
	cartsvc "github.com/panoport/panoport-backend/internal/cart"
	"github.com/panoport/panoport-backend/internal/pricing"
	"github.com/panoport/panoport-backend/pkg/db/models"
)

func newCartQuote(record *models.CartRecord, suggestions []pricing.Suggestion) cartdto.CartQuote {
	items := make([]cartdto.CartQuoteItem, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, cartdto.CartQuoteItem{
			ID:           item.ID,
			PanelID:      item.PanelID,
			PanelType:    item.PanelType,
			OwnerName:    item.OwnerName,
			City:         item.City,
			StartDate:    formatDate(item.StartDate),
			EndDate:      formatDate(item.EndDate),
			DoubleSided:  item.DoubleSided,
			Weeks:        item.Weeks,
			UnitPrice:    item.UnitPrice,
			LineSubtotal: item.LineSubtotal,
			LineDiscount: item.LineDiscount,
			AppliedRule:  item.AppliedRule,
			Status:       item.Status,
		})
	}

	return cartdto.CartQuote{
		ID:          record.ID,
		SessionID:   record.SessionID,
		Status:      record.Status,
		Currency:    record.Currency,
		Subtotal:    record.Subtotal,
		Discount:    record.Discount,
		Fees:        record.Fees,
		Total:       record.Total,
		Items:       items,
		Suggestions: newSuggestions(suggestions),
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

func newSuggestions(suggestions []pricing.Suggestion) []cartdto.QuoteSuggestion {
	if len(suggestions) == 0 {
		return nil
	}
	out := make([]cartdto.QuoteSuggestion, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, cartdto.QuoteSuggestion{
			PanelType:        s.PanelType,
			RuleID:           s.RuleID,
			RuleName:         s.RuleName,
			NeededCount:      s.NeededCount,
			DiscountPercent:  s.DiscountPercent,
			FixedUnitPrice:   s.FixedUnitPrice,
			PotentialSavings: s.PotentialSavings,
		})
	}
	return out
}

func newValidationOutcome(result *cartsvc.ValidationResult) cartdto.ValidationOutcome {
	items := make([]cartdto.ItemCheck, 0, len(result.Items))
	for _, check := range result.Items {
		items = append(items, cartdto.ItemCheck{
			PanelID: check.PanelID,
			Status:  check.Status,
			Reason:  check.Reason,
		})
	}
	return cartdto.ValidationOutcome{
		Items: items,
		Totals: cartdto.QuoteTotals{
			Subtotal: result.Totals.Subtotal,
			Discount: result.Totals.Discount,
			Fees:     result.Totals.Fees,
			Total:    result.Totals.Total,
		},
	}
}

func formatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(dateLayout)
	return &formatted
}
