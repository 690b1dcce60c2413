package rules

import (
	"github.com/shopspring/decimal"

	rulesvc "github.com/panoport/panoport-backend/internal/rules"
)

type ruleRequest struct {
	Name            string           `json:"name" validate:"required,max=255"`
	PanelType       *string          `json:"panel_type,omitempty"`
	OwnerName       *string          `json:"owner_name,omitempty" validate:"omitempty,max=255"`
	City            *string          `json:"city,omitempty" validate:"omitempty,max=255"`
	MinQuantity     int              `json:"min_quantity" validate:"required,min=1"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	FixedUnitPrice  *decimal.Decimal `json:"fixed_unit_price,omitempty"`
	Priority        int              `json:"priority"`
	IsActive        bool             `json:"is_active"`
}

func (r ruleRequest) toInput() (rulesvc.RuleInput, error) {
	panelType, err := parsePanelTypeFilter(r.PanelType)
	if err != nil {
		return rulesvc.RuleInput{}, err
	}
	return rulesvc.RuleInput{
		Name:            r.Name,
		PanelType:       panelType,
		OwnerName:       r.OwnerName,
		City:            r.City,
		MinQuantity:     r.MinQuantity,
		DiscountPercent: r.DiscountPercent,
		FixedUnitPrice:  r.FixedUnitPrice,
		Priority:        r.Priority,
		IsActive:        r.IsActive,
	}, nil
}
