package rules

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/panoport/panoport-backend/pkg/db/models"
	"github.com/panoport/panoport-backend/pkg/enums"
)

type ruleResponse struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	PanelType       *enums.PanelType `json:"panel_type,omitempty"`
	OwnerName       *string          `json:"owner_name,omitempty"`
	City            *string          `json:"city,omitempty"`
	MinQuantity     int              `json:"min_quantity"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	FixedUnitPrice  *decimal.Decimal `json:"fixed_unit_price,omitempty"`
	Priority        int              `json:"priority"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func newRuleResponse(rule *models.DiscountRule) ruleResponse {
	return ruleResponse{
		ID:              rule.ID,
		Name:            rule.Name,
		PanelType:       rule.PanelType,
		OwnerName:       rule.OwnerName,
		City:            rule.City,
		MinQuantity:     rule.MinQuantity,
		DiscountPercent: rule.DiscountPercent,
		FixedUnitPrice:  rule.FixedUnitPrice,
		Priority:        rule.Priority,
		IsActive:        rule.IsActive,
		CreatedAt:       rule.CreatedAt,
		UpdatedAt:       rule.UpdatedAt,
	}
}
