package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/panoport/panoport-backend/pkg/enums"
	"github.com/panoport/panoport-backend/pkg/types"
)

// CartItem persists a panel-level snapshot tied to a CartRecord. Pricing
// fields are copied from the panel and the matched rule at quote time.
type CartItem struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID          uuid.UUID            `gorm:"column:cart_id;type:uuid;not null"`
	PanelID         uuid.UUID            `gorm:"column:panel_id;type:uuid;not null"`
	PanelType       enums.PanelType      `gorm:"column:panel_type;type:panel_type;not null"`
	OwnerName       *string              `gorm:"column:owner_name"`
	City            string               `gorm:"column:city;not null"`
	BasePriceWeekly decimal.Decimal      `gorm:"column:base_price_weekly;type:numeric(12,2);not null"`
	StartDate       *time.Time           `gorm:"column:start_date;type:date"`
	EndDate         *time.Time           `gorm:"column:end_date;type:date"`
	DoubleSided     bool                 `gorm:"column:double_sided;not null;default:false"`
	Weeks           int                  `gorm:"column:weeks;not null;default:1"`
	UnitPrice       decimal.Decimal      `gorm:"column:unit_price;type:numeric(12,2);not null"`
	LineSubtotal    decimal.Decimal      `gorm:"column:line_subtotal;type:numeric(12,2);not null"`
	LineDiscount    decimal.Decimal      `gorm:"column:line_discount;type:numeric(12,2);not null;default:0"`
	AppliedRule     *types.AppliedRule   `gorm:"column:applied_rule;type:jsonb"`
	Status          enums.CartItemStatus `gorm:"column:status;type:cart_item_status;not null;default:'ok'"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
