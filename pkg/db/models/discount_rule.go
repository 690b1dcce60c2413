package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/panoport/panoport-backend/pkg/enums"
)

// DiscountRule configures a quantity-gated price reduction. Null filters match
// every value of their dimension; exactly one of DiscountPercent and
// FixedUnitPrice must be set.
type DiscountRule struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string           `gorm:"column:name;not null"`
	PanelType       *enums.PanelType `gorm:"column:panel_type;type:panel_type"`
	OwnerName       *string          `gorm:"column:owner_name"`
	City            *string          `gorm:"column:city"`
	MinQuantity     int              `gorm:"column:min_quantity;not null"`
	DiscountPercent *decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2)"`
	FixedUnitPrice  *decimal.Decimal `gorm:"column:fixed_unit_price;type:numeric(12,2)"`
	Priority        int              `gorm:"column:priority;not null;default:0"`
	// No gorm default tag: gorm drops zero-valued fields carrying one from
	// INSERT, which would silently store IsActive=false rows as active.
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
