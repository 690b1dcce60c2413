package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/panoport/panoport-backend/pkg/enums"
)

// CartRecord captures a session-scoped cart snapshot with computed totals.
type CartRecord struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID   string           `gorm:"column:session_id;not null;index"`
	Status      enums.CartStatus `gorm:"column:status;type:cart_status;not null;default:'active'"`
	Currency    string           `gorm:"column:currency;not null;default:'TRY'"`
	Subtotal    decimal.Decimal  `gorm:"column:subtotal;type:numeric(12,2);not null;default:0"`
	Discount    decimal.Decimal  `gorm:"column:discount;type:numeric(12,2);not null;default:0"`
	Fees        decimal.Decimal  `gorm:"column:fees;type:numeric(12,2);not null;default:0"`
	Total       decimal.Decimal  `gorm:"column:total;type:numeric(12,2);not null;default:0"`
	ConvertedAt *time.Time       `gorm:"column:converted_at"`
	Items       []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
