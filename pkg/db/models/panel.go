package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/panoport/panoport-backend/pkg/enums"
)

// Panel represents a physical advertising surface available for weekly rental.
type Panel struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code           string          `gorm:"column:code;not null;uniqueIndex"`
	Type           enums.PanelType `gorm:"column:type;type:panel_type;not null"`
	City           string          `gorm:"column:city;not null"`
	District       *string         `gorm:"column:district"`
	OwnerName      *string         `gorm:"column:owner_name"`
	PriceWeekly    decimal.Decimal `gorm:"column:price_weekly;type:numeric(12,2);not null"`
	MinRentalDays  *int            `gorm:"column:min_rental_days"`
	HasDoubleSided bool            `gorm:"column:has_double_sided;not null;default:false"`
	// No default tag: gorm omits zero-valued defaulted fields from INSERT,
	// so a default:true here would persist inactive panels as active.
	IsActive      bool                `gorm:"column:is_active;not null"`
	Lat           *float64            `gorm:"column:lat;type:numeric(9,6)"`
	Lng           *float64            `gorm:"column:lng;type:numeric(9,6)"`
	BlockedRanges []PanelBlockedRange `gorm:"foreignKey:PanelID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
