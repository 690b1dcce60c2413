package models

import (
	"time"

	"github.com/google/uuid"
)

// PanelBlockedRange marks an inclusive date interval during which a panel
// cannot be rented. Ranges for the same panel may overlap; they are read as a
// union of blocked days.
type PanelBlockedRange struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PanelID   uuid.UUID `gorm:"column:panel_id;type:uuid;not null;index"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null"`
	Reason    *string   `gorm:"column:reason"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
