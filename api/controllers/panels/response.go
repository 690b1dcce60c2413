package panels

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/panoport/panoport-backend/pkg/db/models"
	"github.com/panoport/panoport-backend/pkg/enums"
)

const dateLayout = "2006-01-02"

type panelResponse struct {
	ID             uuid.UUID              `json:"id"`
	Code           string                 `json:"code"`
	Type           enums.PanelType        `json:"type"`
	City           string                 `json:"city"`
	District       *string                `json:"district,omitempty"`
	OwnerName      *string                `json:"owner_name,omitempty"`
	PriceWeekly    decimal.Decimal        `json:"price_weekly"`
	MinRentalDays  *int                   `json:"min_rental_days,omitempty"`
	HasDoubleSided bool                   `json:"has_double_sided"`
	Lat            *float64               `json:"lat,omitempty"`
	Lng            *float64               `json:"lng,omitempty"`
	BlockedRanges  []blockedRangeResponse `json:"blocked_ranges,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

type blockedRangeResponse struct {
	ID        uuid.UUID `json:"id"`
	PanelID   uuid.UUID `json:"panel_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type panelListResponse struct {
	Panels     []panelResponse `json:"panels"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

func newPanelResponse(panel *models.Panel, includeRanges bool) panelResponse {
	resp := panelResponse{
		ID:             panel.ID,
		Code:           panel.Code,
		Type:           panel.Type,
		City:           panel.City,
		District:       panel.District,
		OwnerName:      panel.OwnerName,
		PriceWeekly:    panel.PriceWeekly,
		MinRentalDays:  panel.MinRentalDays,
		HasDoubleSided: panel.HasDoubleSided,
		Lat:            panel.Lat,
		Lng:            panel.Lng,
		CreatedAt:      panel.CreatedAt,
	}
	if includeRanges {
		resp.BlockedRanges = newBlockedRangeResponses(panel.BlockedRanges)
	}
	return resp
}

func newBlockedRangeResponses(ranges []models.PanelBlockedRange) []blockedRangeResponse {
	if len(ranges) == 0 {
		return nil
	}
	out := make([]blockedRangeResponse, 0, len(ranges))
	for _, blocked := range ranges {
		out = append(out, newBlockedRangeResponse(&blocked))
	}
	return out
}

func newBlockedRangeResponse(blocked *models.PanelBlockedRange) blockedRangeResponse {
	return blockedRangeResponse{
		ID:        blocked.ID,
		PanelID:   blocked.PanelID,
		StartDate: blocked.StartDate.Format(dateLayout),
		EndDate:   blocked.EndDate.Format(dateLayout),
		Reason:    blocked.Reason,
		CreatedAt: blocked.CreatedAt,
	}
}
