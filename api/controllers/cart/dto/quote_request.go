package cartdto

import "github.com/google/uuid"

// QuoteCartRequest captures the requested cart contents for quoting.
type QuoteCartRequest struct {
	Items []QuoteCartItem `json:"items" validate:"required,min=1,dive"`
}

// QuoteCartItem describes one requested panel rental. Dates are optional
// YYYY-MM-DD strings; an undated line is quoted at a single week.
type QuoteCartItem struct {
	PanelID     uuid.UUID `json:"panel_id" validate:"required"`
	StartDate   *string   `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string   `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DoubleSided bool      `json:"double_sided"`
}
