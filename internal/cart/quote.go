package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/panoport/panoport-backend/internal/pricing"
	"github.com/panoport/panoport-backend/pkg/db/models"
	"github.com/panoport/panoport-backend/pkg/enums"
	pkgerrors "github.com/panoport/panoport-backend/pkg/errors"
)

// QuoteInput captures the requested cart contents.
type QuoteInput struct {
	Items []QuoteItemInput
}

// QuoteItemInput describes one requested panel rental. Dates are optional;
// an undated line is quoted at a single week.
type QuoteItemInput struct {
	PanelID     uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	DoubleSided bool
}

func (i QuoteItemInput) validate() error {
	if i.PanelID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "panel id is required")
	}
	if (i.StartDate == nil) != (i.EndDate == nil) {
		return pkgerrors.New(pkgerrors.CodeValidation, "start and end dates must be provided together").
			WithDetails(map[string]string{"panel_id": i.PanelID.String()})
	}
	if i.StartDate != nil && i.EndDate.Before(*i.StartDate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end date precedes start date").
			WithDetails(map[string]string{"panel_id": i.PanelID.String()})
	}
	return nil
}

// QuoteResult pairs the persisted cart snapshot with the derived suggestions,
// which are recomputed on every quote and never stored.
type QuoteResult struct {
	Record      *models.CartRecord
	Suggestions []pricing.Suggestion
}

// ItemCheck reports the validation outcome for one requested item.
type ItemCheck struct {
	PanelID uuid.UUID
	Status  enums.CartItemStatus
	Reason  string
}

// ValidationResult carries per-item outcomes plus totals computed over the
// items that passed.
type ValidationResult struct {
	Items  []ItemCheck
	Totals pricing.Totals
}

// ValidateAndPrice previews a cart without persisting anything. Items that
// fail validation or availability are reported per item instead of failing
// the whole request.
func (s *service) ValidateAndPrice(ctx context.Context, input QuoteInput) (*ValidationResult, error) {
	checks := make([]ItemCheck, 0, len(input.Items))
	lines := make([]pricing.LineItem, 0, len(input.Items))

	panelIndex := map[uuid.UUID]*models.Panel{}
	if len(input.Items) > 0 {
		index, err := s.loadPanels(ctx, input)
		if err != nil {
			return nil, err
		}
		panelIndex = index
	}

	for _, payload := range input.Items {
		check := ItemCheck{PanelID: payload.PanelID, Status: enums.CartItemStatusOK}

		if err := payload.validate(); err != nil {
			check.Status = enums.CartItemStatusInvalid
			check.Reason = pkgerrors.As(err).Message()
			checks = append(checks, check)
			continue
		}

		panel, ok := panelIndex[payload.PanelID]
		if !ok || !panel.IsActive {
			check.Status = enums.CartItemStatusNotAvailable
			check.Reason = "panel is not available"
			checks = append(checks, check)
			continue
		}

		if payload.DoubleSided && !panel.HasDoubleSided {
			check.Status = enums.CartItemStatusInvalid
			check.Reason = "panel does not offer a double-sided option"
			checks = append(checks, check)
			continue
		}

		if payload.StartDate != nil {
			if err := s.guard.GuardRange(ctx, panel, *payload.StartDate, *payload.EndDate); err != nil {
				typed := pkgerrors.As(err)
				if typed == nil {
					return nil, err
				}
				switch typed.Code() {
				case pkgerrors.CodeUnavailable:
					check.Status = enums.CartItemStatusNotAvailable
				default:
					check.Status = enums.CartItemStatusInvalid
				}
				check.Reason = typed.Message()
				checks = append(checks, check)
				continue
			}
		}

		lines = append(lines, lineFromPayload(payload, panel))
		checks = append(checks, check)
	}

	rules, err := s.rules.ActiveRules(ctx)
	if err != nil {
		return nil, err
	}

	fees := decimal.Zero
	if len(lines) > 0 {
		fees = s.designFee
	}

	return &ValidationResult{
		Items:  checks,
		Totals: pricing.ComputeTotals(lines, rules, fees),
	}, nil
}
