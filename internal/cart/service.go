package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/panoport/panoport-backend/internal/pricing"
	"github.com/panoport/panoport-backend/pkg/db/models"
	"github.com/panoport/panoport-backend/pkg/enums"
	pkgerrors "github.com/panoport/panoport-backend/pkg/errors"
	"github.com/panoport/panoport-backend/pkg/logger"
	"github.com/panoport/panoport-backend/pkg/metrics"
	"github.com/panoport/panoport-backend/pkg/types"
)

const defaultCurrency = "TRY"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type panelLoader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Panel, error)
}

type rangeGuard interface {
	GuardRange(ctx context.Context, panel *models.Panel, start, end time.Time) error
}

type ruleSource interface {
	ActiveRules(ctx context.Context) ([]pricing.Rule, error)
}

// Service exposes cart quoting and persistence operations.
type Service interface {
	QuoteCart(ctx context.Context, sessionID string, input QuoteInput) (*QuoteResult, error)
	ValidateAndPrice(ctx context.Context, input QuoteInput) (*ValidationResult, error)
	GetActiveCart(ctx context.Context, sessionID string) (*models.CartRecord, error)
	ClearCart(ctx context.Context, sessionID string) error
}

type service struct {
	repo      CartRepository
	tx        txRunner
	panels    panelLoader
	guard     rangeGuard
	rules     ruleSource
	designFee decimal.Decimal
	observer  *metrics.PricingMetrics
	log       *logger.Logger
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner, panels panelLoader, guard rangeGuard, rules ruleSource, designFee decimal.Decimal, observer *metrics.PricingMetrics, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if panels == nil {
		return nil, fmt.Errorf("panel loader required")
	}
	if guard == nil {
		return nil, fmt.Errorf("availability guard required")
	}
	if rules == nil {
		return nil, fmt.Errorf("rule source required")
	}
	if designFee.IsNegative() {
		return nil, fmt.Errorf("design fee cannot be negative")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      repo,
		tx:        tx,
		panels:    panels,
		guard:     guard,
		rules:     rules,
		designFee: designFee,
		observer:  observer,
		log:       log,
	}, nil
}

// QuoteCart validates every requested panel, reprices the cart and persists
// the snapshot atomically. The persisted record is the quote of record for
// the session until the next call replaces it.
func (s *service) QuoteCart(ctx context.Context, sessionID string, input QuoteInput) (*QuoteResult, error) {
	started := time.Now()

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart must contain at least one item")
	}

	panelIndex, err := s.loadPanels(ctx, input)
	if err != nil {
		return nil, err
	}

	lines := make([]pricing.LineItem, 0, len(input.Items))
	for _, payload := range input.Items {
		if err := payload.validate(); err != nil {
			return nil, err
		}
		panel, ok := panelIndex[payload.PanelID]
		if !ok || !panel.IsActive {
			s.observer.ObserveQuote("rejected", len(input.Items), time.Since(started))
			return nil, pkgerrors.New(pkgerrors.CodeUnavailable, "panel is not available").
				WithDetails(map[string]string{"panel_id": payload.PanelID.String()})
		}
		if payload.DoubleSided && !panel.HasDoubleSided {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "panel does not offer a double-sided option").
				WithDetails(map[string]string{"panel_id": payload.PanelID.String()})
		}
		if payload.StartDate != nil {
			if err := s.guard.GuardRange(ctx, panel, *payload.StartDate, *payload.EndDate); err != nil {
				s.observer.ObserveQuote("rejected", len(input.Items), time.Since(started))
				return nil, err
			}
		}
		lines = append(lines, lineFromPayload(payload, panel))
	}

	rules, err := s.rules.ActiveRules(ctx)
	if err != nil {
		return nil, err
	}

	totals := pricing.ComputeTotals(lines, rules, s.designFee)
	items := snapshotItems(totals.Lines)

	var saved *models.CartRecord
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		record, err := txRepo.FindActiveBySession(ctx, sessionID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if record == nil {
			record = &models.CartRecord{
				SessionID: sessionID,
				Status:    enums.CartStatusActive,
				Currency:  defaultCurrency,
			}
		}
		record.Subtotal = totals.Subtotal
		record.Discount = totals.Discount
		record.Fees = totals.Fees
		record.Total = totals.Total

		if record.ID == uuid.Nil {
			if record, err = txRepo.Create(ctx, record); err != nil {
				return err
			}
		} else if record, err = txRepo.Update(ctx, record); err != nil {
			return err
		}

		if err := txRepo.ReplaceItems(ctx, record.ID, items); err != nil {
			return err
		}

		saved, err = txRepo.FindByIDAndSession(ctx, record.ID, sessionID)
		return err
	}); err != nil {
		s.observer.ObserveQuote("error", len(input.Items), time.Since(started))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart quote")
	}

	s.observer.ObserveQuote("success", len(input.Items), time.Since(started))
	s.observer.AddSuggestions(len(totals.Suggestions))
	s.log.Info(s.log.WithSessionID(ctx, sessionID), "cart quoted")

	return &QuoteResult{
		Record:      saved,
		Suggestions: totals.Suggestions,
	}, nil
}

// GetActiveCart returns the active cart for the session, or not-found.
func (s *service) GetActiveCart(ctx context.Context, sessionID string) (*models.CartRecord, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	record, err := s.repo.FindActiveBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "active cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return record, nil
}

// ClearCart drops every cart record tied to the session.
func (s *service) ClearCart(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := s.repo.DeleteBySession(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) loadPanels(ctx context.Context, input QuoteInput) (map[uuid.UUID]*models.Panel, error) {
	seen := map[uuid.UUID]struct{}{}
	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, payload := range input.Items {
		if payload.PanelID == uuid.Nil {
			continue
		}
		if _, ok := seen[payload.PanelID]; ok {
			continue
		}
		seen[payload.PanelID] = struct{}{}
		ids = append(ids, payload.PanelID)
	}

	rows, err := s.panels.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load panels")
	}

	index := make(map[uuid.UUID]*models.Panel, len(rows))
	for i := range rows {
		index[rows[i].ID] = &rows[i]
	}
	return index, nil
}

func lineFromPayload(payload QuoteItemInput, panel *models.Panel) pricing.LineItem {
	owner := ""
	if panel.OwnerName != nil {
		owner = *panel.OwnerName
	}
	return pricing.LineItem{
		ID:              uuid.New(),
		PanelID:         panel.ID,
		PanelType:       panel.Type,
		OwnerName:       owner,
		City:            panel.City,
		BasePriceWeekly: panel.PriceWeekly,
		StartDate:       payload.StartDate,
		EndDate:         payload.EndDate,
		DoubleSided:     payload.DoubleSided,
	}
}

func snapshotItems(lines []pricing.PricedLine) []models.CartItem {
	items := make([]models.CartItem, 0, len(lines))
	for _, line := range lines {
		item := models.CartItem{
			ID:              line.Item.ID,
			PanelID:         line.Item.PanelID,
			PanelType:       line.Item.PanelType,
			City:            line.Item.City,
			BasePriceWeekly: line.Item.BasePriceWeekly,
			StartDate:       line.Item.StartDate,
			EndDate:         line.Item.EndDate,
			DoubleSided:     line.Item.DoubleSided,
			Weeks:           line.Weeks,
			UnitPrice:       line.UnitPrice,
			LineSubtotal:    line.LineSubtotal,
			LineDiscount:    line.LineDiscount,
			Status:          enums.CartItemStatusOK,
		}
		if line.Item.OwnerName != "" {
			owner := line.Item.OwnerName
			item.OwnerName = &owner
		}
		if line.Rule != nil {
			item.AppliedRule = &types.AppliedRule{
				RuleID:          line.Rule.ID,
				Name:            line.Rule.Name,
				MinQuantity:     line.Rule.MinQuantity,
				DiscountPercent: line.Rule.DiscountPercent,
				FixedUnitPrice:  line.Rule.FixedUnitPrice,
			}
		}
		items = append(items, item)
	}
	return items
}
