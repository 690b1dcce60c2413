package panels

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/panoport/panoport-backend/internal/availability"
	"github.com/panoport/panoport-backend/pkg/db/models"
	pkgerrors "github.com/panoport/panoport-backend/pkg/errors"
	"github.com/panoport/panoport-backend/pkg/logger"
	"github.com/panoport/panoport-backend/pkg/metrics"
	"github.com/panoport/panoport-backend/pkg/pagination"
)

// PanelRepository defines the persistence surface required by the panel service.
type PanelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Panel, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Panel, error)
	List(ctx context.Context, filters ListFilters, params pagination.Params) (*ListResult, error)
	CreateBlockedRange(ctx context.Context, blocked *models.PanelBlockedRange) (*models.PanelBlockedRange, error)
	DeleteBlockedRange(ctx context.Context, panelID, rangeID uuid.UUID) error
	ListBlockedRanges(ctx context.Context, panelID uuid.UUID) ([]models.PanelBlockedRange, error)
}

// Service exposes panel lookup, listing and availability operations.
type Service interface {
	GetPanel(ctx context.Context, id uuid.UUID) (*models.Panel, error)
	ListPanels(ctx context.Context, filters ListFilters, params pagination.Params) (*ListResult, error)
	CheckAvailability(ctx context.Context, panelID uuid.UUID, start, end time.Time) error
	GuardRange(ctx context.Context, panel *models.Panel, start, end time.Time) error
	AddBlockedRange(ctx context.Context, panelID uuid.UUID, start, end time.Time, reason *string) (*models.PanelBlockedRange, error)
	RemoveBlockedRange(ctx context.Context, panelID, rangeID uuid.UUID) error
	ListBlockedRanges(ctx context.Context, panelID uuid.UUID) ([]models.PanelBlockedRange, error)
}

type service struct {
	repo          PanelRepository
	log           *logger.Logger
	observer      *metrics.PricingMetrics
	minRentalDays int
}

// NewService builds a panel service backed by the provided repository.
func NewService(repo PanelRepository, log *logger.Logger, observer *metrics.PricingMetrics, minRentalDays int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("panel repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if minRentalDays <= 0 {
		minRentalDays = availability.DefaultMinRentalDays
	}
	return &service{
		repo:          repo,
		log:           log,
		observer:      observer,
		minRentalDays: minRentalDays,
	}, nil
}

// GetPanel returns an active panel or not-found. Inactive panels are hidden
// from callers the same way missing rows are.
func (s *service) GetPanel(ctx context.Context, id uuid.UUID) (*models.Panel, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "panel id is required")
	}
	panel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "panel not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load panel")
	}
	if !panel.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "panel not found")
	}
	return panel, nil
}

// ListPanels returns one page of active panels.
func (s *service) ListPanels(ctx context.Context, filters ListFilters, params pagination.Params) (*ListResult, error) {
	if filters.Type != nil && !filters.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid panel type filter")
	}
	result, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list panels")
	}
	return result, nil
}

// CheckAvailability validates the requested rental window against the panel's
// minimum rental period and its blocked ranges.
func (s *service) CheckAvailability(ctx context.Context, panelID uuid.UUID, start, end time.Time) error {
	panel, err := s.GetPanel(ctx, panelID)
	if err != nil {
		return err
	}
	return s.GuardRange(ctx, panel, start, end)
}

// GuardRange runs the availability checks for an already loaded panel. The
// cart quote path uses it to avoid reloading panels it has in hand.
func (s *service) GuardRange(ctx context.Context, panel *models.Panel, start, end time.Time) error {
	minDays := s.minRentalDays
	if panel.MinRentalDays != nil && *panel.MinRentalDays > 0 {
		minDays = *panel.MinRentalDays
	}

	if err := availability.ValidateDuration(minDays, start, end); err != nil {
		var short availability.MinimumDurationError
		if errors.As(err, &short) {
			s.observer.IncAvailabilityRejection(metrics.RejectionMinDuration)
			return pkgerrors.New(pkgerrors.CodeValidation, "rental period below panel minimum").
				WithDetails(map[string]int{
					"min_rental_days": short.Required,
					"requested_days":  short.Requested,
				})
		}
		return pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	ranges := make([]availability.BlockedRange, 0, len(panel.BlockedRanges))
	for _, blocked := range panel.BlockedRanges {
		ranges = append(ranges, availability.BlockedRange{
			StartDate: blocked.StartDate,
			EndDate:   blocked.EndDate,
		})
	}

	if err := availability.ValidateRange(ranges, start, end); err != nil {
		var blocked availability.RangeBlockedError
		if errors.As(err, &blocked) {
			s.observer.IncAvailabilityRejection(metrics.RejectionBlocked)
			s.log.Warn(s.log.WithPanelID(ctx, panel.ID.String()), "rental window overlaps blocked range")
			return pkgerrors.New(pkgerrors.CodeUnavailable, "panel is not available for the requested dates").
				WithDetails(map[string]string{
					"blocked_day": blocked.BlockedDay.Format("2006-01-02"),
				})
		}
		return pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	return nil
}

// AddBlockedRange records a maintenance or booking block on the panel.
func (s *service) AddBlockedRange(ctx context.Context, panelID uuid.UUID, start, end time.Time, reason *string) (*models.PanelBlockedRange, error) {
	if _, err := s.GetPanel(ctx, panelID); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date precedes start date")
	}

	blocked := &models.PanelBlockedRange{
		PanelID:   panelID,
		StartDate: start,
		EndDate:   end,
		Reason:    reason,
	}
	created, err := s.repo.CreateBlockedRange(ctx, blocked)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create blocked range")
	}
	return created, nil
}

// RemoveBlockedRange deletes a blocked range owned by the panel.
func (s *service) RemoveBlockedRange(ctx context.Context, panelID, rangeID uuid.UUID) error {
	if panelID == uuid.Nil || rangeID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "panel id and range id are required")
	}
	if err := s.repo.DeleteBlockedRange(ctx, panelID, rangeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "blocked range not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete blocked range")
	}
	return nil
}

// ListBlockedRanges returns the blocked ranges for the panel.
func (s *service) ListBlockedRanges(ctx context.Context, panelID uuid.UUID) ([]models.PanelBlockedRange, error) {
	if _, err := s.GetPanel(ctx, panelID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListBlockedRanges(ctx, panelID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list blocked ranges")
	}
	return rows, nil
}
