package rules

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/panoport/panoport-backend/internal/pricing"
	"github.com/panoport/panoport-backend/pkg/db/models"
	"github.com/panoport/panoport-backend/pkg/enums"
	pkgerrors "github.com/panoport/panoport-backend/pkg/errors"
	"github.com/panoport/panoport-backend/pkg/logger"
)

// RuleRepository defines the persistence surface required by the rule service.
type RuleRepository interface {
	ListActive(ctx context.Context) ([]models.DiscountRule, error)
	List(ctx context.Context) ([]models.DiscountRule, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.DiscountRule, error)
	Create(ctx context.Context, rule *models.DiscountRule) (*models.DiscountRule, error)
	Update(ctx context.Context, rule *models.DiscountRule) (*models.DiscountRule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes discount rule management and the read path used by pricing.
type Service interface {
	ActiveRules(ctx context.Context) ([]pricing.Rule, error)
	ListRules(ctx context.Context) ([]models.DiscountRule, error)
	GetRule(ctx context.Context, id uuid.UUID) (*models.DiscountRule, error)
	CreateRule(ctx context.Context, input RuleInput) (*models.DiscountRule, error)
	UpdateRule(ctx context.Context, id uuid.UUID, input RuleInput) (*models.DiscountRule, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo RuleRepository
	log  *logger.Logger
}

// NewService builds a rule service backed by the provided repository.
func NewService(repo RuleRepository, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rule repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, log: log}, nil
}

// RuleInput captures the payload for creating or replacing a rule.
type RuleInput struct {
	Name            string
	PanelType       *enums.PanelType
	OwnerName       *string
	City            *string
	MinQuantity     int
	DiscountPercent *decimal.Decimal
	FixedUnitPrice  *decimal.Decimal
	Priority        int
	IsActive        bool
}

func (in RuleInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "rule name is required")
	}
	if in.PanelType != nil && !in.PanelType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid panel type filter")
	}
	if in.OwnerName != nil && strings.TrimSpace(*in.OwnerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "owner filter cannot be blank")
	}
	if in.City != nil && strings.TrimSpace(*in.City) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "city filter cannot be blank")
	}
	if in.MinQuantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "min quantity must be at least 1")
	}
	if (in.DiscountPercent == nil) == (in.FixedUnitPrice == nil) {
		return pkgerrors.New(pkgerrors.CodeValidation, "exactly one of discount percent and fixed unit price must be set")
	}
	if in.DiscountPercent != nil {
		if !in.DiscountPercent.IsPositive() || in.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
			return pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be within (0, 100]")
		}
	}
	if in.FixedUnitPrice != nil && in.FixedUnitPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "fixed unit price cannot be negative")
	}
	return nil
}

// ActiveRules loads active rules and converts them to the engine's view.
// Rows that violate the pricing invariant are skipped with a warning rather
// than failing every quote.
func (s *service) ActiveRules(ctx context.Context) ([]pricing.Rule, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount rules")
	}

	out := make([]pricing.Rule, 0, len(rows))
	for _, row := range rows {
		rule := RuleFromModel(row)
		if rule.Conflicted() {
			s.log.Warn(s.log.WithField(ctx, "rule_id", row.ID.String()),
				"skipping discount rule with conflicting pricing fields")
			continue
		}
		out = append(out, rule)
	}
	return out, nil
}

// ListRules returns every stored rule.
func (s *service) ListRules(ctx context.Context) ([]models.DiscountRule, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list discount rules")
	}
	return rows, nil
}

// GetRule returns a single rule or not-found.
func (s *service) GetRule(ctx context.Context, id uuid.UUID) (*models.DiscountRule, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rule id is required")
	}
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "discount rule not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount rule")
	}
	return row, nil
}

// CreateRule validates and persists a new rule.
func (s *service) CreateRule(ctx context.Context, input RuleInput) (*models.DiscountRule, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	row := modelFromInput(input)
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create discount rule")
	}
	return created, nil
}

// UpdateRule replaces the stored rule with the validated input.
func (s *service) UpdateRule(ctx context.Context, id uuid.UUID, input RuleInput) (*models.DiscountRule, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	row, err := s.GetRule(ctx, id)
	if err != nil {
		return nil, err
	}

	row.Name = input.Name
	row.PanelType = input.PanelType
	row.OwnerName = input.OwnerName
	row.City = input.City
	row.MinQuantity = input.MinQuantity
	row.DiscountPercent = input.DiscountPercent
	row.FixedUnitPrice = input.FixedUnitPrice
	row.Priority = input.Priority
	row.IsActive = input.IsActive

	updated, err := s.repo.Update(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update discount rule")
	}
	return updated, nil
}

// DeleteRule removes the rule by id.
func (s *service) DeleteRule(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetRule(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete discount rule")
	}
	return nil
}

// RuleFromModel converts a stored rule row to the engine's representation.
func RuleFromModel(row models.DiscountRule) pricing.Rule {
	return pricing.Rule{
		ID:              row.ID,
		Name:            row.Name,
		PanelType:       row.PanelType,
		OwnerName:       row.OwnerName,
		City:            row.City,
		MinQuantity:     row.MinQuantity,
		DiscountPercent: row.DiscountPercent,
		FixedUnitPrice:  row.FixedUnitPrice,
		Priority:        row.Priority,
		Active:          row.IsActive,
	}
}

func modelFromInput(input RuleInput) *models.DiscountRule {
	return &models.DiscountRule{
		Name:            strings.TrimSpace(input.Name),
		PanelType:       input.PanelType,
		OwnerName:       input.OwnerName,
		City:            input.City,
		MinQuantity:     input.MinQuantity,
		DiscountPercent: input.DiscountPercent,
		FixedUnitPrice:  input.FixedUnitPrice,
		Priority:        input.Priority,
		IsActive:        input.IsActive,
	}
}
