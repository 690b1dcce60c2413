package rules

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/panoport/panoport-backend/pkg/db/models"
)

// Repository exposes persistence operations for discount rules.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a rule repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListActive returns active rules ordered for deterministic evaluation.
func (r *Repository) ListActive(ctx context.Context) ([]models.DiscountRule, error) {
	var rows []models.DiscountRule
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority DESC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// List returns every rule, active or not.
func (r *Repository) List(ctx context.Context) ([]models.DiscountRule, error) {
	var rows []models.DiscountRule
	if err := r.db.WithContext(ctx).
		Order("priority DESC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID loads a single rule.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.DiscountRule, error) {
	var row models.DiscountRule
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new rule.
func (r *Repository) Create(ctx context.Context, rule *models.DiscountRule) (*models.DiscountRule, error) {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

// Update saves the provided rule.
func (r *Repository) Update(ctx context.Context, rule *models.DiscountRule) (*models.DiscountRule, error) {
	if err := r.db.WithContext(ctx).Save(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

// Delete removes the rule by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.DiscountRule{}).Error
}
