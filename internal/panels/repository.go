package panels

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/panoport/panoport-backend/pkg/db/models"
	"github.com/panoport/panoport-backend/pkg/enums"
	"github.com/panoport/panoport-backend/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the panel browse endpoint.
type ListFilters struct {
	City      *string          `json:"city,omitempty"`
	Type      *enums.PanelType `json:"type,omitempty"`
	OwnerName *string          `json:"owner_name,omitempty"`
	Query     string           `json:"q,omitempty"`
}

// ListResult carries one page of panels plus the cursor for the next page.
type ListResult struct {
	Panels     []models.Panel
	NextCursor string
}

// Repository exposes persistence operations for panels and their blocked
// date ranges.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a panel repository bound to the provided DB.
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

// FindByID loads a panel with its blocked ranges.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Panel, error) {
	var panel models.Panel
	err := r.db.WithContext(ctx).
		Preload("BlockedRanges").
		Where("id = ?", id).
		First(&panel).Error
	if err != nil {
		return nil, err
	}
	return &panel, nil
}

// FindByIDs loads the requested panels with their blocked ranges. Missing ids
// are simply absent from the result.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Panel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Panel
	err := r.db.WithContext(ctx).
		Preload("BlockedRanges").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// List returns active panels matching the filters, newest first, using
// keyset pagination.
func (r *Repository) List(ctx context.Context, filters ListFilters, params pagination.Params) (*ListResult, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Model(&models.Panel{}).
		Where("is_active = ?", true)

	if filters.City != nil {
		qb = qb.Where("city = ?", *filters.City)
	}
	if filters.Type != nil {
		qb = qb.Where("type = ?", *filters.Type)
	}
	if filters.OwnerName != nil {
		qb = qb.Where("owner_name = ?", *filters.OwnerName)
	}
	if search := strings.TrimSpace(filters.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(code) LIKE ? OR LOWER(city) LIKE ? OR LOWER(COALESCE(district, '')) LIKE ?)", pattern, pattern, pattern)
	}

	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Panel
	if err := qb.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&rows).Error; err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return &ListResult{Panels: rows, NextCursor: nextCursor}, nil
}

// Create inserts a new panel.
func (r *Repository) Create(ctx context.Context, panel *models.Panel) (*models.Panel, error) {
	if err := r.db.WithContext(ctx).Create(panel).Error; err != nil {
		return nil, err
	}
	return panel, nil
}

// Update saves the provided panel.
func (r *Repository) Update(ctx context.Context, panel *models.Panel) (*models.Panel, error) {
	if err := r.db.WithContext(ctx).Save(panel).Error; err != nil {
		return nil, err
	}
	return panel, nil
}

// CreateBlockedRange inserts a blocked range for a panel.
func (r *Repository) CreateBlockedRange(ctx context.Context, blocked *models.PanelBlockedRange) (*models.PanelBlockedRange, error) {
	if err := r.db.WithContext(ctx).Create(blocked).Error; err != nil {
		return nil, err
	}
	return blocked, nil
}

// DeleteBlockedRange removes a blocked range belonging to the panel.
func (r *Repository) DeleteBlockedRange(ctx context.Context, panelID, rangeID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND panel_id = ?", rangeID, panelID).
		Delete(&models.PanelBlockedRange{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListBlockedRanges returns the blocked ranges for a panel ordered by start.
func (r *Repository) ListBlockedRanges(ctx context.Context, panelID uuid.UUID) ([]models.PanelBlockedRange, error) {
	var rows []models.PanelBlockedRange
	err := r.db.WithContext(ctx).
		Where("panel_id = ?", panelID).
		Order("start_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
