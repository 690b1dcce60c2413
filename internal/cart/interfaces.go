package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/panoport/panoport-backend/pkg/db/models"
	"github.com/panoport/panoport-backend/pkg/enums"
)

// CartRepository defines the persistence surface required by the cart service.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	FindActiveBySession(ctx context.Context, sessionID string) (*models.CartRecord, error)
	FindByIDAndSession(ctx context.Context, id uuid.UUID, sessionID string) (*models.CartRecord, error)
	Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error)
	Update(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error)
	ReplaceItems(ctx context.Context, cartID uuid.UUID, items []models.CartItem) error
	UpdateStatus(ctx context.Context, id uuid.UUID, sessionID string, status enums.CartStatus) error
	DeleteBySession(ctx context.Context, sessionID string) error
}
