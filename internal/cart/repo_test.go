package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/panoport/panoport-backend/pkg/db/models"
	"github.com/panoport/panoport-backend/pkg/enums"
	"github.com/panoport/panoport-backend/pkg/types"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	cartRecords := `
CREATE TABLE IF NOT EXISTS cart_records (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'active',
  currency TEXT NOT NULL DEFAULT 'TRY',
  subtotal TEXT NOT NULL DEFAULT '0',
  discount TEXT NOT NULL DEFAULT '0',
  fees TEXT NOT NULL DEFAULT '0',
  total TEXT NOT NULL DEFAULT '0',
  converted_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  panel_id TEXT NOT NULL,
  panel_type TEXT NOT NULL,
  owner_name TEXT,
  city TEXT NOT NULL,
  base_price_weekly TEXT NOT NULL,
  start_date DATETIME,
  end_date DATETIME,
  double_sided INTEGER NOT NULL DEFAULT 0,
  weeks INTEGER NOT NULL DEFAULT 1,
  unit_price TEXT NOT NULL,
  line_subtotal TEXT NOT NULL,
  line_discount TEXT NOT NULL DEFAULT '0',
  applied_rule TEXT,
  status TEXT NOT NULL DEFAULT 'ok',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(cartRecords).Error)
	require.NoError(t, db.Exec(cartItems).Error)
	require.NoError(t, db.Exec(`DELETE FROM cart_items`).Error)
	require.NoError(t, db.Exec(`DELETE FROM cart_records`).Error)
	return db
}

func newCartRecord(t *testing.T, repo *Repository, sessionID string) *models.CartRecord {
	t.Helper()

	record := &models.CartRecord{
		ID:        uuid.New(),
		SessionID: sessionID,
		Currency:  "TRY",
		Subtotal:  decimal.NewFromInt(4000),
		Discount:  decimal.Zero,
		Fees:      decimal.Zero,
		Total:     decimal.NewFromInt(4000),
	}
	created, err := repo.Create(context.Background(), record)
	require.NoError(t, err)
	require.Equal(t, enums.CartStatusActive, created.Status)
	return created
}

func TestRepositoryFindActiveBySession(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	record := newCartRecord(t, repo, "sess-find")

	loaded, err := repo.FindActiveBySession(ctx, "sess-find")
	require.NoError(t, err)
	require.Equal(t, record.ID, loaded.ID)
	require.True(t, loaded.Subtotal.Equal(decimal.NewFromInt(4000)))

	_, err = repo.FindActiveBySession(ctx, "sess-other")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.UpdateStatus(ctx, record.ID, "sess-find", enums.CartStatusAbandoned))
	_, err = repo.FindActiveBySession(ctx, "sess-find")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryReplaceItemsRoundTripsAppliedRule(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	record := newCartRecord(t, repo, "sess-items")

	pct := decimal.NewFromInt(25)
	items := []models.CartItem{
		{
			ID:              uuid.New(),
			PanelID:         uuid.New(),
			PanelType:       enums.PanelTypeCLP,
			City:            "Kocaeli",
			BasePriceWeekly: decimal.NewFromInt(2000),
			Weeks:           2,
			UnitPrice:       decimal.NewFromInt(1500),
			LineSubtotal:    decimal.NewFromInt(4000),
			LineDiscount:    decimal.NewFromInt(1000),
			Status:          enums.CartItemStatusOK,
			AppliedRule: &types.AppliedRule{
				RuleID:          uuid.New(),
				Name:            "CLP tier",
				MinQuantity:     20,
				DiscountPercent: &pct,
			},
		},
	}
	require.NoError(t, repo.ReplaceItems(ctx, record.ID, items))

	loaded, err := repo.FindByIDAndSession(ctx, record.ID, "sess-items")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)

	item := loaded.Items[0]
	require.Equal(t, 2, item.Weeks)
	require.True(t, item.UnitPrice.Equal(decimal.NewFromInt(1500)))
	require.NotNil(t, item.AppliedRule)
	require.Equal(t, "CLP tier", item.AppliedRule.Name)
	require.Equal(t, 20, item.AppliedRule.MinQuantity)
	require.NotNil(t, item.AppliedRule.DiscountPercent)
	require.True(t, item.AppliedRule.DiscountPercent.Equal(pct))

	// Replacing with an empty set clears the cart.
	require.NoError(t, repo.ReplaceItems(ctx, record.ID, nil))
	loaded, err = repo.FindByIDAndSession(ctx, record.ID, "sess-items")
	require.NoError(t, err)
	require.Empty(t, loaded.Items)
}

func TestRepositoryDeleteBySession(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	newCartRecord(t, repo, "sess-del")
	keep := newCartRecord(t, repo, "sess-keep")

	require.NoError(t, repo.DeleteBySession(ctx, "sess-del"))

	_, err := repo.FindActiveBySession(ctx, "sess-del")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	still, err := repo.FindActiveBySession(ctx, "sess-keep")
	require.NoError(t, err)
	require.Equal(t, keep.ID, still.ID)
}
