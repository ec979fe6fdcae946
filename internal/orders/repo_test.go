package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/dropsight-backend/internal/engine/types"
	"github.com/angelmondragon/dropsight-backend/pkg/db/models"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	shopOrders := `
CREATE TABLE IF NOT EXISTS shop_orders (
  id TEXT PRIMARY KEY,
  shop_id TEXT NOT NULL,
  external_id TEXT NOT NULL,
  email TEXT,
  currency TEXT NOT NULL DEFAULT 'USD',
  total_price NUMERIC NOT NULL,
  total_discounts NUMERIC NOT NULL DEFAULT 0,
  financial_status TEXT NOT NULL DEFAULT 'paid',
  fulfillment_status TEXT,
  placed_at DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	lineItems := `
CREATE TABLE IF NOT EXISTS shop_order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  variant_id TEXT,
  title TEXT NOT NULL,
  variant_title TEXT,
  sku TEXT,
  vendor TEXT,
  product_type TEXT,
  price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME
);`
	refunds := `
CREATE TABLE IF NOT EXISTS order_refunds (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  processed_at DATETIME NOT NULL,
  amount NUMERIC NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(shopOrders).Error)
	require.NoError(t, db.Exec(lineItems).Error)
	require.NoError(t, db.Exec(refunds).Error)
	return db
}

func createShopOrder(t *testing.T, db *gorm.DB, shopID, externalID string, placed time.Time, qty int) *models.ShopOrder {
	t.Helper()

	variantID := "v-" + externalID
	order := &models.ShopOrder{
		ID:         uuid.New(),
		ShopID:     shopID,
		ExternalID: externalID,
		Currency:   "USD",
		TotalPrice: decimal.NewFromInt(int64(qty) * 25),
		PlacedAt:   placed,
		CreatedAt:  placed,
		UpdatedAt:  placed,
	}
	require.NoError(t, db.Create(order).Error)

	item := &models.ShopOrderLineItem{
		ID:          uuid.New(),
		OrderID:     order.ID,
		VariantID:   &variantID,
		Title:       "Test Product",
		Vendor:      "Acme",
		ProductType: "Tops",
		Price:       decimal.NewFromInt(25),
		Quantity:    qty,
		CreatedAt:   placed,
	}
	require.NoError(t, db.Create(item).Error)
	return order
}

func TestRepositoryListInWindow(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	shopID := "shop-" + uuid.NewString()
	otherShop := "shop-" + uuid.NewString()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	window := types.Window{Start: start, End: start.Add(24 * time.Hour)}

	createShopOrder(t, db, shopID, "inside-late", start.Add(6*time.Hour), 2)
	createShopOrder(t, db, shopID, "inside-early", start.Add(1*time.Hour), 1)
	createShopOrder(t, db, shopID, "before-window", start.Add(-1*time.Hour), 3)
	createShopOrder(t, db, shopID, "after-window", start.Add(30*time.Hour), 3)
	createShopOrder(t, db, otherShop, "other-shop", start.Add(2*time.Hour), 5)

	got, err := repo.ListInWindow(context.Background(), shopID, window)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// placed_at ascending
	assert.Equal(t, "inside-early", got[0].ID)
	assert.Equal(t, "inside-late", got[1].ID)
	assert.True(t, got[0].CreatedAt.Before(got[1].CreatedAt))

	// line items hydrate with variant identity intact
	require.Len(t, got[1].LineItems, 1)
	assert.Equal(t, "v-inside-late", got[1].LineItems[0].VariantID)
	assert.Equal(t, 2, got[1].LineItems[0].Quantity)
	assert.Equal(t, "Acme", got[1].LineItems[0].Vendor)
}

func TestRepositoryListInWindowPreloadsRefunds(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	shopID := "shop-" + uuid.NewString()
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	window := types.Window{Start: start, End: start.Add(12 * time.Hour)}

	order := createShopOrder(t, db, shopID, "refunded-order", start.Add(time.Hour), 2)
	refund := &models.OrderRefund{
		ID:          uuid.New(),
		OrderID:     order.ID,
		ProcessedAt: start.Add(3 * time.Hour),
		Amount:      decimal.NewFromInt(25),
		CreatedAt:   start.Add(3 * time.Hour),
	}
	require.NoError(t, db.Create(refund).Error)

	got, err := repo.ListInWindow(context.Background(), shopID, window)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Refunds, 1)
	require.Len(t, got[0].Refunds[0].Transactions, 1)
	assert.True(t, got[0].Refunds[0].Transactions[0].Amount.Equal(decimal.NewFromInt(25)))
}
