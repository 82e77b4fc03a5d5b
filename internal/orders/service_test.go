package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopyard/shopyard-backend/pkg/db/models"
	pkgerrors "github.com/shopyard/shopyard-backend/pkg/errors"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:orders_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  seller_id TEXT,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT '',
  price_old NUMERIC,
  price_current NUMERIC NOT NULL,
  in_stock INTEGER NOT NULL DEFAULT 5,
  image1 TEXT NOT NULL DEFAULT '',
  image2 TEXT,
  image3 TEXT,
  is_deleted INTEGER NOT NULL DEFAULT 0,
  deleted_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  tx_ref TEXT NOT NULL UNIQUE,
  delivery_status TEXT NOT NULL DEFAULT 'PENDING',
  payment_status TEXT NOT NULL DEFAULT 'PENDING',
  date_delivered DATETIME,
  full_name TEXT,
  email TEXT,
  phone TEXT,
  address TEXT,
  city TEXT,
  country TEXT,
  zipcode TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  order_id TEXT,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func seedOrder(t *testing.T, conn *gorm.DB, userID uuid.UUID, txRef string, createdAt time.Time) *models.Order {
	t.Helper()

	product := &models.Product{
		CategoryID:   uuid.New(),
		Name:         "Wool Scarf " + txRef,
		Slug:         "wool-scarf-" + txRef,
		Description:  "scarf",
		PriceCurrent: decimal.RequireFromString("19.99"),
		Image1:       "https://img.example.com/scarf.jpg",
	}
	require.NoError(t, conn.Create(product).Error)

	order := &models.Order{
		UserID:    userID,
		TxRef:     txRef,
		CreatedAt: createdAt,
	}
	require.NoError(t, conn.Create(order).Error)

	require.NoError(t, conn.Create(&models.OrderItem{
		UserID:    userID,
		OrderID:   &order.ID,
		ProductID: product.ID,
		Quantity:  2,
	}).Error)
	return order
}

func TestListOrdersNewestFirst(t *testing.T) {
	conn := setupOrderTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	userID := uuid.New()

	base := time.Now().UTC().Add(-time.Hour)
	seedOrder(t, conn, userID, "AAAAAAAAAAAA", base)
	seedOrder(t, conn, userID, "BBBBBBBBBBBB", base.Add(time.Minute))
	seedOrder(t, conn, uuid.New(), "CCCCCCCCCCCC", base)

	listed, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "BBBBBBBBBBBB", listed[0].TxRef)
	require.Equal(t, "AAAAAAAAAAAA", listed[1].TxRef)
	require.Len(t, listed[0].Items, 1)
	require.True(t, listed[0].Subtotal.Equal(decimal.RequireFromString("39.98")))
}

func TestListOrdersForSeller(t *testing.T) {
	conn := setupOrderTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	sellerID := uuid.New()
	buyer := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)

	// Order with one of the seller's products plus someone else's item.
	mine := &models.Product{
		SellerID:     &sellerID,
		CategoryID:   uuid.New(),
		Name:         "Denim Jacket",
		Slug:         "denim-jacket",
		PriceCurrent: decimal.RequireFromString("64.99"),
		Image1:       "https://img.example.com/jacket.jpg",
	}
	require.NoError(t, conn.Create(mine).Error)

	matching := &models.Order{UserID: buyer, TxRef: "DDDDDDDDDDDD", CreatedAt: base}
	require.NoError(t, conn.Create(matching).Error)
	require.NoError(t, conn.Create(&models.OrderItem{
		UserID:    buyer,
		OrderID:   &matching.ID,
		ProductID: mine.ID,
		Quantity:  1,
	}).Error)

	// Order with no products from this seller.
	seedOrder(t, conn, buyer, "EEEEEEEEEEEE", base.Add(time.Minute))

	listed, err := svc.ListForSeller(context.Background(), sellerID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "DDDDDDDDDDDD", listed[0].TxRef)

	listed, err = svc.ListForSeller(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Empty(t, listed)
}

func TestGetOrderByTxRefScopedToUser(t *testing.T) {
	conn := setupOrderTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	userID := uuid.New()

	seedOrder(t, conn, userID, "AAAAAAAAAAAA", time.Now().UTC())

	order, err := svc.GetByTxRef(context.Background(), userID, "AAAAAAAAAAAA")
	require.NoError(t, err)
	require.Equal(t, "AAAAAAAAAAAA", order.TxRef)
	require.Len(t, order.Items, 1)
	require.Equal(t, 2, order.Items[0].Quantity)
	require.NotEmpty(t, order.Items[0].Product.Name)

	_, err = svc.GetByTxRef(context.Background(), uuid.New(), "AAAAAAAAAAAA")
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
	require.Equal(t, "Order does not exist!", appErr.Message())
}
