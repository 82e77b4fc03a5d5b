package products

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

	"github.com/shopyard/shopyard-backend/internal/categories"
	"github.com/shopyard/shopyard-backend/internal/reviews"
	"github.com/shopyard/shopyard-backend/pkg/db/models"
	pkgerrors "github.com/shopyard/shopyard-backend/pkg/errors"
	"github.com/shopyard/shopyard-backend/pkg/pagination"
)

func setupProductTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:products_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  avatar_url TEXT,
  account_type TEXT NOT NULL DEFAULT 'BUYER',
  is_staff INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  is_deleted INTEGER NOT NULL DEFAULT 0,
  deleted_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS sellers (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  business_name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  slug TEXT NOT NULL UNIQUE,
  image_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
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
		`CREATE TABLE IF NOT EXISTS reviews (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  rating INTEGER NOT NULL,
  text TEXT NOT NULL DEFAULT '',
  is_deleted INTEGER NOT NULL DEFAULT 0,
  deleted_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func newTestProductService(t *testing.T, conn *gorm.DB) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(conn)
	svc, err := NewService(ServiceParams{
		Repo:       repo,
		Categories: categories.NewRepository(conn),
		Reviews:    reviews.NewRepository(conn),
	})
	require.NoError(t, err)
	return svc, repo
}

type catalogFixture struct {
	seller    *models.Seller
	clothing  *models.Category
	homeGoods *models.Category
}

func seedCatalog(t *testing.T, conn *gorm.DB) catalogFixture {
	t.Helper()

	owner := &models.User{
		FirstName:    "Sam",
		LastName:     "Seller",
		Email:        "sam@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, conn.Create(owner).Error)

	seller := &models.Seller{
		UserID:       owner.ID,
		BusinessName: "Sam's Goods",
		Slug:         "sams-goods",
	}
	require.NoError(t, conn.Create(seller).Error)

	clothing := &models.Category{Name: "Clothing", Slug: "clothing"}
	homeGoods := &models.Category{Name: "Home Goods", Slug: "home-goods"}
	require.NoError(t, conn.Create(clothing).Error)
	require.NoError(t, conn.Create(homeGoods).Error)

	return catalogFixture{seller: seller, clothing: clothing, homeGoods: homeGoods}
}

func seedProduct(t *testing.T, conn *gorm.DB, fx catalogFixture, name, slug string, price string, createdAt time.Time) *models.Product {
	t.Helper()
	product := &models.Product{
		SellerID:     &fx.seller.ID,
		CategoryID:   fx.clothing.ID,
		Name:         name,
		Slug:         slug,
		Description:  name + " description",
		PriceCurrent: decimal.RequireFromString(price),
		InStock:      3,
		Image1:       "https://img.example.com/" + slug + ".jpg",
		CreatedAt:    createdAt,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestListProductsPaginatesNewestFirst(t *testing.T) {
	conn := setupProductTestDB(t)
	fx := seedCatalog(t, conn)
	svc, _ := newTestProductService(t, conn)

	base := time.Now().UTC().Add(-time.Hour)
	seedProduct(t, conn, fx, "Wool Scarf", "wool-scarf", "19.99", base)
	seedProduct(t, conn, fx, "Linen Shirt", "linen-shirt", "39.99", base.Add(time.Minute))
	seedProduct(t, conn, fx, "Denim Jacket", "denim-jacket", "89.99", base.Add(2*time.Minute))

	page1, err := svc.List(context.Background(), ListProductsInput{
		Pagination: pagination.Params{Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, page1.Products, 2)
	require.Equal(t, "denim-jacket", page1.Products[0].Slug)
	require.Equal(t, "linen-shirt", page1.Products[1].Slug)
	require.NotEmpty(t, page1.NextCursor)
	require.Equal(t, "clothing", page1.Products[0].Category.Slug)
	require.NotNil(t, page1.Products[0].Seller)
	require.Equal(t, "sams-goods", page1.Products[0].Seller.Slug)

	page2, err := svc.List(context.Background(), ListProductsInput{
		Pagination: pagination.Params{Limit: 2, Cursor: page1.NextCursor},
	})
	require.NoError(t, err)
	require.Len(t, page2.Products, 1)
	require.Equal(t, "wool-scarf", page2.Products[0].Slug)
	require.Empty(t, page2.NextCursor)
}

func TestListProductsFilters(t *testing.T) {
	conn := setupProductTestDB(t)
	fx := seedCatalog(t, conn)
	svc, _ := newTestProductService(t, conn)

	base := time.Now().UTC().Add(-time.Hour)
	seedProduct(t, conn, fx, "Wool Scarf", "wool-scarf", "19.99", base)
	jacket := seedProduct(t, conn, fx, "Denim Jacket", "denim-jacket", "89.99", base.Add(time.Minute))

	kettle := &models.Product{
		SellerID:     &fx.seller.ID,
		CategoryID:   fx.homeGoods.ID,
		Name:         "Copper Kettle",
		Slug:         "copper-kettle",
		Description:  "stovetop kettle",
		PriceCurrent: decimal.RequireFromString("49.99"),
		InStock:      0,
		Image1:       "https://img.example.com/copper-kettle.jpg",
		CreatedAt:    base.Add(2 * time.Minute),
	}
	require.NoError(t, conn.Create(kettle).Error)

	byCategory, err := svc.List(context.Background(), ListProductsInput{
		Filters: ProductListFilters{CategorySlug: "home-goods"},
	})
	require.NoError(t, err)
	require.Len(t, byCategory.Products, 1)
	require.Equal(t, "copper-kettle", byCategory.Products[0].Slug)

	minPrice := decimal.RequireFromString("40")
	byPrice, err := svc.List(context.Background(), ListProductsInput{
		Filters: ProductListFilters{PriceMin: &minPrice},
	})
	require.NoError(t, err)
	require.Len(t, byPrice.Products, 2)

	inStock, err := svc.List(context.Background(), ListProductsInput{
		Filters: ProductListFilters{InStockOnly: true},
	})
	require.NoError(t, err)
	for _, p := range inStock.Products {
		require.NotEqual(t, "copper-kettle", p.Slug)
	}

	bySearch, err := svc.List(context.Background(), ListProductsInput{
		Filters: ProductListFilters{Query: "denim"},
	})
	require.NoError(t, err)
	require.Len(t, bySearch.Products, 1)
	require.Equal(t, jacket.Slug, bySearch.Products[0].Slug)
}

func TestGetProductBySlugIncludesReviews(t *testing.T) {
	conn := setupProductTestDB(t)
	fx := seedCatalog(t, conn)
	svc, _ := newTestProductService(t, conn)

	product := seedProduct(t, conn, fx, "Wool Scarf", "wool-scarf", "19.99", time.Now().UTC())

	reviewer := &models.User{
		FirstName:    "Rita",
		LastName:     "Reviewer",
		Email:        "rita@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, conn.Create(reviewer).Error)
	require.NoError(t, conn.Create(&models.Review{
		UserID:    reviewer.ID,
		ProductID: product.ID,
		Rating:    5,
		Text:      "Warm and soft.",
	}).Error)
	require.NoError(t, conn.Create(&models.Review{
		UserID:    fx.seller.UserID,
		ProductID: product.ID,
		Rating:    4,
		Text:      "Good value.",
	}).Error)

	detail, err := svc.GetBySlug(context.Background(), "wool-scarf")
	require.NoError(t, err)
	require.Equal(t, 4.5, detail.Rating)
	require.Equal(t, 2, detail.NumReviews)
	require.Len(t, detail.Reviews, 2)
	require.Equal(t, "Wool Scarf description", detail.Description)

	_, err = svc.GetBySlug(context.Background(), "no-such-product")
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
	require.Equal(t, "Product does not exist!", appErr.Message())
}

func TestCreateProductAssignsSlug(t *testing.T) {
	conn := setupProductTestDB(t)
	fx := seedCatalog(t, conn)
	svc, _ := newTestProductService(t, conn)

	first, err := svc.Create(context.Background(), fx.seller.ID, CreateProductRequest{
		Name:         "Wool Scarf",
		Description:  "hand knitted",
		CategorySlug: "clothing",
		PriceCurrent: decimal.RequireFromString("19.99"),
		Image1:       "https://img.example.com/scarf.jpg",
	})
	require.NoError(t, err)
	require.Equal(t, "wool-scarf", first.Slug)
	require.Equal(t, defaultStock, first.InStock)
	require.NotNil(t, first.Seller)
	require.Equal(t, fx.seller.ID, first.Seller.ID)

	second, err := svc.Create(context.Background(), fx.seller.ID, CreateProductRequest{
		Name:         "Wool Scarf",
		Description:  "another scarf",
		CategorySlug: "clothing",
		PriceCurrent: decimal.RequireFromString("24.99"),
		Image1:       "https://img.example.com/scarf2.jpg",
	})
	require.NoError(t, err)
	require.NotEqual(t, first.Slug, second.Slug)
	require.Contains(t, second.Slug, "wool-scarf-")

	_, err = svc.Create(context.Background(), fx.seller.ID, CreateProductRequest{
		Name:         "Mystery Item",
		CategorySlug: "no-such-category",
		PriceCurrent: decimal.RequireFromString("5.00"),
		Image1:       "https://img.example.com/mystery.jpg",
	})
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	require.Equal(t, "Category does not exist!", appErr.Message())
}

func TestUpdateProductChecksOwnership(t *testing.T) {
	conn := setupProductTestDB(t)
	fx := seedCatalog(t, conn)
	svc, _ := newTestProductService(t, conn)

	seedProduct(t, conn, fx, "Wool Scarf", "wool-scarf", "19.99", time.Now().UTC())

	newPrice := decimal.RequireFromString("17.50")
	stock := 12
	updated, err := svc.Update(context.Background(), fx.seller.ID, "wool-scarf", UpdateProductRequest{
		PriceCurrent: &newPrice,
		InStock:      &stock,
	})
	require.NoError(t, err)
	require.True(t, updated.PriceCurrent.Equal(newPrice))
	require.Equal(t, 12, updated.InStock)
	require.Equal(t, "wool-scarf", updated.Slug)

	_, err = svc.Update(context.Background(), uuid.New(), "wool-scarf", UpdateProductRequest{
		InStock: &stock,
	})
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	conn := setupProductTestDB(t)
	fx := seedCatalog(t, conn)
	svc, _ := newTestProductService(t, conn)

	product := seedProduct(t, conn, fx, "Wool Scarf", "wool-scarf", "19.99", time.Now().UTC())

	require.NoError(t, svc.Delete(context.Background(), fx.seller.ID, "wool-scarf"))

	_, err := svc.GetBySlug(context.Background(), "wool-scarf")
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	var stored models.Product
	require.NoError(t, conn.First(&stored, "id = ?", product.ID).Error)
	require.True(t, stored.IsDeleted)
	require.NotNil(t, stored.DeletedAt)

	mine, err := svc.ListForSeller(context.Background(), fx.seller.ID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, mine.Products, 1)
	require.Equal(t, "wool-scarf", mine.Products[0].Slug)
}
