package products

import (
	"context"
	"database/sql"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopyard/shopyard-backend/pkg/db/models"
	"github.com/shopyard/shopyard-backend/pkg/pagination"
)

// ratingJoin aggregates live reviews once per query instead of per product row.
const ratingJoin = `LEFT JOIN (
  SELECT product_id, AVG(rating) AS avg_rating, COUNT(*) AS num_reviews
  FROM reviews
  WHERE is_deleted = ?
  GROUP BY product_id
) rv ON rv.product_id = p.id`

// Repository wires together product persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct persists the mutable fields of an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// SoftDelete flags the product deleted without removing the row.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{
			"is_deleted": true,
			"deleted_at": at,
		}).Error
}

// SlugExists reports whether any product row, deleted or not, holds the slug.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindLiveBySlug loads a non-deleted product with its seller and category.
func (r *Repository) FindLiveBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Seller").
		Preload("Category").
		Where("slug = ? AND is_deleted = ?", slug, false).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindLiveByID loads a non-deleted product without associations.
func (r *Repository) FindLiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindOwnedBySlug loads a seller's own product, deleted or not.
func (r *Repository) FindOwnedBySlug(ctx context.Context, sellerID uuid.UUID, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ? AND seller_id = ?", slug, sellerID).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListSummaries runs the filtered, cursor-paginated browse query with ratings.
func (r *Repository) ListSummaries(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	pageSize := pagination.NormalizeLimit(input.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(input.Pagination.Limit)

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Table("products p").
		Select(strings.Join([]string{
			"p.id",
			"p.name",
			"p.slug",
			"p.price_old",
			"p.price_current",
			"p.in_stock",
			"p.image1",
			"p.created_at",
			"p.updated_at",
			"rv.avg_rating",
			"rv.num_reviews",
			"s.id AS seller_id",
			"s.business_name AS seller_name",
			"s.slug AS seller_slug",
			"c.id AS category_id",
			"c.name AS category_name",
			"c.slug AS category_slug",
		}, ", ")).
		Joins("JOIN categories c ON c.id = p.category_id").
		Joins("LEFT JOIN sellers s ON s.id = p.seller_id").
		Joins(ratingJoin, false)

	if !input.IncludeDeleted {
		qb = qb.Where("p.is_deleted = ?", false)
	}
	if input.SellerID != nil {
		qb = qb.Where("p.seller_id = ?", *input.SellerID)
	}

	filter := input.Filters
	if filter.CategorySlug != "" {
		qb = qb.Where("c.slug = ?", filter.CategorySlug)
	}
	if filter.SellerSlug != "" {
		qb = qb.Where("s.slug = ?", filter.SellerSlug)
	}
	if filter.PriceMin != nil {
		qb = qb.Where("p.price_current >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		qb = qb.Where("p.price_current <= ?", *filter.PriceMax)
	}
	if filter.InStockOnly {
		qb = qb.Where("p.in_stock > 0")
	}
	if search := strings.TrimSpace(filter.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(p.name) LIKE ? OR LOWER(p.description) LIKE ?)", pattern, pattern)
	}

	if cursor != nil {
		qb = qb.Where("(p.created_at < ?) OR (p.created_at = ? AND p.id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	qb = qb.Order("p.created_at DESC").Order("p.id DESC").Limit(limitWithBuffer)

	var records []productSummaryRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > pageSize {
		resultRows = records[:pageSize]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	summaries := make([]ProductSummary, 0, len(resultRows))
	for _, record := range resultRows {
		summaries = append(summaries, record.toSummary())
	}

	return &ProductListResult{
		Products:   summaries,
		NextCursor: nextCursor,
	}, nil
}

type productSummaryRecord struct {
	ID           uuid.UUID
	Name         string
	Slug         string
	PriceOld     decimal.NullDecimal
	PriceCurrent decimal.Decimal
	InStock      int
	Image1       string
	AvgRating    sql.NullFloat64
	NumReviews   sql.NullInt64
	SellerID     *uuid.UUID
	SellerName   sql.NullString
	SellerSlug   sql.NullString
	CategoryID   uuid.UUID
	CategoryName string
	CategorySlug string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r productSummaryRecord) toSummary() ProductSummary {
	summary := ProductSummary{
		ID:           r.ID,
		Name:         r.Name,
		Slug:         r.Slug,
		PriceCurrent: r.PriceCurrent,
		InStock:      r.InStock,
		Image1:       r.Image1,
		Rating:       RoundRating(r.AvgRating.Float64),
		Category: CategorySummary{
			ID:   r.CategoryID,
			Name: r.CategoryName,
			Slug: r.CategorySlug,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if !r.AvgRating.Valid {
		summary.Rating = 0
	}
	if r.NumReviews.Valid {
		summary.NumReviews = int(r.NumReviews.Int64)
	}
	if r.PriceOld.Valid {
		v := r.PriceOld.Decimal
		summary.PriceOld = &v
	}
	if r.SellerID != nil && r.SellerName.Valid && r.SellerSlug.Valid {
		summary.Seller = &SellerSummary{
			ID:           *r.SellerID,
			BusinessName: r.SellerName.String,
			Slug:         r.SellerSlug.String,
		}
	}
	return summary
}

// RoundRating rounds an average rating to one decimal.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
