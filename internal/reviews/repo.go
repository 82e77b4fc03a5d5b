package reviews

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopyard/shopyard-backend/pkg/db/models"
)

// Repository exposes review persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reviews repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a review row.
func (r *Repository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// Update persists rating and text changes on an existing review.
func (r *Repository) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).
		Model(review).
		Updates(map[string]any{
			"rating": review.Rating,
			"text":   review.Text,
		}).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// FindLive returns the non-deleted review for the (user, product) pair.
func (r *Repository) FindLive(ctx context.Context, userID, productID uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND is_deleted = ?", userID, productID, false).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByProduct returns live reviews for a product, newest first, with authors.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	var rows []models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ? AND is_deleted = ?", productID, false).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// SoftDelete marks the review deleted.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{
			"is_deleted": true,
			"deleted_at": at,
		}).Error
}

// RatingSummary aggregates the live reviews for one product.
type RatingSummary struct {
	Rating     float64
	NumReviews int
}

// Aggregate computes the mean rating rounded to one decimal, 0 when no reviews exist.
func (r *Repository) Aggregate(ctx context.Context, productID uuid.UUID) (RatingSummary, error) {
	type row struct {
		Avg   *float64
		Count int
	}
	var res row
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where("product_id = ? AND is_deleted = ?", productID, false).
		Scan(&res).Error
	if err != nil {
		return RatingSummary{}, err
	}
	summary := RatingSummary{NumReviews: res.Count}
	if res.Avg != nil {
		summary.Rating = math.Round(*res.Avg*10) / 10
	}
	return summary, nil
}
