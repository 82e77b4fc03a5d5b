package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopyard/shopyard-backend/pkg/db/models"
)

// Repository manages order_items rows with a NULL order_id, the cart lines.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindLine returns the user's cart line for the product, if any.
func (r *Repository) FindLine(ctx context.Context, userID, productID uuid.UUID) (*models.OrderItem, error) {
	var line models.OrderItem
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND product_id = ? AND order_id IS NULL", userID, productID).
		First(&line).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

// CreateLine inserts a cart line.
func (r *Repository) CreateLine(ctx context.Context, line *models.OrderItem) (*models.OrderItem, error) {
	if err := r.db.WithContext(ctx).Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateQuantity sets the absolute quantity on a cart line.
func (r *Repository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("id = ? AND order_id IS NULL", id).
		Update("quantity", quantity).Error
}

// DeleteLine removes a cart line. Ordered items are never deleted here.
func (r *Repository) DeleteLine(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND order_id IS NULL", id).
		Delete(&models.OrderItem{}).Error
}

// ListLines returns the user's cart lines with products, oldest first.
func (r *Repository) ListLines(ctx context.Context, userID uuid.UUID) ([]models.OrderItem, error) {
	var lines []models.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND order_id IS NULL", userID).
		Order("created_at ASC").
		Find(&lines).Error
	return lines, err
}

// ReparentToOrder attaches every cart line of the user to the order in one
// statement. The flip is one way; nothing ever sets order_id back to NULL.
func (r *Repository) ReparentToOrder(ctx context.Context, userID, orderID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("user_id = ? AND order_id IS NULL", userID).
		Update("order_id", orderID)
	return result.RowsAffected, result.Error
}
