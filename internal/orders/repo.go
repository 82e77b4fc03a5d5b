package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopyard/shopyard-backend/pkg/db/models"
)

// Repository exposes order persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts an order row without items.
func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// TxRefExists reports whether an order already carries the reference.
func (r *Repository) TxRefExists(ctx context.Context, txRef string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("tx_ref = ?", txRef).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByUser returns the user's orders with items and products, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListBySeller returns orders that contain at least one of the seller's
// products, newest first. Item preloads are not restricted to the seller; the
// storefront sees the whole order it has to fulfil part of.
func (r *Repository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("id IN (?)", r.db.
			Table("order_items oi").
			Select("oi.order_id").
			Joins("JOIN products p ON p.id = oi.product_id").
			Where("oi.order_id IS NOT NULL AND p.seller_id = ?", sellerID)).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// FindByTxRef loads one of the user's orders by its reference.
func (r *Repository) FindByTxRef(ctx context.Context, userID uuid.UUID, txRef string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ? AND tx_ref = ?", userID, txRef).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
