package profiles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopyard/shopyard-backend/pkg/db/models"
)

// Repository exposes shipping address persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a profiles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateAddress inserts a shipping address.
func (r *Repository) CreateAddress(ctx context.Context, address *models.ShippingAddress) (*models.ShippingAddress, error) {
	if err := r.db.WithContext(ctx).Create(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

// ListAddresses returns the user's addresses, newest first.
func (r *Repository) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.ShippingAddress, error) {
	var rows []models.ShippingAddress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// FindAddress loads one of the user's addresses by id. The user scope keeps
// one account from reading another's addresses.
func (r *Repository) FindAddress(ctx context.Context, userID, id uuid.UUID) (*models.ShippingAddress, error) {
	var address models.ShippingAddress
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&address).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

// SaveAddress persists changes to an existing address.
func (r *Repository) SaveAddress(ctx context.Context, address *models.ShippingAddress) (*models.ShippingAddress, error) {
	if err := r.db.WithContext(ctx).Save(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

// DeleteAddress removes one of the user's addresses. Orders keep their own
// frozen copy, so the delete is a hard delete.
func (r *Repository) DeleteAddress(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.ShippingAddress{})
	return result.RowsAffected, result.Error
}
