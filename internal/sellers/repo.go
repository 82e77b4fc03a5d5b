package sellers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopyard/shopyard-backend/pkg/db/models"
)

// Repository exposes seller persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a sellers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a seller profile and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateSellerDTO) (*models.Seller, error) {
	seller := &models.Seller{
		UserID:       dto.UserID,
		BusinessName: dto.BusinessName,
		Slug:         dto.Slug,
		Description:  dto.Description,
	}
	if err := r.db.WithContext(ctx).Create(seller).Error; err != nil {
		return nil, err
	}
	return seller, nil
}

// FindByID loads a seller by UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.WithContext(ctx).First(&seller, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

// FindByUserID loads the seller profile owned by the given user.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.WithContext(ctx).First(&seller, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

// FindBySlug loads a seller by their public slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.WithContext(ctx).First(&seller, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

// List returns all sellers ordered by business name.
func (r *Repository) List(ctx context.Context) ([]models.Seller, error) {
	var sellers []models.Seller
	if err := r.db.WithContext(ctx).
		Order("business_name ASC").
		Find(&sellers).Error; err != nil {
		return nil, err
	}
	return sellers, nil
}
