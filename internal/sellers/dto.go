package sellers

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopyard/shopyard-backend/pkg/db/models"
)

// SellerDTO is the transport shape for a seller profile.
type SellerDTO struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	BusinessName string    `json:"business_name"`
	Slug         string    `json:"slug"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateSellerDTO holds the data required to persist a new seller profile.
type CreateSellerDTO struct {
	UserID       uuid.UUID
	BusinessName string
	Slug         string
	Description  *string
}

func FromModel(s *models.Seller) *SellerDTO {
	if s == nil {
		return nil
	}
	return &SellerDTO{
		ID:           s.ID,
		UserID:       s.UserID,
		BusinessName: s.BusinessName,
		Slug:         s.Slug,
		Description:  s.Description,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
