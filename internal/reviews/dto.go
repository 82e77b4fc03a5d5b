package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopyard/shopyard-backend/pkg/db/models"
)

// ReviewAuthor is the reviewer projection embedded in review payloads.
type ReviewAuthor struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

// ReviewDTO is the transport shape for a product review.
type ReviewDTO struct {
	ID        uuid.UUID     `json:"id"`
	ProductID uuid.UUID     `json:"product_id"`
	Rating    int           `json:"rating"`
	Text      string        `json:"text"`
	User      *ReviewAuthor `json:"user,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// UpsertReviewRequest is the payload for creating or updating a review.
type UpsertReviewRequest struct {
	ProductSlug string `json:"product" validate:"required"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Text        string `json:"text"`
}

func FromModel(r *models.Review) *ReviewDTO {
	if r == nil {
		return nil
	}
	dto := &ReviewDTO{
		ID:        r.ID,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.User != nil {
		dto.User = &ReviewAuthor{
			ID:        r.User.ID,
			FullName:  r.User.FullName(),
			AvatarURL: r.User.AvatarURL,
		}
	}
	return dto
}

func FromModels(items []models.Review) []ReviewDTO {
	out := make([]ReviewDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
