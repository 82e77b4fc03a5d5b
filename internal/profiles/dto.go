package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopyard/shopyard-backend/pkg/db/models"
)

// ShippingAddressDTO is the transport shape for a saved delivery address.
type ShippingAddressDTO struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	City      *string   `json:"city,omitempty"`
	Country   *string   `json:"country,omitempty"`
	Zipcode   *string   `json:"zipcode,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertShippingAddressRequest carries the address fields for create and update.
type UpsertShippingAddressRequest struct {
	FullName string  `json:"full_name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	City     *string `json:"city,omitempty"`
	Country  *string `json:"country,omitempty"`
	Zipcode  *string `json:"zipcode,omitempty"`
}

// UpdateProfileRequest carries the editable account fields.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

func addressFromModel(a *models.ShippingAddress) *ShippingAddressDTO {
	if a == nil {
		return nil
	}
	return &ShippingAddressDTO{
		ID:        a.ID,
		FullName:  a.FullName,
		Email:     a.Email,
		Phone:     a.Phone,
		Address:   a.Address,
		City:      a.City,
		Country:   a.Country,
		Zipcode:   a.Zipcode,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func addressesFromModels(items []models.ShippingAddress) []ShippingAddressDTO {
	out := make([]ShippingAddressDTO, 0, len(items))
	for i := range items {
		out = append(out, *addressFromModel(&items[i]))
	}
	return out
}
