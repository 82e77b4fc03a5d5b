package checkout

import "github.com/google/uuid"

// CheckoutRequest names the saved shipping address the order ships to.
type CheckoutRequest struct {
	ShippingID *uuid.UUID `json:"shipping_id" validate:"required"`
}
