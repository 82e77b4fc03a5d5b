package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopyard/shopyard-backend/pkg/db/models"
	"github.com/shopyard/shopyard-backend/pkg/enums"
)

// OrderItemDTO is one purchased line with its frozen product projection.
type OrderItemDTO struct {
	ID       uuid.UUID       `json:"id"`
	Product  OrderProduct    `json:"product"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// OrderProduct is the product projection embedded in order payloads.
type OrderProduct struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	PriceCurrent decimal.Decimal `json:"price_current"`
	Image1       string          `json:"image_1"`
}

// OrderShipping is the address snapshot frozen at checkout.
type OrderShipping struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	City     *string `json:"city,omitempty"`
	Country  *string `json:"country,omitempty"`
	Zipcode  *string `json:"zipcode,omitempty"`
}

// OrderDTO is the transport shape for a placed order.
type OrderDTO struct {
	ID             uuid.UUID            `json:"id"`
	TxRef          string               `json:"tx_ref"`
	DeliveryStatus enums.DeliveryStatus `json:"delivery_status"`
	PaymentStatus  enums.PaymentStatus  `json:"payment_status"`
	DateDelivered  *time.Time           `json:"date_delivered,omitempty"`
	Shipping       OrderShipping        `json:"shipping"`
	Items          []OrderItemDTO       `json:"items"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	Total          decimal.Decimal      `json:"total"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// FromModel maps an order with preloaded items and products to its DTO.
func FromModel(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:             order.ID,
		TxRef:          order.TxRef,
		DeliveryStatus: order.DeliveryStatus,
		PaymentStatus:  order.PaymentStatus,
		DateDelivered:  order.DateDelivered,
		Shipping: OrderShipping{
			FullName: order.FullName,
			Email:    order.Email,
			Phone:    order.Phone,
			Address:  order.Address,
			City:     order.City,
			Country:  order.Country,
			Zipcode:  order.Zipcode,
		},
		Items:     make([]OrderItemDTO, 0, len(order.Items)),
		Subtotal:  order.Subtotal(),
		Total:     order.Total(),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
	for i := range order.Items {
		item := &order.Items[i]
		itemDTO := OrderItemDTO{
			ID:       item.ID,
			Quantity: item.Quantity,
			Total:    item.Total(),
		}
		if item.Product != nil {
			itemDTO.Product = OrderProduct{
				ID:           item.Product.ID,
				Name:         item.Product.Name,
				Slug:         item.Product.Slug,
				PriceCurrent: item.Product.PriceCurrent,
				Image1:       item.Product.Image1,
			}
		}
		dto.Items = append(dto.Items, itemDTO)
	}
	return dto
}

// FromModels maps a slice of orders.
func FromModels(items []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
