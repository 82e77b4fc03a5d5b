package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopyard/shopyard-backend/pkg/enums"
)

// Order is a placed purchase. The shipping fields are frozen copies of a
// ShippingAddress at checkout time; there is no live link back to it.
type Order struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID            `gorm:"column:user_id;type:uuid;not null"`
	User           *User                `gorm:"foreignKey:UserID"`
	TxRef          string               `gorm:"column:tx_ref;not null;uniqueIndex"`
	DeliveryStatus enums.DeliveryStatus `gorm:"column:delivery_status;type:text;not null;default:'PENDING'"`
	PaymentStatus  enums.PaymentStatus  `gorm:"column:payment_status;type:text;not null;default:'PENDING'"`
	DateDelivered  *time.Time           `gorm:"column:date_delivered"`

	FullName *string `gorm:"column:full_name"`
	Email    *string `gorm:"column:email"`
	Phone    *string `gorm:"column:phone"`
	Address  *string `gorm:"column:address"`
	City     *string `gorm:"column:city"`
	Country  *string `gorm:"column:country"`
	Zipcode  *string `gorm:"column:zipcode"`

	Items     []OrderItem `gorm:"foreignKey:OrderID"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

// Subtotal sums the loaded items. Items must be preloaded with their products.
func (o *Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Total())
	}
	return total
}

// Total equals the subtotal; shipping and taxes are not modeled.
func (o *Order) Total() decimal.Decimal {
	return o.Subtotal()
}
