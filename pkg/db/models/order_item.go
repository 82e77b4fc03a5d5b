package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a quantity of a product either in a cart or in an order.
// OrderID NULL means the row is a cart line; checkout flips it non-NULL in
// bulk and the transition is never reversed. A partial unique index on
// (user_id, product_id) WHERE order_id IS NULL keeps the cart upsert safe.
type OrderItem struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null"`
	OrderID   *uuid.UUID `gorm:"column:order_id;type:uuid"`
	ProductID uuid.UUID  `gorm:"column:product_id;type:uuid;not null"`
	Product   *Product   `gorm:"foreignKey:ProductID"`
	Quantity  int        `gorm:"column:quantity;not null;default:1"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// Total returns price_current x quantity. The product must be preloaded.
func (i *OrderItem) Total() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.PriceCurrent.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
