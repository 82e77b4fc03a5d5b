package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog listing. Products are soft-deleted only; the
// seller reference survives seller removal as NULL.
type Product struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID     *uuid.UUID       `gorm:"column:seller_id;type:uuid"`
	Seller       *Seller          `gorm:"foreignKey:SellerID"`
	CategoryID   uuid.UUID        `gorm:"column:category_id;type:uuid;not null"`
	Category     *Category        `gorm:"foreignKey:CategoryID"`
	Name         string           `gorm:"column:name;not null"`
	Slug         string           `gorm:"column:slug;not null;uniqueIndex"`
	Description  string           `gorm:"column:description;not null"`
	PriceOld     *decimal.Decimal `gorm:"column:price_old;type:numeric(10,2)"`
	PriceCurrent decimal.Decimal  `gorm:"column:price_current;type:numeric(10,2);not null"`
	InStock      int              `gorm:"column:in_stock;not null;default:5"`
	Image1       string           `gorm:"column:image1;not null"`
	Image2       *string          `gorm:"column:image2"`
	Image3       *string          `gorm:"column:image3"`
	IsDeleted    bool             `gorm:"column:is_deleted;not null;default:false"`
	DeletedAt    *time.Time       `gorm:"column:deleted_at"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
