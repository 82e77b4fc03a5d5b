package models

import (
	"time"

	"github.com/google/uuid"
)

// Seller is the storefront attached to a SELLER account.
type Seller struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	User         *User     `gorm:"foreignKey:UserID"`
	BusinessName string    `gorm:"column:business_name;not null"`
	Slug         string    `gorm:"column:slug;not null;uniqueIndex"`
	Description  *string   `gorm:"column:description"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
