package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is one user's rating and comment on a product. A partial unique
// index on (user_id, product_id) WHERE NOT is_deleted keeps at most one live
// review per pair even under concurrent writes.
type Review struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null"`
	User      *User      `gorm:"foreignKey:UserID"`
	ProductID uuid.UUID  `gorm:"column:product_id;type:uuid;not null"`
	Product   *Product   `gorm:"foreignKey:ProductID"`
	Rating    int        `gorm:"column:rating;not null"`
	Text      string     `gorm:"column:text;not null"`
	IsDeleted bool       `gorm:"column:is_deleted;not null;default:false"`
	DeletedAt *time.Time `gorm:"column:deleted_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
