package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shopyard/shopyard-backend/pkg/enums"
)

// User represents the canonical account entity. Rows are never hard-deleted;
// IsDeleted/DeletedAt implement the soft-delete lifecycle.
type User struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName    string            `gorm:"column:first_name;not null"`
	LastName     string            `gorm:"column:last_name;not null"`
	Email        string            `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string            `gorm:"column:password_hash;not null"`
	AvatarURL    *string           `gorm:"column:avatar_url"`
	AccountType  enums.AccountType `gorm:"column:account_type;type:text;not null;default:'BUYER'"`
	IsStaff      bool              `gorm:"column:is_staff;not null;default:false"`
	IsActive     bool              `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time        `gorm:"column:last_login_at"`
	IsDeleted    bool              `gorm:"column:is_deleted;not null;default:false"`
	DeletedAt    *time.Time        `gorm:"column:deleted_at"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// FullName joins the name parts the way order and review projections expect.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
