package models

import "time"

// Role distinguishes ordinary users from admins.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered identity, either an ordinary user or an admin.
// The username is unique across all accounts regardless of role. Only admin
// accounts carry a password hash; ordinary users register with a username only.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:32;uniqueIndex;not null" json:"username"`
	HashedPassword string    `gorm:"size:1024" json:"-"`
	Role           Role      `gorm:"size:16;not null;default:user" json:"role"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	RegisteredAt   time.Time `gorm:"autoCreateTime" json:"registered_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
	Token        *AdminToken   `gorm:"foreignKey:UserID" json:"-"`
}
