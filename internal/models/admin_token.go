package models

import "time"

// AdminToken is an opaque bearer credential for a logged-in admin. The row's
// presence is the logged-in state: login creates it, logout deletes it. Each
// admin holds at most one live token, enforced by the unique index on UserID.
type AdminToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"token"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
