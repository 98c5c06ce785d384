package models

import "time"

// Transaction represents a financial transaction owned by a user-role account.
// The type is unique per owning user, so each user can independently record
// "salary", "rent" and so on without colliding with other users.
type Transaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"size:100;not null;uniqueIndex:idx_transactions_user_type" json:"type"`
	Amount    float64   `gorm:"type:decimal(10,2);not null;default:0" json:"amount"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_transactions_user_type" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
