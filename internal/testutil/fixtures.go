package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"moneta/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user-role account with a unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithUsername creates a user-role account with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAdmin creates an admin-role account whose password is "Passw0rd!".
func CreateTestAdmin(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	admin := &models.User{
		Username:       username,
		HashedPassword: string(hash),
		Role:           models.RoleAdmin,
		IsActive:       true,
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("failed to create test admin: %v", err)
	}
	return admin
}

// CreateTestTransaction creates a transaction for the given owner with a
// unique type.
func CreateTestTransaction(t *testing.T, db *gorm.DB, ownerID uint, amount float64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionWithType(t, db, ownerID, fmt.Sprintf("type-%d", nextID()), amount)
}

// CreateTestTransactionWithType creates a transaction with the given type.
func CreateTestTransactionWithType(t *testing.T, db *gorm.DB, ownerID uint, txType string, amount float64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Type:   txType,
		Amount: amount,
		UserID: ownerID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestAdminToken persists a session token for the given admin.
func CreateTestAdminToken(t *testing.T, db *gorm.DB, adminID uint, token string) *models.AdminToken {
	t.Helper()

	adminToken := &models.AdminToken{UserID: adminID, Token: token}
	if err := db.Create(adminToken).Error; err != nil {
		t.Fatalf("failed to create test admin token: %v", err)
	}
	return adminToken
}
