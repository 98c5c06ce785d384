package services

import (
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// UserServicer defines the contract for user-related business logic. Method
// names state whether related rows are fetched: GetUserByID returns the bare
// account, GetUserWithTransactions eager-loads the owned transactions.
type UserServicer interface {
	CreateUser(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserWithTransactions(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	UpdateUser(id uint, username string) (*models.User, error)
	DeleteUser(id uint) error
}

// TransactionUpdate holds the fields of a partial transaction update. Nil
// fields are left untouched.
type TransactionUpdate struct {
	Type   *string
	Amount *float64
}

// TransactionServicer defines the contract for transaction-related business
// logic. Every lookup is scoped to the claimed owner, so a transaction can
// never be read or mutated through another user's id.
type TransactionServicer interface {
	CreateTransaction(ownerID uint, txType string, amount float64) (*models.Transaction, error)
	GetTransaction(id, ownerID uint) (*models.Transaction, error)
	ListTransactions(ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	PartialUpdateTransaction(id, ownerID uint, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(id, ownerID uint) error
}

// AdminServicer defines the contract for admin accounts and their session
// tokens.
type AdminServicer interface {
	RegisterAdmin(username, password string) (*models.User, error)
	GetAdminByUsername(username string) (*models.User, error)
	GetAdminByID(id uint) (*models.User, error)
	GetTokenByValue(token string) (*models.AdminToken, error)
	AdminExists() (bool, error)
	Login(username, password string) (string, error)
	Logout(token string) error
}
