package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db          *gorm.DB
	userService UserServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, userService UserServicer) TransactionServicer {
	return &transactionService{
		db:          db,
		userService: userService,
	}
}

// CreateTransaction creates a transaction owned by the given user-role
// account. The (owner, type) pair must be free.
func (s *transactionService) CreateTransaction(ownerID uint, txType string, amount float64) (*models.Transaction, error) {
	if txType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction type is required")
	}

	owner, err := s.userService.GetUserByID(ownerID)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		Type:   txType,
		Amount: amount,
		UserID: owner.ID,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, apperrors.ErrTransactionTypeInUse
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetTransaction retrieves a transaction scoped to both its id and its
// claimed owner.
func (s *transactionService) GetTransaction(id, ownerID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.Where("id = ? AND user_id = ?", id, ownerID).First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// ListTransactions returns a page of the owner's transactions, newest first.
func (s *transactionService) ListTransactions(ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if _, err := s.userService.GetUserByID(ownerID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", ownerID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	err := s.db.Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Scopes(page.Scope()).
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &resp, nil
}

// PartialUpdateTransaction applies only the fields present in the update.
// Unset fields are left untouched. The update timestamp is refreshed even when
// the payload is empty.
func (s *transactionService) PartialUpdateTransaction(id, ownerID uint, update TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.GetTransaction(id, ownerID)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if update.Type != nil {
		changes["type"] = *update.Type
	}
	if update.Amount != nil {
		changes["amount"] = *update.Amount
	}
	if len(changes) == 0 {
		changes["updated_at"] = time.Now()
	}

	if err := s.db.Model(transaction).Updates(changes).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrTransactionTypeInUse
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// DeleteTransaction removes a transaction scoped to its claimed owner.
func (s *transactionService) DeleteTransaction(id, ownerID uint) error {
	transaction, err := s.GetTransaction(id, ownerID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
