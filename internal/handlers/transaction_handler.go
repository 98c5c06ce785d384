package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/pagination"
	"moneta/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
type CreateTransactionRequest struct {
	Type   string   `json:"type" binding:"required,min=1,max=100"`
	Amount *float64 `json:"amount" binding:"required,decimal2"`
}

// UpdateTransactionRequest represents a partial transaction update. Only the
// fields present in the payload are applied.
type UpdateTransactionRequest struct {
	Type   *string  `json:"type" binding:"omitempty,min=1,max=100"`
	Amount *float64 `json:"amount" binding:"omitempty,decimal2"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Create a new transaction owned by the given user
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       user_id path int true "Owner user ID"
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} map[string]interface{} "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Owner not found"
// @Failure     409 {object} ErrorResponse "Type already in use for this user"
// @Router      /{user_id}/transactions/create [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(userID, req.Type, *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransaction handles fetching a single transaction
// @Summary     Get a transaction
// @Description Get a transaction scoped to its owning user
// @Tags        transactions
// @Produce     json
// @Param       user_id path int true "Owner user ID"
// @Param       transaction_id path int true "Transaction ID"
// @Success     200 {object} map[string]interface{} "Transaction"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /{user_id}/transactions/{transaction_id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c, "transaction_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransaction(transactionID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// ListTransactions handles listing a user's transactions
// @Summary     List transactions
// @Description List the user's transactions, newest first, paginated
// @Tags        transactions
// @Produce     json
// @Param       user_id path int true "Owner user ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Page of transactions"
// @Failure     404 {object} ErrorResponse "Owner not found"
// @Router      /{user_id}/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.transactionService.ListTransactions(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PartialUpdateTransaction handles a partial transaction update
// @Summary     Partially update a transaction
// @Description Apply only the supplied fields and refresh the update timestamp
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       user_id path int true "Owner user ID"
// @Param       transaction_id path int true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated transaction"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /{user_id}/transactions/{transaction_id}/partial_update [patch]
func (h *TransactionHandler) PartialUpdateTransaction(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c, "transaction_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.PartialUpdateTransaction(transactionID, userID, services.TransactionUpdate{
		Type:   req.Type,
		Amount: req.Amount,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "The transaction updated successfully!",
		"transaction": transaction,
	})
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete a transaction
// @Description Delete a transaction scoped to its owning user
// @Tags        transactions
// @Param       user_id path int true "Owner user ID"
// @Param       transaction_id path int true "Transaction ID"
// @Success     204 "Transaction deleted"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /{user_id}/transactions/{transaction_id}/delete [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c, "transaction_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(transactionID, userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
