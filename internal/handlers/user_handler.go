package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/pagination"
	"moneta/internal/services"
)

// UserHandler handles user-related requests.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents the registration request payload.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
}

// UpdateUserRequest represents the user update payload. Every field is
// applied: this is a full overwrite, not a partial update.
type UpdateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
}

// CreateUser handles user registration
// @Summary     Register a user
// @Description Register a new ordinary user with a unique username
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body CreateUserRequest true "User registration data"
// @Success     201 {object} map[string]interface{} "User created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Username taken"
// @Router      / [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.CreateUser(req.Username)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// ListUsers handles listing all users
// @Summary     List users
// @Description List all users with their transactions, paginated
// @Tags        users
// @Produce     json
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Page of users"
// @Failure     404 {object} ErrorResponse "No users exist"
// @Router      / [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.userService.ListUsers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if resp.TotalItems == 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrUserNotFound, "Users not found"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetUser handles fetching a single user with transactions
// @Summary     Get a user
// @Description Get a single user together with their transactions
// @Tags        users
// @Produce     json
// @Param       user_id path int true "User ID"
// @Success     200 {object} map[string]interface{} "User"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /{user_id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserWithTransactions(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateUser handles updating a user
// @Summary     Update a user
// @Description Overwrite the user's fields and refresh the update timestamp
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       request body UpdateUserRequest true "Updated user data"
// @Success     200 {object} map[string]interface{} "Updated user"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /{user_id}/update [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.UpdateUser(userID, req.Username)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser handles deleting a user
// @Summary     Delete a user
// @Description Delete a user; forbidden while the user still owns transactions
// @Tags        users
// @Param       user_id path int true "User ID"
// @Success     204 "User deleted"
// @Failure     403 {object} ErrorResponse "User has transactions"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /{user_id}/delete [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
