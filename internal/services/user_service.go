package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new ordinary user. The username must be free across
// all accounts regardless of role; the unique index is the authoritative
// guard when two registrations race past the pre-check.
func (s *userService) CreateUser(username string) (*models.User, error) {
	if username == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username is required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrUsernameTaken
	}

	user := &models.User{
		Username: username,
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetUserByID retrieves a user-role account without its transactions.
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ? AND role = ?", id, models.RoleUser).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserWithTransactions retrieves a user-role account with its transactions
// eager-loaded.
func (s *userService) GetUserWithTransactions(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Transactions").
		Where("id = ? AND role = ?", id, models.RoleUser).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user-role account by username.
func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ? AND role = ?", username, models.RoleUser).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// ListUsers returns a page of user-role accounts, each with its transactions
// eager-loaded.
func (s *userService) ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	page.Defaults()

	base := s.db.Model(&models.User{}).Where("role = ?", models.RoleUser)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var users []models.User
	err := s.db.Preload("Transactions").
		Where("role = ?", models.RoleUser).
		Order("id").
		Scopes(page.Scope()).
		Find(&users).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(users, page.Page, page.PageSize, totalItems)
	return &resp, nil
}

// UpdateUser overwrites the user's updatable fields and refreshes the update
// timestamp. Absent fields are not preserved: this is a full update, unlike
// the partial transaction update.
func (s *userService) UpdateUser(id uint, username string) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	user.Username = username
	if err := s.db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// DeleteUser removes a user-role account. Deletion is blocked while the
// account still owns transactions; the foreign key constraint is the backstop
// if a transaction is created concurrently with the check.
func (s *userService) DeleteUser(id uint) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrUserHasTransactions
	}

	if err := s.db.Delete(user).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return apperrors.ErrUserHasTransactions
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
