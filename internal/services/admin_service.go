package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/password"
	"moneta/internal/security"
)

// adminService handles admin accounts and their session tokens.
type adminService struct {
	db *gorm.DB
}

// NewAdminService creates a new AdminServicer.
func NewAdminService(db *gorm.DB) AdminServicer {
	return &adminService{db: db}
}

// RegisterAdmin creates an admin account: the password is checked against the
// complexity policy, hashed, and the account is inserted with role=admin in a
// single write so no intermediate user-role state is ever observable. The
// username must be free across all accounts; the unique index is the
// authoritative guard under races.
func (s *adminService) RegisterAdmin(username, pw string) (*models.User, error) {
	if err := password.Validate(pw); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrAdminExists
	}

	hashed, err := security.HashPassword(pw)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	admin := &models.User{
		Username:       username,
		HashedPassword: hashed,
		Role:           models.RoleAdmin,
		IsActive:       true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAdminExists
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return admin, nil
}

// GetAdminByUsername retrieves an admin-role account by username.
func (s *adminService) GetAdminByUsername(username string) (*models.User, error) {
	var admin models.User
	err := s.db.Where("username = ? AND role = ?", username, models.RoleAdmin).
		First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &admin, nil
}

// GetAdminByID retrieves an admin-role account by id.
func (s *adminService) GetAdminByID(id uint) (*models.User, error) {
	var admin models.User
	err := s.db.Where("id = ? AND role = ?", id, models.RoleAdmin).
		First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &admin, nil
}

// GetTokenByValue resolves a token string to its AdminToken row. A miss means
// the caller is not logged in.
func (s *adminService) GetTokenByValue(token string) (*models.AdminToken, error) {
	var adminToken models.AdminToken
	if err := s.db.Where("token = ?", token).First(&adminToken).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &adminToken, nil
}

// AdminExists reports whether any admin-role account exists. It only steers
// which admin view is presented; it is not a security control.
func (s *adminService) AdminExists() (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// Login verifies the admin's credentials and issues a fresh session token.
// An unknown username and a wrong password are indistinguishable to the
// caller. Logging in while a token is live rotates it: the old token row is
// deleted and replaced in one transaction, so the previous cookie value is
// dead the moment the new one is issued.
func (s *adminService) Login(username, pw string) (string, error) {
	admin, err := s.GetAdminByUsername(username)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}
	if !security.VerifyPassword(pw, admin.HashedPassword) {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := security.GenerateToken()
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", admin.ID).Delete(&models.AdminToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.AdminToken{UserID: admin.ID, Token: token}).Error
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return token, nil
}

// Logout revokes the session identified by the token value. Callers reach
// this through the auth guard, which has already resolved the token, so an
// unmatched value here is a client error rather than a no-op success.
func (s *adminService) Logout(token string) error {
	res := s.db.Where("token = ?", token).Delete(&models.AdminToken{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUnauthorized
	}
	return nil
}
