package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/middleware"
	"moneta/internal/services"
)

// AdminHandler handles admin registration, the cookie-token login/logout flow,
// and the admin panel view.
type AdminHandler struct {
	adminService services.AdminServicer
	cookieSecure bool
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService services.AdminServicer, cookieSecure bool) *AdminHandler {
	return &AdminHandler{adminService: adminService, cookieSecure: cookieSecure}
}

// RegisterAdminRequest represents the admin registration payload.
type RegisterAdminRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=8,max=1024"`
}

// LoginAdminRequest represents the login form fields.
type LoginAdminRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// ShowHome renders the admin entry view: the registration form when no admin
// exists yet, the login form otherwise. The check only steers the view; it is
// not a security control.
func (h *AdminHandler) ShowHome(c *gin.Context) {
	exists, err := h.adminService.AdminExists()
	if err != nil {
		respondWithError(c, err)
		return
	}

	view := "register.html"
	if exists {
		view = "login.html"
	}
	c.HTML(http.StatusOK, view, gin.H{"admin_exists": exists})
}

// Register handles admin registration
// @Summary     Register an admin
// @Description Register a new admin with a policy-checked password
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       request body RegisterAdminRequest true "Admin registration data"
// @Success     201 {object} map[string]interface{} "Admin registered"
// @Failure     409 {object} ErrorResponse "Admin already exists"
// @Failure     422 {object} ErrorResponse "Weak password"
// @Router      /admin/admin-register [post]
func (h *AdminHandler) Register(c *gin.Context) {
	var req RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	admin, err := h.adminService.RegisterAdmin(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin registered successfully",
		"admin":   admin,
	})
}

// Login handles the admin login form
// @Summary     Login an admin
// @Description Verify credentials, set the session cookie, and redirect to the admin panel
// @Tags        admin
// @Accept      x-www-form-urlencoded
// @Param       username formData string true "Username"
// @Param       password formData string true "Password"
// @Success     302 "Redirect to admin panel with session cookie"
// @Failure     403 {object} ErrorResponse "Invalid credentials"
// @Router      /admin/admin-login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginAdminRequest
	if err := c.ShouldBind(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	token, err := h.adminService.Login(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.SetCookie(middleware.TokenCookie, token, 0, "/", "", h.cookieSecure, true)
	c.Redirect(http.StatusFound, "/admin/admin_panel")
}

// Logout handles admin logout
// @Summary     Logout an admin
// @Description Revoke the session token, clear the cookie, and redirect to the admin views
// @Tags        admin
// @Success     302 "Redirect with cookie cleared"
// @Failure     401 {object} ErrorResponse "Missing or unknown token"
// @Router      /admin/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	// The auth guard has already resolved this cookie.
	token, err := c.Cookie(middleware.TokenCookie)
	if err != nil {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.adminService.Logout(token); err != nil {
		respondWithError(c, err)
		return
	}

	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.cookieSecure, true)
	c.Redirect(http.StatusFound, "/admin")
}

// Panel renders the admin panel view for the authenticated admin.
// @Summary     Admin panel
// @Description Render the admin panel for the authenticated admin
// @Tags        admin
// @Produce     html
// @Success     200 "Admin panel"
// @Failure     401 {object} ErrorResponse "Missing or invalid token"
// @Router      /admin/admin_panel [get]
func (h *AdminHandler) Panel(c *gin.Context) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	c.HTML(http.StatusOK, "admin_panel.html", gin.H{
		"data":     gin.H{"message": "Welcome to the Admin Panel!"},
		"username": admin.Username,
	})
}
