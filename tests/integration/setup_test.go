package integration

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"moneta/internal/handlers"
	"moneta/internal/logger"
	"moneta/internal/middleware"
	"moneta/internal/models"
	"moneta/internal/services"
	"moneta/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// appTemplates stands in for the on-disk template files so the stack can run
// from the test working directory.
const appTemplates = `
{{ define "register.html" }}<form action="/admin/admin-register" method="post">register</form>{{ end }}
{{ define "login.html" }}<form action="/admin/admin-login" method="post">login</form>{{ end }}
{{ define "admin_panel.html" }}<p>{{ .data.message }}</p><p>{{ .username }}</p>{{ end }}
`

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Transaction{},
		&models.AdminToken{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db, userService)
	adminService := services.NewAdminService(db)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	adminHandler := handlers.NewAdminHandler(adminService, false)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.SetHTMLTemplate(template.Must(template.New("").Parse(appTemplates)))

	admin := router.Group("/admin")
	admin.GET("", adminHandler.ShowHome)
	admin.POST("/admin-register", adminHandler.Register)
	admin.POST("/admin-login", adminHandler.Login)

	guarded := admin.Group("/")
	guarded.Use(middleware.AdminAuth(adminService))
	guarded.POST("/logout", adminHandler.Logout)
	guarded.GET("/admin_panel", adminHandler.Panel)

	router.POST("/", userHandler.CreateUser)
	router.GET("/", userHandler.ListUsers)
	router.GET("/:user_id", userHandler.GetUser)
	router.PUT("/:user_id/update", userHandler.UpdateUser)
	router.DELETE("/:user_id/delete", userHandler.DeleteUser)

	router.POST("/:user_id/transactions/create", transactionHandler.CreateTransaction)
	router.GET("/:user_id/transactions", transactionHandler.ListTransactions)
	router.GET("/:user_id/transactions/:transaction_id", transactionHandler.GetTransaction)
	router.PATCH("/:user_id/transactions/:transaction_id/partial_update", transactionHandler.PartialUpdateTransaction)
	router.DELETE("/:user_id/transactions/:transaction_id/delete", transactionHandler.DeleteTransaction)

	return &testApp{DB: db, Router: router}
}

// request makes a JSON request to the test router and returns the recorder.
// An optional session cookie can be attached.
func (app *testApp) request(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// formRequest makes a form-encoded request, as the login form does.
func (app *testApp) formRequest(method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// sessionCookie extracts the admin session cookie from a response.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.TokenCookie {
			return cookie
		}
	}
	return nil
}

// createUser registers an ordinary user and returns its ID.
func (app *testApp) createUser(t *testing.T, username string) float64 {
	t.Helper()
	rec := app.request("POST", "/", fmt.Sprintf(`{"username":%q}`, username))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user failed: %d %s", rec.Code, rec.Body.String())
	}
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	return user["id"].(float64)
}

// registerAdmin registers an admin account.
func (app *testApp) registerAdmin(t *testing.T, username, password string) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/admin/admin-register", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register admin failed: %d %s", rec.Code, rec.Body.String())
	}
}

// loginAdmin logs in through the form endpoint and returns the session cookie.
func (app *testApp) loginAdmin(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	rec := app.formRequest("POST", "/admin/admin-login",
		url.Values{"username": {username}, "password": {password}})
	if rec.Code != http.StatusFound {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("login did not set a session cookie")
	}
	return cookie
}

// createTransaction creates a transaction for the given user and returns its ID.
func (app *testApp) createTransaction(t *testing.T, userID float64, txType string, amount float64) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"type":%q,"amount":%v}`, txType, amount)
	rec := app.request("POST", fmt.Sprintf("/%.0f/transactions/create", userID), body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
	return tx["id"].(float64)
}
