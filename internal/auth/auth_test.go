package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bayhomes-backend/internal/config"
	"bayhomes-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "0123456789abcdef0123456789abcdef"}
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRegisterAdminOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()

	app := fiber.New()
	app.Post("/register", RegisterAdminHandler(db, cfg))

	resp := postJSON(t, app, "/register", RegisterAdminRequest{
		Name: "Admin", Email: "admin@example.com", Password: "hunter22",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/register", RegisterAdminRequest{
		Name: "Second", Email: "second@example.com", Password: "hunter22",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestLoginAndTokenRoundTrip(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := models.User{
		ID:           uuid.NewString(),
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	app.Post("/login", LoginHandler(db, cfg))

	protected := app.Group("", JWTMiddleware(cfg))
	protected.Get("/me", MeHandler(db))

	resp := postJSON(t, app, "/login", LoginRequest{Email: "admin@example.com", Password: "hunter22"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var loginBody struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginBody))
	require.NotEmpty(t, loginBody.Token)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginBody.Token)
	meResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, meResp.StatusCode)

	var me models.User
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
	assert.Equal(t, user.ID, me.ID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := models.User{
		ID:           uuid.NewString(),
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	app.Post("/login", LoginHandler(db, cfg))

	resp := postJSON(t, app, "/login", LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRejectsPasswordlessUser(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()

	user := models.User{
		ID:    uuid.NewString(),
		Email: "agent@example.com",
		Role:  models.RoleMember,
	}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	app.Post("/login", LoginHandler(db, cfg))

	resp := postJSON(t, app, "/login", LoginRequest{Email: "agent@example.com", Password: ""})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareRejectsGarbage(t *testing.T) {
	cfg := testConfig()

	app := fiber.New()
	app.Get("/me", JWTMiddleware(cfg), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
