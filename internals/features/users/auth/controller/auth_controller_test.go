package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"staffhub_backend/internals/configs"
	authModel "staffhub_backend/internals/features/users/auth/model"
	authService "staffhub_backend/internals/features/users/auth/service"
	userModel "staffhub_backend/internals/features/users/user/model"
	helper "staffhub_backend/internals/helpers"
	authMiddleware "staffhub_backend/internals/middlewares/auth"
)

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userModel.UserModel{}, &authModel.TokenBlacklist{}))

	t.Cleanup(func() {
		db.Exec("DELETE FROM users")
		db.Exec("DELETE FROM token_blacklist")
	})
	return db
}

func setupAuthApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	configs.JWTSecret = "test-secret"

	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	ctrl := NewAuthController(db)

	app.Post("/users/login", ctrl.Login)

	authed := app.Group("", authMiddleware.AuthMiddleware(db))
	authed.Post("/users/logout", ctrl.Logout)
	authed.Get("/users/me", ctrl.Me)

	return app
}

func seedUser(t *testing.T, db *gorm.DB, email, password, role string, active bool) *userModel.UserModel {
	t.Helper()
	hash, err := authService.HashPassword(password)
	require.NoError(t, err)

	u := &userModel.UserModel{
		FullName: "Test Person",
		Email:    email,
		Password: hash,
		Role:     role,
		IsActive: active,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}, headers map[string]string) (*http.Response, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	_ = json.Unmarshal(raw, &env)
	return resp, env
}

func TestLoginSuccess(t *testing.T) {
	db := setupTestDB(t)
	app := setupAuthApp(t, db)
	user := seedUser(t, db, "alice@example.com", "supersecret1", "emp", true)

	resp, env := postJSON(t, app, "/users/login", fiber.Map{
		"email":    "alice@example.com",
		"password": "supersecret1",
	}, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Data["token"])
	assert.Equal(t, user.ID.String(), env.Data["userId"])
	assert.Equal(t, "emp", env.Data["role"])
	assert.Equal(t, "/home", env.Data["home"])
}

func TestLoginAdminHomePath(t *testing.T) {
	db := setupTestDB(t)
	app := setupAuthApp(t, db)
	seedUser(t, db, "boss@example.com", "supersecret1", "admin", true)

	resp, env := postJSON(t, app, "/users/login", fiber.Map{
		"email":    "boss@example.com",
		"password": "supersecret1",
	}, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/admin/home", env.Data["home"])
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	app := setupAuthApp(t, db)
	seedUser(t, db, "alice@example.com", "supersecret1", "emp", true)

	resp, env := postJSON(t, app, "/users/login", fiber.Map{
		"email":    "alice@example.com",
		"password": "not-the-password",
	}, nil)

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Email or password is incorrect", env.Message)
}

func TestLoginUnknownEmailSameMessage(t *testing.T) {
	db := setupTestDB(t)
	app := setupAuthApp(t, db)

	resp, env := postJSON(t, app, "/users/login", fiber.Map{
		"email":    "nobody@example.com",
		"password": "whatever123",
	}, nil)

	// identical wording for unknown email and bad password
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Email or password is incorrect", env.Message)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	db := setupTestDB(t)
	app := setupAuthApp(t, db)
	seedUser(t, db, "gone@example.com", "supersecret1", "emp", false)

	resp, env := postJSON(t, app, "/users/login", fiber.Map{
		"email":    "gone@example.com",
		"password": "supersecret1",
	}, nil)

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	db := setupTestDB(t)
	app := setupAuthApp(t, db)
	seedUser(t, db, "alice@example.com", "supersecret1", "emp", true)

	_, loginEnv := postJSON(t, app, "/users/login", fiber.Map{
		"email":    "alice@example.com",
		"password": "supersecret1",
	}, nil)
	token, _ := loginEnv.Data["token"].(string)
	require.NotEmpty(t, token)
	auth := map[string]string{"Authorization": "Bearer " + token}

	// token works before logout
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := postJSON(t, app, "/users/logout", nil, auth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	// the revoked token is rejected at the door on a repeat logout
	resp, env = postJSON(t, app, "/users/logout", nil, auth)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)

	// blacklisted token no longer authenticates
	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
