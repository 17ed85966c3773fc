package routes

import (
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
	database "staffhub_backend/internals/databases"
	authService "staffhub_backend/internals/features/users/auth/service"
	userModel "staffhub_backend/internals/features/users/user/model"
	helper "staffhub_backend/internals/helpers"
)

// Mounts the full route tree the way main does, then walks it with real
// tokens for both roles. Guards must hold per route, not per prefix: an
// employee owns everything under /users except the admin endpoints.
func setupRoutedApp(t *testing.T) (*fiber.App, string, string) {
	t.Helper()
	configs.JWTSecret = "routing-test-secret"

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.AllModels()...))
	t.Cleanup(func() {
		db.Exec("DELETE FROM users")
		db.Exec("DELETE FROM attendance_records")
	})

	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	SetupRoutes(app, db)

	emp := &userModel.UserModel{
		FullName: "Plain Employee",
		Email:    "emp@example.com",
		Password: "irrelevant-hash",
		Role:     "emp",
		IsActive: true,
	}
	admin := &userModel.UserModel{
		FullName: "The Admin",
		Email:    "admin@example.com",
		Password: "irrelevant-hash",
		Role:     "admin",
		IsActive: true,
	}
	require.NoError(t, db.Create(emp).Error)
	require.NoError(t, db.Create(admin).Error)

	empToken, err := authService.IssueAccessToken(emp)
	require.NoError(t, err)
	adminToken, err := authService.IssueAccessToken(admin)
	require.NoError(t, err)

	return app, empToken, adminToken
}

func request(t *testing.T, app *fiber.App, method, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestEmployeeReachesOwnEndpoints(t *testing.T) {
	app, empToken, _ := setupRoutedApp(t)

	resp := request(t, app, http.MethodGet, "/users/get_user", empToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "get_user")

	resp = request(t, app, http.MethodPost, "/users/attendance/check_in", empToken)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "check_in")

	resp = request(t, app, http.MethodGet, "/users/leave/balance", empToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "leave balance")

	resp = request(t, app, http.MethodGet, "/users/time_sheet/month_grid?year=2025&month=2", empToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "month_grid")

	resp = request(t, app, http.MethodGet, "/holiday/get_holidays?startDate=2025-02-01&endDate=2025-02-28", empToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "get_holidays")

	resp = request(t, app, http.MethodGet, "/projects/get_all", empToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "projects get_all")
}

func TestEmployeeBlockedFromAdminEndpoints(t *testing.T) {
	app, empToken, _ := setupRoutedApp(t)

	adminPaths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users/get_all"},
		{http.MethodDelete, "/users/delete"},
		{http.MethodPost, "/users/register"},
		{http.MethodGet, "/users/leave/get_all"},
		{http.MethodPut, "/users/leave/approve"},
		{http.MethodPut, "/users/leave/reject"},
		{http.MethodPost, "/holiday/create"},
		{http.MethodPost, "/projects/create"},
		{http.MethodPost, "/projects/add_member"},
	}
	for _, p := range adminPaths {
		resp := request(t, app, p.method, p.path, empToken)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s %s", p.method, p.path)
	}
}

func TestAdminReachesAdminEndpoints(t *testing.T) {
	app, _, adminToken := setupRoutedApp(t)

	resp := request(t, app, http.MethodGet, "/users/get_all", adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "users get_all")

	resp = request(t, app, http.MethodGet, "/users/leave/get_all", adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "leave get_all")
}

func TestUnauthenticatedRejected(t *testing.T) {
	app, _, _ := setupRoutedApp(t)

	resp := request(t, app, http.MethodGet, "/users/get_user", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = request(t, app, http.MethodPost, "/users/attendance/check_in", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
