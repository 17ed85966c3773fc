package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	attendanceModel "staffhub_backend/internals/features/attendance/model"
	helper "staffhub_backend/internals/helpers"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newAttendanceApp(t *testing.T, userID uuid.UUID, role string, at time.Time) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&attendanceModel.AttendanceRecord{}))
	t.Cleanup(func() { db.Exec("DELETE FROM attendance_records") })

	ctrl := NewAttendanceController(db)
	ctrl.now = func() time.Time { return at }

	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	// stand-in for the auth middleware: inject verified claims
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, userID)
		c.Locals(helper.LocUserRole, role)
		return c.Next()
	})
	app.Post("/users/attendance/check_in", ctrl.CheckIn)
	app.Post("/users/attendance/check_out", ctrl.CheckOut)
	app.Get("/users/attendance/today", ctrl.Today)
	app.Get("/users/attendance/get_range", ctrl.GetRange)

	return app, db
}

func hit(t *testing.T, app *fiber.App, method, path string) (*http.Response, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	_ = json.Unmarshal(raw, &env)
	return resp, env
}

func TestCheckInOncePerDay(t *testing.T) {
	at := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	app, _ := newAttendanceApp(t, uuid.New(), "emp", at)

	resp, env := hit(t, app, http.MethodPost, "/users/attendance/check_in")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)

	// a second check-in on the same day is refused
	resp, env = hit(t, app, http.MethodPost, "/users/attendance/check_in")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestCheckOutComputesWorkedMinutes(t *testing.T) {
	userID := uuid.New()
	morning := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	app, db := newAttendanceApp(t, userID, "emp", morning)

	resp, _ := hit(t, app, http.MethodPost, "/users/attendance/check_in")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	evening := time.Date(2025, 2, 10, 17, 30, 0, 0, time.UTC)
	app2 := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	ctrl := NewAttendanceController(db)
	ctrl.now = func() time.Time { return evening }
	app2.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, userID)
		c.Locals(helper.LocUserRole, "emp")
		return c.Next()
	})
	app2.Post("/users/attendance/check_out", ctrl.CheckOut)

	resp, env := hit(t, app2, http.MethodPost, "/users/attendance/check_out")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		WorkedMinutes *int `json:"workedMinutes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotNil(t, data.WorkedMinutes)
	assert.Equal(t, 510, *data.WorkedMinutes)

	// double check-out is refused
	resp, _ = hit(t, app2, http.MethodPost, "/users/attendance/check_out")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	at := time.Date(2025, 2, 11, 17, 0, 0, 0, time.UTC)
	app, _ := newAttendanceApp(t, uuid.New(), "emp", at)

	resp, env := hit(t, app, http.MethodPost, "/users/attendance/check_out")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestTodayWithoutRecordIsNull(t *testing.T) {
	at := time.Date(2025, 2, 12, 8, 0, 0, 0, time.UTC)
	app, _ := newAttendanceApp(t, uuid.New(), "emp", at)

	resp, env := hit(t, app, http.MethodGet, "/users/attendance/today")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "null", string(env.Data))
}

func TestGetRangeValidation(t *testing.T) {
	at := time.Date(2025, 2, 12, 8, 0, 0, 0, time.UTC)
	app, _ := newAttendanceApp(t, uuid.New(), "emp", at)

	resp, _ := hit(t, app, http.MethodGet, "/users/attendance/get_range?startDate=2025-02-10")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = hit(t, app, http.MethodGet, "/users/attendance/get_range?startDate=2025-02-10&endDate=2025-02-01")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEmployeeCannotReadAnotherUsersRange(t *testing.T) {
	at := time.Date(2025, 2, 12, 8, 0, 0, 0, time.UTC)
	app, _ := newAttendanceApp(t, uuid.New(), "emp", at)

	other := uuid.New().String()
	resp, _ := hit(t, app, http.MethodGet,
		"/users/attendance/get_range?userId="+other+"&startDate=2025-02-01&endDate=2025-02-28")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
