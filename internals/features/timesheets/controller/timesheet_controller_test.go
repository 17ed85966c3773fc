package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	timesheetModel "staffhub_backend/internals/features/timesheets/model"
	helper "staffhub_backend/internals/helpers"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTimesheetApp(t *testing.T, userID uuid.UUID) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&timesheetModel.TimesheetModel{}))
	t.Cleanup(func() { db.Exec("DELETE FROM timesheets") })

	ctrl := NewTimesheetController(db)

	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, userID)
		c.Locals(helper.LocUserRole, "emp")
		return c.Next()
	})
	app.Post("/users/time_sheet/create", ctrl.Create)

	return app, db
}

func submitDay(t *testing.T, app *fiber.App, body fiber.Map) (*http.Response, envelope) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/users/time_sheet/create", &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	_ = json.Unmarshal(raw, &env)
	return resp, env
}

type dayRecordData struct {
	TimesheetID string  `json:"timesheetId"`
	HoursWorked float64 `json:"hoursWorked"`
}

func TestCreateTimesheet(t *testing.T) {
	userID := uuid.New()
	app, db := newTimesheetApp(t, userID)

	resp, env := submitDay(t, app, fiber.Map{
		"date":        "2025-02-10",
		"hoursWorked": 7.5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)

	var data dayRecordData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.TimesheetID)
	assert.Equal(t, 7.5, data.HoursWorked)

	var count int64
	require.NoError(t, db.Model(&timesheetModel.TimesheetModel{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResubmitSameDayKeepsRowIdentity(t *testing.T) {
	userID := uuid.New()
	app, db := newTimesheetApp(t, userID)

	_, first := submitDay(t, app, fiber.Map{
		"date":        "2025-02-10",
		"hoursWorked": 4.0,
	})
	var firstData dayRecordData
	require.NoError(t, json.Unmarshal(first.Data, &firstData))

	resp, second := submitDay(t, app, fiber.Map{
		"date":        "2025-02-10",
		"hoursWorked": 8.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var secondData dayRecordData
	require.NoError(t, json.Unmarshal(second.Data, &secondData))

	// overwrite, not duplicate: one row, same ID, new hours
	assert.Equal(t, firstData.TimesheetID, secondData.TimesheetID)
	assert.Equal(t, 8.0, secondData.HoursWorked)

	var rows []timesheetModel.TimesheetModel
	require.NoError(t, db.Where("user_id = ?", userID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, firstData.TimesheetID, rows[0].ID.String())
	assert.Equal(t, 8.0, rows[0].HoursWorked)
}
