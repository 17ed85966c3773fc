package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceDTO "staffhub_backend/internals/features/attendance/dto"
	attendanceModel "staffhub_backend/internals/features/attendance/model"
	helper "staffhub_backend/internals/helpers"
)

type AttendanceController struct {
	DB *gorm.DB

	now func() time.Time
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db, now: func() time.Time { return time.Now().UTC() }}
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

/* ===================== CHECK IN ===================== */
// POST /users/attendance/check_in
func (ctrl *AttendanceController) CheckIn(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	now := ctrl.now()
	today := dayOf(now)

	var existing attendanceModel.AttendanceRecord
	err = ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ? AND date = ?", userID, today).
		First(&existing).Error
	if err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "You have already checked in today")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	record := attendanceModel.AttendanceRecord{
		UserID:  userID,
		Date:    today,
		CheckIn: now,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&record).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record check-in")
	}

	return helper.JsonSuccessWithCode(c, fiber.StatusCreated, "Checked in",
		attendanceDTO.ToAttendanceResponse(&record))
}

/* ===================== CHECK OUT ===================== */
// POST /users/attendance/check_out
func (ctrl *AttendanceController) CheckOut(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	now := ctrl.now()
	today := dayOf(now)

	var record attendanceModel.AttendanceRecord
	err = ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ? AND date = ?", userID, today).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "No check-in found for today")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !record.Open() {
		return helper.JsonError(c, fiber.StatusConflict, "You have already checked out today")
	}

	minutes := int(now.Sub(record.CheckIn).Minutes())
	updates := map[string]interface{}{
		"check_out":      now,
		"worked_minutes": minutes,
	}
	if err := ctrl.DB.Model(&record).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record check-out")
	}

	record.CheckOut = &now
	record.WorkedMinutes = &minutes
	return helper.JsonSuccess(c, "Checked out", attendanceDTO.ToAttendanceResponse(&record))
}

/* ===================== TODAY ===================== */
// GET /users/attendance/today?userId
func (ctrl *AttendanceController) Today(c *fiber.Ctx) error {
	targetID, err := helper.ResolveTargetUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var record attendanceModel.AttendanceRecord
	err = ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ? AND date = ?", targetID, dayOf(ctrl.now())).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// not an error: the dashboard shows a "not checked in" card
			return helper.JsonSuccess(c, "OK", nil)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return helper.JsonSuccess(c, "OK", attendanceDTO.ToAttendanceResponse(&record))
}

/* ===================== RANGE ===================== */
// GET /users/attendance/get_range?userId&startDate&endDate
func (ctrl *AttendanceController) GetRange(c *fiber.Ctx) error {
	targetID, err := helper.ResolveTargetUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	start, err := parseDateQuery(c.Query("startDate"), "startDate")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	end, err := parseDateQuery(c.Query("endDate"), "endDate")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if end.Before(start) {
		return helper.JsonError(c, fiber.StatusBadRequest, "endDate must not be before startDate")
	}

	var records []attendanceModel.AttendanceRecord
	err = ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ? AND date BETWEEN ? AND ?", targetID, start, end).
		Order("date ASC").
		Find(&records).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	out := make([]attendanceDTO.AttendanceResponse, 0, len(records))
	for i := range records {
		out = append(out, attendanceDTO.ToAttendanceResponse(&records[i]))
	}
	return helper.JsonSuccess(c, "OK", out)
}

func parseDateQuery(raw, field string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, field+" is required")
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, field+" must be YYYY-MM-DD")
	}
	return t, nil
}
