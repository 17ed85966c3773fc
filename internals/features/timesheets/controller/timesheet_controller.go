package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	holidayModel "staffhub_backend/internals/features/holidays/model"
	leaveService "staffhub_backend/internals/features/leaves/service"
	timesheetDTO "staffhub_backend/internals/features/timesheets/dto"
	"staffhub_backend/internals/features/timesheets/grid"
	timesheetModel "staffhub_backend/internals/features/timesheets/model"
	helper "staffhub_backend/internals/helpers"
)

type TimesheetController struct {
	DB       *gorm.DB
	validate *validator.Validate

	// now is swappable so grid classification is testable at a fixed date
	now func() time.Time
}

func NewTimesheetController(db *gorm.DB) *TimesheetController {
	return &TimesheetController{DB: db, validate: validator.New(), now: func() time.Time { return time.Now().UTC() }}
}

func parseRangeDate(raw, field string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, field+" is required")
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, field+" must be YYYY-MM-DD or RFC3339")
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

/* ===================== CREATE / UPSERT ===================== */
// POST /users/time_sheet/create?userId
// One row per (user, day); re-submitting a day replaces it.
func (ctrl *TimesheetController) Create(c *fiber.Ctx) error {
	targetID, err := helper.ResolveTargetUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req timesheetDTO.CreateTimesheetRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	entry, err := req.ToModel(targetID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	err = ctrl.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"hours_worked", "work_completed", "work", "is_half_day", "updated_at",
			}),
		}).
		Create(entry).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save timesheet")
	}

	// On the conflict path entry.ID is a freshly generated UUID while the
	// row keeps its original one. Re-read so the response carries the ID
	// that actually exists.
	var saved timesheetModel.TimesheetModel
	err = ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ? AND date = ?", targetID, entry.Date).
		First(&saved).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load saved timesheet")
	}

	return helper.JsonSuccessWithCode(c, fiber.StatusCreated, "Timesheet saved",
		timesheetDTO.ToDayRecord(&saved, nil))
}

/* ===================== RANGE ===================== */
// GET /users/time_sheet/get_data_range?userId&startDate&endDate
func (ctrl *TimesheetController) GetDataRange(c *fiber.Ctx) error {
	targetID, err := helper.ResolveTargetUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	start, err := parseRangeDate(c.Query("startDate"), "startDate")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	end, err := parseRangeDate(c.Query("endDate"), "endDate")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if end.Before(start) {
		return helper.JsonError(c, fiber.StatusBadRequest, "endDate must not be before startDate")
	}

	var rows []timesheetModel.TimesheetModel
	err = ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ? AND date BETWEEN ? AND ?", targetID, start, end).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	leaveDates, err := leaveService.ApprovedLeaveDates(ctrl.DB.WithContext(c.UserContext()), targetID, start, end)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	records := make([]grid.DayRecord, 0, len(rows))
	for i := range rows {
		records = append(records, timesheetDTO.ToDayRecord(&rows[i], leaveDates))
	}
	return helper.JsonSuccess(c, "OK", records)
}

/* ===================== MONTH GRID ===================== */
// GET /users/time_sheet/month_grid?userId&year&month
// Server-side rendering of the timesheet month view: Sunday-aligned cells,
// submitted records overlaid, leave and holidays applied, statuses derived
// fresh on every call.
func (ctrl *TimesheetController) MonthGrid(c *fiber.Ctx) error {
	targetID, err := helper.ResolveTargetUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	year, err := strconv.Atoi(strings.TrimSpace(c.Query("year")))
	if err != nil || year < 1970 || year > 9999 {
		return helper.JsonError(c, fiber.StatusBadRequest, "year must be a four digit year")
	}
	month, err := strconv.Atoi(strings.TrimSpace(c.Query("month")))
	if err != nil || month < 1 || month > 12 {
		return helper.JsonError(c, fiber.StatusBadRequest, "month must be 1-12")
	}

	cells := grid.BuildMonthGrid(year, month)
	gridStart := cells[0].Date()
	gridEnd := cells[len(cells)-1].Date()

	var rows []timesheetModel.TimesheetModel
	err = ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ? AND date BETWEEN ? AND ?", targetID, gridStart, gridEnd).
		Find(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	leaveSet, err := leaveService.ApprovedLeaveDates(ctrl.DB.WithContext(c.UserContext()), targetID, gridStart, gridEnd)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var holidays []holidayModel.HolidayModel
	err = ctrl.DB.WithContext(c.UserContext()).
		Where("date BETWEEN ? AND ?", gridStart, gridEnd).
		Find(&holidays).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	holidayDates := make([]string, 0, len(holidays))
	for i := range holidays {
		holidayDates = append(holidayDates, holidays[i].ISODate())
	}

	records := make([]grid.DayRecord, 0, len(rows))
	for i := range rows {
		records = append(records, timesheetDTO.ToDayRecord(&rows[i], leaveSet))
	}

	leaveDates := make([]string, 0, len(leaveSet))
	for iso := range leaveSet {
		leaveDates = append(leaveDates, iso)
	}

	enriched := grid.EnrichWithRecords(cells, records)
	enriched = grid.MarkLeaveDates(enriched, leaveDates)
	statuses := grid.ClassifyGrid(enriched, grid.HolidaySet(holidayDates), ctrl.now())
	totals := grid.ComputeWeeklyTotals(enriched)

	var monthTotal float64
	for _, w := range totals {
		monthTotal += w
	}

	return helper.JsonSuccess(c, "OK", timesheetDTO.MonthGridResponse{
		Year:         year,
		Month:        month,
		Cells:        enriched,
		Statuses:     statuses,
		WeeklyTotals: totals,
		MonthTotal:   monthTotal,
	})
}
