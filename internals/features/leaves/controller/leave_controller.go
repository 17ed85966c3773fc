package controller

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	holidayModel "staffhub_backend/internals/features/holidays/model"
	leaveDTO "staffhub_backend/internals/features/leaves/dto"
	leaveModel "staffhub_backend/internals/features/leaves/model"
	leaveService "staffhub_backend/internals/features/leaves/service"
	userModel "staffhub_backend/internals/features/users/user/model"
	helper "staffhub_backend/internals/helpers"
)

type LeaveController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewLeaveController(db *gorm.DB) *LeaveController {
	return &LeaveController{DB: db, validate: validator.New()}
}

func (ctrl *LeaveController) holidaySetBetween(c *fiber.Ctx, start, end time.Time) (map[string]struct{}, error) {
	var holidays []holidayModel.HolidayModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("date BETWEEN ? AND ?", start, end).
		Find(&holidays).Error
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(holidays))
	for i := range holidays {
		set[holidays[i].ISODate()] = struct{}{}
	}
	return set, nil
}

/* ===================== APPLY ===================== */
// POST /users/leave/apply?userId
func (ctrl *LeaveController) Apply(c *fiber.Ctx) error {
	targetID, err := helper.ResolveTargetUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req leaveDTO.ApplyLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	start, end, err := req.ParsePeriod()
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	holidays, err := ctrl.holidaySetBetween(c, start, end)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	validDates := leaveService.ComputeValidDates(start, end, holidays)
	if len(validDates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "The requested period contains no chargeable days")
	}

	// one pending/approved application per overlapping period
	var overlapping int64
	err = ctrl.DB.WithContext(c.UserContext()).
		Model(&leaveModel.LeaveApplication{}).
		Where("user_id = ? AND status <> ?", targetID, leaveModel.LeaveStatusRejected).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&overlapping).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if overlapping > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "A leave application already covers part of this period")
	}

	encoded, err := json.Marshal(validDates)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	app := leaveModel.LeaveApplication{
		UserID:     targetID,
		LeaveType:  req.LeaveType,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		ValidDates: datatypes.JSON(encoded),
		Status:     leaveModel.LeaveStatusPending,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&app).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to submit leave application")
	}

	return helper.JsonSuccessWithCode(c, fiber.StatusCreated, "Leave application submitted",
		leaveDTO.ToLeaveResponse(&app, ""))
}

/* ===================== VIEW (per user) ===================== */
// GET /users/leave/view_particular_leaves?status=approved&userId
func (ctrl *LeaveController) ViewParticularLeaves(c *fiber.Ctx) error {
	targetID, err := helper.ResolveTargetUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	q := ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ?", targetID).
		Order("start_date DESC")

	if status := strings.TrimSpace(strings.ToLower(c.Query("status"))); status != "" {
		switch status {
		case leaveModel.LeaveStatusPending, leaveModel.LeaveStatusApproved, leaveModel.LeaveStatusRejected:
			q = q.Where("status = ?", status)
		default:
			return helper.JsonError(c, fiber.StatusBadRequest, "status must be pending, approved or rejected")
		}
	}

	var apps []leaveModel.LeaveApplication
	if err := q.Find(&apps).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	out := make([]leaveDTO.LeaveResponse, 0, len(apps))
	for i := range apps {
		out = append(out, leaveDTO.ToLeaveResponse(&apps[i], ""))
	}
	return helper.JsonSuccess(c, "OK", out)
}

/* ===================== LIST ALL (admin) ===================== */
// GET /users/leave/get_all?status
func (ctrl *LeaveController) GetAll(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&leaveModel.LeaveApplication{})
	if status := strings.TrimSpace(strings.ToLower(c.Query("status"))); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var apps []leaveModel.LeaveApplication
	if err := q.Order("created_at DESC").Offset(paging.Offset).Limit(paging.Limit).Find(&apps).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	// resolve applicant names in one query
	ids := make([]uuid.UUID, 0, len(apps))
	for i := range apps {
		ids = append(ids, apps[i].UserID)
	}
	names := map[uuid.UUID]string{}
	if len(ids) > 0 {
		var users []userModel.UserModel
		if err := ctrl.DB.Select("id", "full_name").Where("id IN ?", ids).Find(&users).Error; err == nil {
			for i := range users {
				names[users[i].ID] = users[i].FullName
			}
		}
	}

	out := make([]leaveDTO.LeaveResponse, 0, len(apps))
	for i := range apps {
		out = append(out, leaveDTO.ToLeaveResponse(&apps[i], names[apps[i].UserID]))
	}

	return helper.JsonSuccess(c, "OK", fiber.Map{
		"leaves":     out,
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

/* ===================== DECIDE (admin) ===================== */

func (ctrl *LeaveController) decide(c *fiber.Ctx, newStatus string) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	leaveID, err := uuid.Parse(strings.TrimSpace(c.Query("leaveId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "leaveId is not a valid UUID")
	}

	var req leaveDTO.DecideLeaveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if err := ctrl.validate.Struct(req); err != nil {
			return helper.ValidationError(c, err)
		}
	}

	var app leaveModel.LeaveApplication
	if err := ctrl.DB.WithContext(c.UserContext()).First(&app, "id = ?", leaveID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Leave application not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if app.Decided() {
		return helper.JsonError(c, fiber.StatusConflict, "This application has already been decided")
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":        newStatus,
		"decided_by":    adminID,
		"decided_at":    now,
		"decision_note": req.Note,
	}
	if err := ctrl.DB.Model(&app).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update application")
	}

	app.Status = newStatus
	app.DecidedBy = &adminID
	app.DecidedAt = &now
	app.DecisionNote = req.Note
	return helper.JsonSuccess(c, "Leave "+newStatus, leaveDTO.ToLeaveResponse(&app, ""))
}

// PUT /users/leave/approve?leaveId
func (ctrl *LeaveController) Approve(c *fiber.Ctx) error {
	return ctrl.decide(c, leaveModel.LeaveStatusApproved)
}

// PUT /users/leave/reject?leaveId
func (ctrl *LeaveController) Reject(c *fiber.Ctx) error {
	return ctrl.decide(c, leaveModel.LeaveStatusRejected)
}

/* ===================== BALANCE ===================== */
// GET /users/leave/balance?userId&year
func (ctrl *LeaveController) Balance(c *fiber.Ctx) error {
	targetID, err := helper.ResolveTargetUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	year := time.Now().UTC().Year()
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		if parsed, convErr := time.Parse("2006", raw); convErr == nil {
			year = parsed.Year()
		} else {
			return helper.JsonError(c, fiber.StatusBadRequest, "year must be a four digit year")
		}
	}

	balances, err := leaveService.BalanceForYear(ctrl.DB.WithContext(c.UserContext()), targetID, year)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return helper.JsonSuccess(c, "OK", fiber.Map{
		"year":     year,
		"balances": balances,
	})
}
