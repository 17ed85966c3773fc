package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	holidayDTO "staffhub_backend/internals/features/holidays/dto"
	holidayModel "staffhub_backend/internals/features/holidays/model"
	helper "staffhub_backend/internals/helpers"
)

type HolidayController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewHolidayController(db *gorm.DB) *HolidayController {
	return &HolidayController{DB: db, validate: validator.New()}
}

/* ===================== LIST ===================== */
// GET /holiday/get_holidays?startDate&endDate
func (ctrl *HolidayController) GetHolidays(c *fiber.Ctx) error {
	start, err := time.Parse("2006-01-02", strings.TrimSpace(c.Query("startDate")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "startDate must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", strings.TrimSpace(c.Query("endDate")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "endDate must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return helper.JsonError(c, fiber.StatusBadRequest, "endDate must not be before startDate")
	}

	var holidays []holidayModel.HolidayModel
	err = ctrl.DB.WithContext(c.UserContext()).
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC").
		Find(&holidays).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	out := make([]holidayDTO.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		out = append(out, holidayDTO.ToHolidayResponse(&holidays[i]))
	}
	return helper.JsonSuccess(c, "OK", out)
}

/* ===================== CREATE (admin) ===================== */
// POST /holiday/create
func (ctrl *HolidayController) Create(c *fiber.Ctx) error {
	var req holidayDTO.CreateHolidayRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	holiday, err := req.ToModel()
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(holiday).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "A holiday already exists on this date")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create holiday")
	}
	return helper.JsonSuccessWithCode(c, fiber.StatusCreated, "Holiday created",
		holidayDTO.ToHolidayResponse(holiday))
}

/* ===================== UPDATE (admin) ===================== */
// PUT /holiday/update?holidayId
func (ctrl *HolidayController) Update(c *fiber.Ctx) error {
	holidayID, err := uuid.Parse(strings.TrimSpace(c.Query("holidayId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "holidayId is not a valid UUID")
	}

	var req holidayDTO.UpdateHolidayRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var holiday holidayModel.HolidayModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&holiday, "id = ?", holidayID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Holiday not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if err := req.ApplyToModel(&holiday); err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctrl.DB.Save(&holiday).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update holiday")
	}
	return helper.JsonSuccess(c, "Holiday updated", holidayDTO.ToHolidayResponse(&holiday))
}

/* ===================== DELETE (admin) ===================== */
// DELETE /holiday/delete?holidayId
func (ctrl *HolidayController) Delete(c *fiber.Ctx) error {
	holidayID, err := uuid.Parse(strings.TrimSpace(c.Query("holidayId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "holidayId is not a valid UUID")
	}

	res := ctrl.DB.WithContext(c.UserContext()).Delete(&holidayModel.HolidayModel{}, "id = ?", holidayID)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete holiday")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Holiday not found")
	}
	return helper.JsonSuccess(c, "Holiday deleted", nil)
}
