package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"staffhub_backend/internals/features/holidays/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateHolidayRequest struct {
	Date string `json:"date" validate:"required"`
	Name string `json:"name" validate:"required,min=2,max=150"`
}

func (r *CreateHolidayRequest) Normalize() {
	r.Date = strings.TrimSpace(r.Date)
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateHolidayRequest) ToModel() (*model.HolidayModel, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	return &model.HolidayModel{Date: date, Name: r.Name}, nil
}

// UpdateHolidayRequest is a partial update, pointers to tell omit from empty.
type UpdateHolidayRequest struct {
	Date *string `json:"date,omitempty"`
	Name *string `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
}

func (r *UpdateHolidayRequest) Normalize() {
	if r.Date != nil {
		v := strings.TrimSpace(*r.Date)
		r.Date = &v
	}
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
}

// ApplyToModel writes the present fields onto an existing holiday.
func (r *UpdateHolidayRequest) ApplyToModel(m *model.HolidayModel) error {
	if r.Date != nil {
		date, err := time.Parse("2006-01-02", *r.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		m.Date = date
	}
	if r.Name != nil {
		m.Name = *r.Name
	}
	return nil
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

func ToHolidayResponse(m *model.HolidayModel) HolidayResponse {
	return HolidayResponse{
		ID:   m.ID.String(),
		Date: m.ISODate(),
		Name: m.Name,
	}
}
