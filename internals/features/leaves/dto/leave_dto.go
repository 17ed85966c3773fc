package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"staffhub_backend/internals/features/leaves/model"
	"staffhub_backend/internals/features/leaves/service"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type ApplyLeaveRequest struct {
	LeaveType string `json:"leaveType" validate:"required,oneof=casual sick earned"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Reason    string `json:"reason" validate:"required,min=3,max=2000"`
}

func (r *ApplyLeaveRequest) Normalize() {
	r.LeaveType = strings.TrimSpace(strings.ToLower(r.LeaveType))
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	r.Reason = strings.TrimSpace(r.Reason)
}

func parseDate(raw, field string) (time.Time, error) {
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

// ParsePeriod validates the date pair and returns it pinned to UTC days.
func (r *ApplyLeaveRequest) ParsePeriod() (start, end time.Time, err error) {
	start, err = parseDate(r.StartDate, "startDate")
	if err != nil {
		return
	}
	end, err = parseDate(r.EndDate, "endDate")
	if err != nil {
		return
	}
	if end.Before(start) {
		err = fiber.NewError(fiber.StatusBadRequest, "endDate must not be before startDate")
	}
	return
}

type DecideLeaveRequest struct {
	Note string `json:"note" validate:"omitempty,max=2000"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type LeaveResponse struct {
	ID           string   `json:"id"`
	UserID       string   `json:"userId"`
	UserName     string   `json:"userName,omitempty"`
	LeaveType    string   `json:"leaveType"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Reason       string   `json:"reason"`
	Status       string   `json:"status"`
	ValidDates   []string `json:"validDates"`
	DecisionNote string   `json:"decisionNote,omitempty"`
}

func ToLeaveResponse(app *model.LeaveApplication, userName string) LeaveResponse {
	return LeaveResponse{
		ID:           app.ID.String(),
		UserID:       app.UserID.String(),
		UserName:     userName,
		LeaveType:    app.LeaveType,
		StartDate:    app.StartDate.UTC().Format("2006-01-02"),
		EndDate:      app.EndDate.UTC().Format("2006-01-02"),
		Reason:       app.Reason,
		Status:       app.Status,
		ValidDates:   service.DecodeValidDates(app),
		DecisionNote: app.DecisionNote,
	}
}
