package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"staffhub_backend/internals/features/timesheets/grid"
	"staffhub_backend/internals/features/timesheets/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type WorkItemRequest struct {
	ProjectID      string  `json:"projectId" validate:"omitempty,uuid4"`
	ProjectName    string  `json:"projectName" validate:"required,max=150"`
	CompletedTask  string  `json:"completedTask" validate:"omitempty,max=2000"`
	InProgressTask string  `json:"inProgressTask" validate:"omitempty,max=2000"`
	HoursWorked    float64 `json:"hoursWorked" validate:"gte=0,lte=24"`
}

// CreateTimesheetRequest is one day's submission from the timesheet screen.
type CreateTimesheetRequest struct {
	Date          string            `json:"date" validate:"required"`
	HoursWorked   float64           `json:"hoursWorked" validate:"gte=0,lte=24"`
	WorkCompleted string            `json:"workCompleted" validate:"omitempty,max=4000"`
	IsHalfDay     bool              `json:"isHalfDay"`
	Work          []WorkItemRequest `json:"work" validate:"omitempty,dive"`
}

func (r *CreateTimesheetRequest) Normalize() {
	r.Date = strings.TrimSpace(r.Date)
	r.WorkCompleted = strings.TrimSpace(r.WorkCompleted)
}

// ParseDate accepts a bare date or a full timestamp and pins it to
// midnight UTC, the canonical form the timesheets table stores.
func (r *CreateTimesheetRequest) ParseDate() (time.Time, error) {
	if t, err := time.Parse("2006-01-02", r.Date); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD or RFC3339")
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (r *CreateTimesheetRequest) ToModel(userID uuid.UUID) (*model.TimesheetModel, error) {
	date, err := r.ParseDate()
	if err != nil {
		return nil, err
	}

	items := make([]grid.WorkItem, 0, len(r.Work))
	for _, w := range r.Work {
		items = append(items, grid.WorkItem{
			ProjectID:      w.ProjectID,
			ProjectName:    w.ProjectName,
			CompletedTask:  w.CompletedTask,
			InProgressTask: w.InProgressTask,
			HoursWorked:    w.HoursWorked,
		})
	}
	workJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "work items could not be encoded")
	}

	return &model.TimesheetModel{
		UserID:        userID,
		Date:          date,
		HoursWorked:   r.HoursWorked,
		WorkCompleted: r.WorkCompleted,
		Work:          datatypes.JSON(workJSON),
		IsHalfDay:     r.IsHalfDay,
	}, nil
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

// ToDayRecord converts a stored row into the wire shape the grid consumes.
// leave is derived from the approved-leave date set, never stored.
func ToDayRecord(m *model.TimesheetModel, leaveDates map[string]struct{}) grid.DayRecord {
	var items []grid.WorkItem
	if len(m.Work) > 0 {
		// stored by us, should always decode; an empty list is the safe fallback
		_ = json.Unmarshal(m.Work, &items)
	}

	iso := m.Date.UTC().Format("2006-01-02")
	_, onLeave := leaveDates[iso]

	return grid.DayRecord{
		Date:          m.Date.UTC().Format(time.RFC3339),
		HoursWorked:   m.HoursWorked,
		WorkCompleted: m.WorkCompleted,
		Work:          items,
		TimesheetID:   m.ID.String(),
		Leave:         onLeave,
		IsHalfDay:     m.IsHalfDay,
	}
}

// MonthGridResponse is the server-rendered month view: cells in calendar
// order, the derived status per cell and the weekly totals.
type MonthGridResponse struct {
	Year         int                `json:"year"`
	Month        int                `json:"month"`
	Cells        []grid.CalendarDay `json:"cells"`
	Statuses     []grid.CellStatus  `json:"statuses"`
	WeeklyTotals []float64          `json:"weeklyTotals"`
	MonthTotal   float64            `json:"monthTotal"`
}
