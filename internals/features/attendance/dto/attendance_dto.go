package dto

import (
	"time"

	"staffhub_backend/internals/features/attendance/model"
)

// AttendanceResponse is the wire form of one attendance day.
type AttendanceResponse struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	CheckIn       string  `json:"checkIn"`
	CheckOut      *string `json:"checkOut,omitempty"`
	WorkedMinutes *int    `json:"workedMinutes,omitempty"`
	Status        string  `json:"status"` // "open" until check-out, then "closed"
}

func ToAttendanceResponse(m *model.AttendanceRecord) AttendanceResponse {
	resp := AttendanceResponse{
		ID:            m.ID.String(),
		Date:          m.Date.UTC().Format("2006-01-02"),
		CheckIn:       m.CheckIn.UTC().Format(time.RFC3339),
		WorkedMinutes: m.WorkedMinutes,
		Status:        "open",
	}
	if m.CheckOut != nil {
		out := m.CheckOut.UTC().Format(time.RFC3339)
		resp.CheckOut = &out
		resp.Status = "closed"
	}
	return resp
}
