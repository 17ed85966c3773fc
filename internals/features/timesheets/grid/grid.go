// Package grid builds the month view behind the timesheet screen: a
// Sunday-aligned sequence of day cells, enriched with submitted day records
// and classified for rendering. Everything here is pure: same inputs,
// same output, no clock or database access except the caller-supplied
// "today".
package grid

import (
	"time"
)

/* ==========================
   Types
========================== */

// WorkItem is one project's line inside a day's submission.
type WorkItem struct {
	ProjectID      string  `json:"projectId"`
	ProjectName    string  `json:"projectName"`
	CompletedTask  string  `json:"completedTask"`
	InProgressTask string  `json:"inProgressTask"`
	HoursWorked    float64 `json:"hoursWorked"`
}

// DayRecord is a backend timesheet entry for one calendar day. Date may
// carry a time-of-day component; matching is done on the UTC calendar
// triple, never on string equality.
type DayRecord struct {
	Date          string     `json:"date"`
	HoursWorked   float64    `json:"hoursWorked"`
	WorkCompleted string     `json:"workCompleted"`
	Work          []WorkItem `json:"work"`
	TimesheetID   string     `json:"timesheetId"`
	Leave         bool       `json:"leave"`
	IsHalfDay     bool       `json:"isHalfDay"`
}

// CalendarDay is one cell of the month grid. The calendar fields are fixed
// at build time; the record fields stay zero until EnrichWithRecords finds
// a matching submission. HoursWorked is a pointer so "no submission" and
// "submitted zero hours" stay distinguishable.
type CalendarDay struct {
	Day     int    `json:"day"`
	Month   int    `json:"month"` // 1-12
	Year    int    `json:"year"`
	ISODate string `json:"isoDate"` // YYYY-MM-DD

	HoursWorked   *float64   `json:"hoursWorked,omitempty"`
	WorkCompleted string     `json:"workCompleted,omitempty"`
	Work          []WorkItem `json:"work,omitempty"`
	TimesheetID   string     `json:"timesheetId,omitempty"`
	Leave         bool       `json:"leave"`
	IsHalfDay     bool       `json:"isHalfDay"`
}

// Date returns the cell's midnight-UTC time.
func (d CalendarDay) Date() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// CellStatus is the derived render state of a cell. It is recomputed on
// every request and never stored.
type CellStatus string

const (
	StatusHalfDayFilled   CellStatus = "half-day-filled"
	StatusHalfDayUnfilled CellStatus = "half-day-unfilled"
	StatusToday           CellStatus = "today"
	StatusOnLeave         CellStatus = "on-leave"
	StatusHolidayUnfilled CellStatus = "holiday-unfilled"
	StatusFilled          CellStatus = "filled"
	StatusMissingPast     CellStatus = "missing-past"
	StatusDefault         CellStatus = "default"
)

/* ==========================
   Grid construction
========================== */

const isoDateLayout = "2006-01-02"

func newCell(t time.Time) CalendarDay {
	return CalendarDay{
		Day:     t.Day(),
		Month:   int(t.Month()),
		Year:    t.Year(),
		ISODate: t.Format(isoDateLayout),
	}
}

// BuildMonthGrid returns the cells for (year, month): enough tail days of
// the previous month to make position 0 a Sunday, then every day of the
// target month. No trailing padding, the grid may end mid-week.
func BuildMonthGrid(year, month int) []CalendarDay {
	firstOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	// time.Weekday has Sunday == 0, which is exactly the filler count.
	lead := int(firstOfMonth.Weekday())
	daysInMonth := firstOfMonth.AddDate(0, 1, -1).Day()

	cells := make([]CalendarDay, 0, lead+daysInMonth)
	for i := lead; i > 0; i-- {
		cells = append(cells, newCell(firstOfMonth.AddDate(0, 0, -i)))
	}
	for day := 0; day < daysInMonth; day++ {
		cells = append(cells, newCell(firstOfMonth.AddDate(0, 0, day)))
	}
	return cells
}

/* ==========================
   Enrichment
========================== */

// parseRecordDate accepts full RFC3339 timestamps or bare dates,
// interpreted in UTC.
func parseRecordDate(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(isoDateLayout, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// EnrichWithRecords overlays day records onto a fresh copy of the grid.
// Matching is by (day, month, year) in UTC. Records with unparsable dates
// or dates outside the grid are dropped silently. The grid is a display
// aid, a bad record must not take the whole view down. Applying the same
// record set twice yields the same result.
func EnrichWithRecords(cells []CalendarDay, records []DayRecord) []CalendarDay {
	out := make([]CalendarDay, len(cells))
	copy(out, cells)

	index := make(map[string]int, len(out))
	for i, cell := range out {
		index[cell.ISODate] = i
	}

	for _, rec := range records {
		t, ok := parseRecordDate(rec.Date)
		if !ok {
			continue
		}
		i, ok := index[t.Format(isoDateLayout)]
		if !ok {
			continue
		}

		hours := rec.HoursWorked
		out[i].HoursWorked = &hours
		out[i].WorkCompleted = rec.WorkCompleted
		out[i].Work = rec.Work
		out[i].TimesheetID = rec.TimesheetID
		out[i].Leave = rec.Leave
		out[i].IsHalfDay = rec.IsHalfDay
	}
	return out
}

// MarkLeaveDates flags cells whose date is in the approved-leave date set.
// Dates that don't land on the grid are ignored.
func MarkLeaveDates(cells []CalendarDay, leaveDates []string) []CalendarDay {
	out := make([]CalendarDay, len(cells))
	copy(out, cells)

	set := make(map[string]struct{}, len(leaveDates))
	for _, raw := range leaveDates {
		if t, ok := parseRecordDate(raw); ok {
			set[t.Format(isoDateLayout)] = struct{}{}
		}
	}
	for i := range out {
		if _, ok := set[out[i].ISODate]; ok {
			out[i].Leave = true
		}
	}
	return out
}

/* ==========================
   Aggregation
========================== */

// ComputeWeeklyTotals sums hours over consecutive 7-cell chunks in calendar
// order; the final chunk may be short. Cells without a record count as 0.
func ComputeWeeklyTotals(cells []CalendarDay) []float64 {
	if len(cells) == 0 {
		return nil
	}
	totals := make([]float64, 0, (len(cells)+6)/7)
	for start := 0; start < len(cells); start += 7 {
		end := start + 7
		if end > len(cells) {
			end = len(cells)
		}
		var sum float64
		for _, cell := range cells[start:end] {
			if cell.HoursWorked != nil {
				sum += *cell.HoursWorked
			}
		}
		totals = append(totals, sum)
	}
	return totals
}

/* ==========================
   Classification
========================== */

// HolidaySet builds the lookup ClassifyCell expects from raw holiday dates.
func HolidaySet(dates []string) map[string]struct{} {
	set := make(map[string]struct{}, len(dates))
	for _, raw := range dates {
		if t, ok := parseRecordDate(raw); ok {
			set[t.Format(isoDateLayout)] = struct{}{}
		}
	}
	return set
}

// ClassifyCell derives the render state of one cell. First match wins; the
// order is a deliberate tie-break: half-day and "is today" outrank
// holiday/leave styling, and leave outranks holiday-unfilled, so a cell
// never shows contradictory status.
func ClassifyCell(cell CalendarDay, holidays map[string]struct{}, today time.Time) CellStatus {
	cellDate := cell.Date()
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	switch {
	case cell.IsHalfDay && len(cell.Work) > 0:
		return StatusHalfDayFilled
	case cell.IsHalfDay:
		return StatusHalfDayUnfilled
	case cellDate.Equal(todayDate):
		return StatusToday
	case cell.Leave:
		return StatusOnLeave
	}

	_, isHoliday := holidays[cell.ISODate]
	if (cellDate.Weekday() == time.Sunday || isHoliday) && cell.HoursWorked == nil {
		return StatusHolidayUnfilled
	}
	if len(cell.Work) > 0 {
		return StatusFilled
	}
	if cellDate.Before(todayDate) {
		return StatusMissingPast
	}
	return StatusDefault
}

// ClassifyGrid applies ClassifyCell across the grid.
func ClassifyGrid(cells []CalendarDay, holidays map[string]struct{}, today time.Time) []CellStatus {
	statuses := make([]CellStatus, len(cells))
	for i, cell := range cells {
		statuses[i] = ClassifyCell(cell, holidays, today)
	}
	return statuses
}
