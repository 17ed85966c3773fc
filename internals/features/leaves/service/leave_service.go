package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffhub_backend/internals/features/leaves/model"
)

const isoDateLayout = "2006-01-02"

/* ==========================
   Valid-date computation
========================== */

// ComputeValidDates lists the chargeable days of [start, end]: every day in
// the period that is neither a Sunday nor in the holiday set. Inputs are
// treated as calendar dates; the time of day is ignored.
func ComputeValidDates(start, end time.Time, holidays map[string]struct{}) []string {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	var dates []string
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Sunday {
			continue
		}
		iso := d.Format(isoDateLayout)
		if _, isHoliday := holidays[iso]; isHoliday {
			continue
		}
		dates = append(dates, iso)
	}
	return dates
}

// DecodeValidDates unpacks the stored JSON array; malformed payloads give
// an empty list rather than an error, the grid can live without them.
func DecodeValidDates(app *model.LeaveApplication) []string {
	var dates []string
	if len(app.ValidDates) > 0 {
		_ = json.Unmarshal(app.ValidDates, &dates)
	}
	return dates
}

/* ==========================
   Queries shared across features
========================== */

// ApprovedLeaveDates flattens the valid-date arrays of every approved
// application of the user into one set, keeping only dates inside
// [start, end]. The timesheet grid reads this to paint on-leave cells.
func ApprovedLeaveDates(db *gorm.DB, userID uuid.UUID, start, end time.Time) (map[string]struct{}, error) {
	var apps []model.LeaveApplication
	err := db.
		Where("user_id = ? AND status = ?", userID, model.LeaveStatusApproved).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	startISO := start.UTC().Format(isoDateLayout)
	endISO := end.UTC().Format(isoDateLayout)

	set := make(map[string]struct{})
	for i := range apps {
		for _, iso := range DecodeValidDates(&apps[i]) {
			if iso >= startISO && iso <= endISO {
				set[iso] = struct{}{}
			}
		}
	}
	return set, nil
}

/* ==========================
   Balance
========================== */

type LeaveBalance struct {
	LeaveType string `json:"leaveType"`
	Quota     int    `json:"quota"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
}

// BalanceForYear tallies approved chargeable days per leave type within the
// given year and subtracts them from the yearly quota.
func BalanceForYear(db *gorm.DB, userID uuid.UUID, year int) ([]LeaveBalance, error) {
	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	var apps []model.LeaveApplication
	err := db.
		Where("user_id = ? AND status = ?", userID, model.LeaveStatusApproved).
		Where("start_date <= ? AND end_date >= ?", yearEnd, yearStart).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	prefix := yearStart.Format("2006")
	used := map[string]int{}
	for i := range apps {
		for _, iso := range DecodeValidDates(&apps[i]) {
			if len(iso) >= 4 && iso[:4] == prefix {
				used[apps[i].LeaveType]++
			}
		}
	}

	balances := make([]LeaveBalance, 0, len(model.LeaveQuotas))
	for _, lt := range []string{model.LeaveTypeCasual, model.LeaveTypeSick, model.LeaveTypeEarned} {
		quota := model.LeaveQuotas[lt]
		balances = append(balances, LeaveBalance{
			LeaveType: lt,
			Quota:     quota,
			Used:      used[lt],
			Remaining: quota - used[lt],
		})
	}
	return balances, nil
}
