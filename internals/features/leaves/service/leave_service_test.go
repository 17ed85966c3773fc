package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"staffhub_backend/internals/features/leaves/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeValidDatesSkipsSundays(t *testing.T) {
	// 2025-02-03 is a Monday, 2025-02-09 a Sunday
	got := ComputeValidDates(date(2025, 2, 3), date(2025, 2, 9), nil)

	assert.Equal(t, []string{
		"2025-02-03", "2025-02-04", "2025-02-05",
		"2025-02-06", "2025-02-07", "2025-02-08",
	}, got)
}

func TestComputeValidDatesSkipsHolidays(t *testing.T) {
	holidays := map[string]struct{}{
		"2025-02-05": {},
	}
	got := ComputeValidDates(date(2025, 2, 3), date(2025, 2, 7), holidays)

	assert.Equal(t, []string{
		"2025-02-03", "2025-02-04", "2025-02-06", "2025-02-07",
	}, got)
}

func TestComputeValidDatesSingleDay(t *testing.T) {
	assert.Equal(t, []string{"2025-02-14"},
		ComputeValidDates(date(2025, 2, 14), date(2025, 2, 14), nil))

	// a lone Sunday yields nothing chargeable
	assert.Empty(t, ComputeValidDates(date(2025, 2, 9), date(2025, 2, 9), nil))
}

func TestComputeValidDatesIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, 2, 3, 23, 30, 0, 0, time.UTC)
	end := time.Date(2025, 2, 4, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, []string{"2025-02-03", "2025-02-04"},
		ComputeValidDates(start, end, nil))
}

func TestDecodeValidDatesMalformedPayload(t *testing.T) {
	app := &model.LeaveApplication{ValidDates: datatypes.JSON([]byte(`not json`))}
	assert.Empty(t, DecodeValidDates(app))

	app = &model.LeaveApplication{}
	assert.Empty(t, DecodeValidDates(app))
}

func openLeaveDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.LeaveApplication{}))
	return db
}

func mustJSON(t *testing.T, v interface{}) datatypes.JSON {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return datatypes.JSON(raw)
}

func TestApprovedLeaveDatesClipsToRange(t *testing.T) {
	db := openLeaveDB(t)
	userID := uuid.New()

	require.NoError(t, db.Create(&model.LeaveApplication{
		UserID:     userID,
		LeaveType:  model.LeaveTypeCasual,
		StartDate:  date(2025, 1, 30),
		EndDate:    date(2025, 2, 4),
		Status:     model.LeaveStatusApproved,
		ValidDates: mustJSON(t, []string{"2025-01-30", "2025-01-31", "2025-02-01", "2025-02-03", "2025-02-04"}),
	}).Error)

	// pending applications never count
	require.NoError(t, db.Create(&model.LeaveApplication{
		UserID:     userID,
		LeaveType:  model.LeaveTypeSick,
		StartDate:  date(2025, 2, 10),
		EndDate:    date(2025, 2, 11),
		Status:     model.LeaveStatusPending,
		ValidDates: mustJSON(t, []string{"2025-02-10", "2025-02-11"}),
	}).Error)

	set, err := ApprovedLeaveDates(db, userID, date(2025, 2, 1), date(2025, 2, 28))
	require.NoError(t, err)

	assert.Len(t, set, 3)
	assert.Contains(t, set, "2025-02-01")
	assert.Contains(t, set, "2025-02-03")
	assert.Contains(t, set, "2025-02-04")
	assert.NotContains(t, set, "2025-01-31")
	assert.NotContains(t, set, "2025-02-10")
}

func TestApprovedLeaveDatesOtherUserExcluded(t *testing.T) {
	db := openLeaveDB(t)
	userID := uuid.New()

	require.NoError(t, db.Create(&model.LeaveApplication{
		UserID:     uuid.New(),
		LeaveType:  model.LeaveTypeCasual,
		StartDate:  date(2025, 2, 3),
		EndDate:    date(2025, 2, 4),
		Status:     model.LeaveStatusApproved,
		ValidDates: mustJSON(t, []string{"2025-02-03", "2025-02-04"}),
	}).Error)

	set, err := ApprovedLeaveDates(db, userID, date(2025, 2, 1), date(2025, 2, 28))
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestBalanceForYear(t *testing.T) {
	db := openLeaveDB(t)
	userID := uuid.New()

	require.NoError(t, db.Create(&model.LeaveApplication{
		UserID:     userID,
		LeaveType:  model.LeaveTypeCasual,
		StartDate:  date(2025, 3, 3),
		EndDate:    date(2025, 3, 5),
		Status:     model.LeaveStatusApproved,
		ValidDates: mustJSON(t, []string{"2025-03-03", "2025-03-04", "2025-03-05"}),
	}).Error)

	// rejected days never consume quota
	require.NoError(t, db.Create(&model.LeaveApplication{
		UserID:     userID,
		LeaveType:  model.LeaveTypeCasual,
		StartDate:  date(2025, 4, 1),
		EndDate:    date(2025, 4, 2),
		Status:     model.LeaveStatusRejected,
		ValidDates: mustJSON(t, []string{"2025-04-01", "2025-04-02"}),
	}).Error)

	balances, err := BalanceForYear(db, userID, 2025)
	require.NoError(t, err)
	require.Len(t, balances, 3)

	byType := map[string]LeaveBalance{}
	for _, b := range balances {
		byType[b.LeaveType] = b
	}

	assert.Equal(t, 3, byType[model.LeaveTypeCasual].Used)
	assert.Equal(t, 9, byType[model.LeaveTypeCasual].Remaining)
	assert.Equal(t, 0, byType[model.LeaveTypeSick].Used)
	assert.Equal(t, 8, byType[model.LeaveTypeSick].Remaining)
	assert.Equal(t, 15, byType[model.LeaveTypeEarned].Remaining)
}

func TestBalanceForYearCountsOnlyThatYearsDays(t *testing.T) {
	db := openLeaveDB(t)
	userID := uuid.New()

	// period straddling the year boundary
	require.NoError(t, db.Create(&model.LeaveApplication{
		UserID:     userID,
		LeaveType:  model.LeaveTypeEarned,
		StartDate:  date(2024, 12, 30),
		EndDate:    date(2025, 1, 2),
		Status:     model.LeaveStatusApproved,
		ValidDates: mustJSON(t, []string{"2024-12-30", "2024-12-31", "2025-01-01", "2025-01-02"}),
	}).Error)

	balances, err := BalanceForYear(db, userID, 2025)
	require.NoError(t, err)

	for _, b := range balances {
		if b.LeaveType == model.LeaveTypeEarned {
			assert.Equal(t, 2, b.Used)
		}
	}
}
