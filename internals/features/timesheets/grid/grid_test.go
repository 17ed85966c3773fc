package grid

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthGridFebruary2025(t *testing.T) {
	// February 2025: not a leap year, the 1st falls on a Saturday.
	cells := BuildMonthGrid(2025, 2)

	require.Len(t, cells, 6+28)

	// six filler cells carrying the tail of January
	for i, wantDay := range []int{26, 27, 28, 29, 30, 31} {
		assert.Equal(t, wantDay, cells[i].Day)
		assert.Equal(t, 1, cells[i].Month)
		assert.Equal(t, 2025, cells[i].Year)
	}

	assert.Equal(t, CalendarDay{Day: 1, Month: 2, Year: 2025, ISODate: "2025-02-01"}, cells[6])
	last := cells[len(cells)-1]
	assert.Equal(t, "2025-02-28", last.ISODate)
}

func TestBuildMonthGridLeapYear(t *testing.T) {
	// February 2024 has 29 days; the 1st is a Thursday (4 fillers).
	cells := BuildMonthGrid(2024, 2)
	assert.Len(t, cells, 4+29)
	assert.Equal(t, "2024-02-29", cells[len(cells)-1].ISODate)
}

func TestBuildMonthGridJanuaryBorrowsFromPreviousYear(t *testing.T) {
	// January 2025: the 1st is a Wednesday, fillers are Dec 29-31 2024.
	cells := BuildMonthGrid(2025, 1)
	require.Len(t, cells, 3+31)
	for i, wantDay := range []int{29, 30, 31} {
		assert.Equal(t, wantDay, cells[i].Day)
		assert.Equal(t, 12, cells[i].Month)
		assert.Equal(t, 2024, cells[i].Year)
	}
}

func TestBuildMonthGridInvariants(t *testing.T) {
	months := []struct{ year, month int }{
		{2023, 1}, {2023, 6}, {2024, 2}, {2024, 12}, {2025, 2}, {2025, 8}, {2026, 3},
	}
	for _, m := range months {
		t.Run(fmt.Sprintf("%d-%02d", m.year, m.month), func(t *testing.T) {
			cells := BuildMonthGrid(m.year, m.month)

			firstOfMonth := time.Date(m.year, time.Month(m.month), 1, 0, 0, 0, 0, time.UTC)
			lead := int(firstOfMonth.Weekday())
			daysInMonth := firstOfMonth.AddDate(0, 1, -1).Day()

			require.Len(t, cells, lead+daysInMonth)

			// the first full week runs Sunday through Saturday by position
			for i := 0; i < 7 && i < len(cells); i++ {
				assert.Equal(t, time.Weekday(i), cells[i].Date().Weekday())
			}

			// deterministic: building twice gives identical output
			assert.Equal(t, cells, BuildMonthGrid(m.year, m.month))
		})
	}
}

func TestEnrichMatchesByCalendarTriple(t *testing.T) {
	cells := BuildMonthGrid(2025, 2)

	records := []DayRecord{
		{
			Date:        "2025-02-14T00:00:00Z",
			HoursWorked: 8,
			Work:        []WorkItem{{ProjectName: "intranet", HoursWorked: 8}},
			TimesheetID: "ts-14",
		},
	}
	enriched := EnrichWithRecords(cells, records)

	matched := 0
	for _, cell := range enriched {
		if cell.HoursWorked != nil {
			matched++
			assert.Equal(t, 14, cell.Day)
			assert.Equal(t, 2, cell.Month)
			assert.Equal(t, 2025, cell.Year)
			assert.Equal(t, 8.0, *cell.HoursWorked)
			assert.Equal(t, "ts-14", cell.TimesheetID)
		}
	}
	assert.Equal(t, 1, matched, "exactly one cell should carry the record")
}

func TestEnrichInterpretsTimestampsInUTC(t *testing.T) {
	cells := BuildMonthGrid(2025, 2)

	// 23:00 on Feb 10 in +05:30 is 17:30 UTC on Feb 10, must land on the 10th
	enriched := EnrichWithRecords(cells, []DayRecord{
		{Date: "2025-02-10T23:00:00+05:30", HoursWorked: 4},
	})
	for _, cell := range enriched {
		if cell.HoursWorked != nil {
			assert.Equal(t, "2025-02-10", cell.ISODate)
		}
	}
}

func TestEnrichIsIdempotentAndPure(t *testing.T) {
	cells := BuildMonthGrid(2025, 2)
	records := []DayRecord{
		{Date: "2025-02-03", HoursWorked: 7.5, IsHalfDay: false},
		{Date: "2025-02-04", HoursWorked: 4, IsHalfDay: true},
	}

	once := EnrichWithRecords(cells, records)
	twice := EnrichWithRecords(once, records)
	assert.Equal(t, once, twice)

	// the input grid must stay untouched
	for _, cell := range cells {
		assert.Nil(t, cell.HoursWorked)
	}
}

func TestEnrichDropsMalformedAndOutOfRangeDates(t *testing.T) {
	cells := BuildMonthGrid(2025, 2)
	enriched := EnrichWithRecords(cells, []DayRecord{
		{Date: "not-a-date", HoursWorked: 8},
		{Date: "2025-06-01", HoursWorked: 8}, // not on this grid
	})
	assert.Equal(t, cells, enriched)
}

func TestComputeWeeklyTotals(t *testing.T) {
	cells := BuildMonthGrid(2025, 2) // 34 cells → weeks of 7,7,7,7,6
	records := []DayRecord{
		{Date: "2025-02-03", HoursWorked: 8},
		{Date: "2025-02-05", HoursWorked: 6.5},
		{Date: "2025-02-28", HoursWorked: 2},
	}
	enriched := EnrichWithRecords(cells, records)

	totals := ComputeWeeklyTotals(enriched)
	require.Len(t, totals, 5)
	assert.Equal(t, 0.0, totals[0])
	assert.Equal(t, 14.5, totals[1])
	assert.Equal(t, 2.0, totals[4])

	// weekly totals must sum to the grid's grand total
	var direct, weekly float64
	for _, cell := range enriched {
		if cell.HoursWorked != nil {
			direct += *cell.HoursWorked
		}
	}
	for _, w := range totals {
		weekly += w
	}
	assert.Equal(t, direct, weekly)
}

func TestComputeWeeklyTotalsEmptyGrid(t *testing.T) {
	assert.Nil(t, ComputeWeeklyTotals(nil))
}

func TestMarkLeaveDates(t *testing.T) {
	cells := BuildMonthGrid(2025, 2)
	marked := MarkLeaveDates(cells, []string{"2025-02-17", "2025-02-18", "bogus", "2025-07-01"})

	var leaveDays []string
	for _, cell := range marked {
		if cell.Leave {
			leaveDays = append(leaveDays, cell.ISODate)
		}
	}
	assert.Equal(t, []string{"2025-02-17", "2025-02-18"}, leaveDays)

	// input untouched
	for _, cell := range cells {
		assert.False(t, cell.Leave)
	}
}

func hours(v float64) *float64 { return &v }

func TestClassifyCellPriorityOrder(t *testing.T) {
	today := time.Date(2025, 2, 14, 10, 30, 0, 0, time.UTC)
	holidays := HolidaySet([]string{"2025-02-17"})

	cases := []struct {
		name string
		cell CalendarDay
		want CellStatus
	}{
		{
			name: "half day with work outranks everything",
			cell: CalendarDay{Day: 14, Month: 2, Year: 2025, ISODate: "2025-02-14",
				IsHalfDay: true, Leave: true, Work: []WorkItem{{HoursWorked: 4}}},
			want: StatusHalfDayFilled,
		},
		{
			name: "half day without work, even on a holiday",
			cell: CalendarDay{Day: 17, Month: 2, Year: 2025, ISODate: "2025-02-17", IsHalfDay: true},
			want: StatusHalfDayUnfilled,
		},
		{
			name: "today outranks leave",
			cell: CalendarDay{Day: 14, Month: 2, Year: 2025, ISODate: "2025-02-14", Leave: true},
			want: StatusToday,
		},
		{
			name: "leave outranks holiday styling",
			cell: CalendarDay{Day: 17, Month: 2, Year: 2025, ISODate: "2025-02-17", Leave: true},
			want: StatusOnLeave,
		},
		{
			name: "holiday without hours",
			cell: CalendarDay{Day: 17, Month: 2, Year: 2025, ISODate: "2025-02-17"},
			want: StatusHolidayUnfilled,
		},
		{
			name: "sunday without hours",
			cell: CalendarDay{Day: 9, Month: 2, Year: 2025, ISODate: "2025-02-09"},
			want: StatusHolidayUnfilled,
		},
		{
			name: "sunday with submitted work is filled",
			cell: CalendarDay{Day: 9, Month: 2, Year: 2025, ISODate: "2025-02-09",
				HoursWorked: hours(3), Work: []WorkItem{{HoursWorked: 3}}},
			want: StatusFilled,
		},
		{
			name: "weekday with work",
			cell: CalendarDay{Day: 12, Month: 2, Year: 2025, ISODate: "2025-02-12",
				HoursWorked: hours(8), Work: []WorkItem{{HoursWorked: 8}}},
			want: StatusFilled,
		},
		{
			name: "past weekday with nothing submitted",
			cell: CalendarDay{Day: 11, Month: 2, Year: 2025, ISODate: "2025-02-11"},
			want: StatusMissingPast,
		},
		{
			name: "future weekday is default",
			cell: CalendarDay{Day: 20, Month: 2, Year: 2025, ISODate: "2025-02-20"},
			want: StatusDefault,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyCell(tc.cell, holidays, today)
			assert.Equal(t, tc.want, got)
			// deterministic: same input, same answer
			assert.Equal(t, got, ClassifyCell(tc.cell, holidays, today))
		})
	}
}

func TestClassifyGridLength(t *testing.T) {
	cells := BuildMonthGrid(2025, 2)
	statuses := ClassifyGrid(cells, nil, time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC))
	assert.Len(t, statuses, len(cells))
}
