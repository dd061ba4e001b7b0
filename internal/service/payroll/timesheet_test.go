package payroll

import (
	"testing"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimesheet_GroupsAndOrdersDays(t *testing.T) {
	records := []payroll.AttendanceRecord{
		punch(t, "e1", 5, "13:00", "17:00"),
		punch(t, "e1", 4, "08:00", "12:00"),
		punch(t, "e1", 5, "08:00", "12:00"),
	}

	days := BuildTimesheet(records)

	require.Len(t, days, 2)
	assert.Equal(t, day(4), days[0].Date)
	assert.Equal(t, day(5), days[1].Date)
	assert.Equal(t, 480, days[1].WorkedMinutes)
	assert.Equal(t, 60, days[1].BreakMinutes)
	assert.Equal(t, []WorkPeriod{{Start: 480, End: 720, Minutes: 240}, {Start: 780, End: 1020, Minutes: 240}}, days[1].Periods)
	require.NotNil(t, days[1].FirstCheckIn)
	require.NotNil(t, days[1].LastCheckOut)
	assert.Equal(t, 480, *days[1].FirstCheckIn)
	assert.Equal(t, 1020, *days[1].LastCheckOut)
}

func TestBuildTimesheet_MissingCheckOut(t *testing.T) {
	days := BuildTimesheet([]payroll.AttendanceRecord{
		punch(t, "e1", 4, "08:00", "12:00"),
		punch(t, "e1", 4, "13:00", ""),
	})

	require.Len(t, days, 1)
	d := days[0]
	assert.Equal(t, 240, d.WorkedMinutes)
	assert.Len(t, d.Periods, 1)
	assert.Equal(t, 60, d.BreakMinutes)
	assert.Equal(t, 720, *d.LastCheckOut)
}

func TestBuildTimesheet_NoCheckOutAtAll(t *testing.T) {
	days := BuildTimesheet([]payroll.AttendanceRecord{punch(t, "e1", 4, "08:00", "")})

	require.Len(t, days, 1)
	assert.False(t, days[0].HasWork())
	assert.Nil(t, days[0].LastCheckOut)
	assert.Equal(t, 480, *days[0].FirstCheckIn)
}

func TestBuildTimesheet_InvertedPeriodIsDropped(t *testing.T) {
	days := BuildTimesheet([]payroll.AttendanceRecord{punch(t, "e1", 4, "12:00", "08:00")})

	require.Len(t, days, 1)
	assert.Equal(t, 0, days[0].WorkedMinutes)
	assert.Empty(t, days[0].Periods)
}

func TestBuildTimesheet_OverlappingRowsHaveNoBreak(t *testing.T) {
	days := BuildTimesheet([]payroll.AttendanceRecord{
		punch(t, "e1", 4, "08:00", "12:30"),
		punch(t, "e1", 4, "12:00", "16:00"),
	})

	require.Len(t, days, 1)
	assert.Equal(t, 0, days[0].BreakMinutes)
	assert.Equal(t, 270+240, days[0].WorkedMinutes)
}

func TestBuildTimesheet_Empty(t *testing.T) {
	assert.Empty(t, BuildTimesheet(nil))
}
