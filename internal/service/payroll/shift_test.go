package payroll

import (
	"testing"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShift(t *testing.T) *payroll.Shift {
	return &payroll.Shift{
		ID:                  "s1",
		Name:                "Morning",
		StartTime:           *hhmm(t, day(1), "08:00"),
		EndTime:             *hhmm(t, day(1), "16:00"),
		AllowedDelayMinutes: 10,
		AllowedExitMinutes:  0,
	}
}

func testShiftJobTitle() *payroll.JobTitle {
	return &payroll.JobTitle{
		ID:               "jt-shift",
		Name:             "Operator",
		ShiftSystem:      true,
		OvertimeHourRate: dec("60"),
		DelayMinuteRate:  dec("1"),
		AllowedBreakTime: "00:30",
	}
}

func TestCalculateShift_DelayAgainstGracePeriod(t *testing.T) {
	tests := []struct {
		name      string
		checkIn   string
		wantDelay int
	}{
		{name: "on time", checkIn: "08:00", wantDelay: 0},
		{name: "within grace", checkIn: "08:10", wantDelay: 0},
		{name: "five minutes past grace", checkIn: "08:15", wantDelay: 5},
		{name: "ten minutes past grace", checkIn: "08:20", wantDelay: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []payroll.AttendanceRecord{punch(t, "e1", 4, tt.checkIn, "16:00")}

			b, _ := calculateShift(testShiftJobTitle(), testShift(t), records)

			require.Len(t, b.Days, 1)
			assert.Equal(t, tt.wantDelay, b.Days[0].DelayMinutes())
			assert.Equal(t, tt.wantDelay, b.TotalDelayMinutes)
			assert.GreaterOrEqual(t, b.TotalOvertimeMinutes, 0)
		})
	}
}

func TestCalculateShift_InvertedShiftWindow(t *testing.T) {
	shift := testShift(t)
	shift.Name = "Night"
	shift.StartTime = *hhmm(t, day(1), "22:00")
	shift.EndTime = *hhmm(t, day(1), "06:00")
	records := []payroll.AttendanceRecord{punch(t, "e1", 4, "22:00", "23:00")}

	b, _ := calculateShift(testShiftJobTitle(), shift, records)

	require.Len(t, b.Days, 1)
	assert.Equal(t, 60, b.Days[0].WorkedMinutes)
	assert.Equal(t, 60, b.TotalOvertimeMinutes)
	assertDecimal(t, "60", b.OvertimeValue)
	assert.Equal(t, 0, b.TotalDelayMinutes)
}

func TestCalculateShift_LateArrivalAndLongBreak(t *testing.T) {
	records := []payroll.AttendanceRecord{
		punch(t, "e1", 4, "08:20", "12:00"),
		punch(t, "e1", 4, "12:45", "16:30"),
	}

	b, _ := calculateShift(testShiftJobTitle(), testShift(t), records)

	require.Len(t, b.Days, 1)
	d := b.Days[0]
	assert.Equal(t, 10, d.LateMinutes)
	assert.Equal(t, 0, d.EarlyExitMinutes)
	assert.Equal(t, 10, d.DelayMinutes())
	assert.Equal(t, 445, d.WorkedMinutes)
	assert.Equal(t, 0, d.OvertimeMinutes)
	assert.Equal(t, 45, d.BreakMinutes)
	assert.Equal(t, 15, d.ExcessBreakMinutes)

	assertDecimal(t, "10", b.DelayDeduction)
	assertDecimal(t, "15", b.BreakDeduction)
	assertDecimal(t, "25", b.Deductions())
	assertDecimal(t, "0", b.Additions())
}

func TestCalculateShift_OvertimeAndEarlyExit(t *testing.T) {
	records := []payroll.AttendanceRecord{
		punch(t, "e1", 4, "07:55", "17:30"),
		punch(t, "e1", 5, "08:00", "15:40"),
	}

	b, note := calculateShift(testShiftJobTitle(), testShift(t), records)

	require.Len(t, b.Days, 2)
	assert.Equal(t, 95, b.Days[0].OvertimeMinutes)
	assert.Equal(t, 0, b.Days[0].DelayMinutes())
	assert.Equal(t, 20, b.Days[1].EarlyExitMinutes)
	assert.Equal(t, 2, b.TotalDays)
	assert.Equal(t, 95, b.TotalOvertimeMinutes)
	assert.Equal(t, 20, b.TotalDelayMinutes)
	assertDecimal(t, "95", b.OvertimeValue)
	assertDecimal(t, "20", b.DelayDeduction)
	assert.Contains(t, note, "2 days")
}

func TestCalculateShift_DayWithoutValidPeriod(t *testing.T) {
	records := []payroll.AttendanceRecord{
		punch(t, "e1", 4, "09:00", ""),
		punch(t, "e1", 5, "08:00", "16:00"),
	}

	b, _ := calculateShift(testShiftJobTitle(), testShift(t), records)

	assert.Equal(t, 2, b.TotalDays)
	assert.Equal(t, 480, b.TotalWorkingMinutes)
	assert.Equal(t, 0, b.TotalDelayMinutes)
	assert.Equal(t, 0, b.Days[0].LateMinutes)
}

func TestCalculateShift_MissingConfiguration(t *testing.T) {
	records := []payroll.AttendanceRecord{punch(t, "e1", 4, "08:00", "16:00")}

	b, note := calculateShift(testShiftJobTitle(), nil, records)
	assert.Equal(t, "shift: no shift assigned", note)
	assert.True(t, b.Additions().IsZero())
	assert.True(t, b.Deductions().IsZero())

	b, note = calculateShift(nil, testShift(t), records)
	assert.Equal(t, "shift: no job title configured", note)
	assert.Empty(t, b.Days)
}

func TestCalculateShift_NoAttendance(t *testing.T) {
	b, note := calculateShift(testShiftJobTitle(), testShift(t), nil)

	assert.Equal(t, "shift: no attendance records for the period", note)
	assert.Equal(t, 0, b.TotalDays)
	assert.True(t, b.Deductions().IsZero())
	assert.NotNil(t, b.Shift)
}

func TestCalculateShift_MalformedBreakAllowance(t *testing.T) {
	jt := testShiftJobTitle()
	jt.AllowedBreakTime = "thirty"
	records := []payroll.AttendanceRecord{
		punch(t, "e1", 4, "08:00", "12:00"),
		punch(t, "e1", 4, "12:30", "16:00"),
	}

	b, _ := calculateShift(jt, testShift(t), records)

	assert.Equal(t, 0, b.AllowedBreakMinutes)
	assert.Equal(t, 30, b.TotalExcessBreakMinutes)
	assertDecimal(t, "30", b.BreakDeduction)
}
