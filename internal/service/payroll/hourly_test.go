package payroll

import (
	"testing"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfession() *payroll.Profession {
	return &payroll.Profession{ID: "p1", Name: "Electrician", HourlyRate: dec("10"), DailyRate: dec("70")}
}

func TestCalculateHourly_PaysTheLargerTotal(t *testing.T) {
	records := []payroll.AttendanceRecord{
		punch(t, "e1", 4, "08:00", "12:00"),
		punch(t, "e1", 4, "13:00", "17:00"),
		punch(t, "e1", 5, "09:00", "10:30"),
	}

	b, note := calculateHourly(testProfession(), records)

	require.Len(t, b.Days, 2)
	assertDecimal(t, "8", b.Days[0].Hours)
	assertDecimal(t, "80", b.Days[0].AmountByHours)
	assertDecimal(t, "1.5", b.Days[1].Hours)
	assertDecimal(t, "15", b.Days[1].AmountByHours)
	assertDecimal(t, "70", b.Days[1].AmountByDay)

	assert.Equal(t, 2, b.TotalDays)
	assertDecimal(t, "9.5", b.TotalHours)
	assertDecimal(t, "95", b.TotalAmountByHours)
	assertDecimal(t, "140", b.TotalAmountByDays)
	assertDecimal(t, "140", b.Additions())
	assert.Contains(t, note, "2 days")
}

func TestCalculateHourly_LongDaysFavourHours(t *testing.T) {
	records := []payroll.AttendanceRecord{punch(t, "e1", 4, "06:00", "18:00")}

	b, _ := calculateHourly(testProfession(), records)

	assertDecimal(t, "120", b.TotalAmountByHours)
	assertDecimal(t, "70", b.TotalAmountByDays)
	assertDecimal(t, "120", b.Additions())
}

func TestCalculateHourly_InvertedPeriodStillCountsDay(t *testing.T) {
	records := []payroll.AttendanceRecord{punch(t, "e1", 4, "17:00", "08:00")}

	b, _ := calculateHourly(testProfession(), records)

	assert.Equal(t, 1, b.TotalDays)
	assertDecimal(t, "0", b.TotalHours)
	assertDecimal(t, "70", b.Additions())
}

func TestCalculateHourly_NoProfession(t *testing.T) {
	b, note := calculateHourly(nil, []payroll.AttendanceRecord{punch(t, "e1", 4, "08:00", "12:00")})

	assert.Equal(t, "hourly: no profession configured", note)
	assert.True(t, b.Additions().IsZero())
	assert.Empty(t, b.Days)
}
