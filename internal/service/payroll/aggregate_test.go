package payroll

import (
	"testing"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceRun_TotalsAndBuckets(t *testing.T) {
	monthly := baseEmployee("m1")
	monthly.JobTitle = &payroll.JobTitle{MonthSystem: true}
	producer := baseEmployee("p1")
	producer.JobTitle = &payroll.JobTitle{ProductionSystem: true}
	shift := baseEmployee("s1")
	shift.JobTitle = testShiftJobTitle()
	shift.Shift = testShift(t)
	hourly := baseEmployee("h1")
	hourly.Profession = testProfession()
	neutral := baseEmployee("n1")

	inputs := []payroll.EmployeeInputs{
		{Employee: monthly, MonthlyAttendance: monthlyRecords(28, payroll.AttendanceFullDay, false, 0)},
		{Employee: producer, Production: []payroll.ProductionRecord{{PieceID: "p1", Date: day(2), Quantity: 10, Grade: payroll.GradeA}}},
		{Employee: shift, Attendances: []payroll.AttendanceRecord{punch(t, "s1", 4, "07:00", "17:45")}},
		{Employee: hourly, Attendances: []payroll.AttendanceRecord{punch(t, "h1", 4, "08:00", "16:00")}},
		{Employee: neutral},
	}
	results := make([]EmployeeResult, 0, len(inputs))
	for _, in := range inputs {
		results = append(results, computeEmployee(in, testCatalog(), march))
	}

	s := reduceRun(march, results)

	net := decimal.Zero
	for _, r := range results {
		net = net.Add(r.NetSalary())
	}
	assert.True(t, net.Equal(s.TotalPayroll))
	assertDecimal(t, "15000", s.TotalBasicSalaries)
	assertDecimal(t, "1000", s.TotalAllowances)
	assert.Equal(t, 0, s.Degraded)

	assert.Equal(t, 1, s.Monthly.EmployeeCount)
	assert.Equal(t, 28, s.Monthly.FullDays)
	assert.Equal(t, 2, s.Monthly.UnexcusedAbsences)

	assert.Equal(t, 1, s.Production.EmployeeCount)
	assert.Equal(t, 10, s.Production.TotalPieces)
	assertDecimal(t, "50", s.Production.TotalValue)
	assert.Equal(t, 10, s.Production.Grades[payroll.GradeA].Count)

	// 645 worked minutes, 165 overtime
	assert.Equal(t, 1, s.Shift.EmployeeCount)
	assert.Equal(t, 10, s.Shift.TotalWorkingHours)
	assert.Equal(t, 2, s.Shift.TotalOvertimeHours)

	require.Len(t, s.HourlyResults, 2)
	assert.Equal(t, 2, s.Hourly.EmployeeCount)
	assertDecimal(t, "8", s.Hourly.TotalHours)
	assert.Equal(t, "h1", s.HourlyResults[0].Employee.ID)
	assert.Equal(t, "n1", s.HourlyResults[1].Employee.ID)
}

func TestReduceRun_CountsDegraded(t *testing.T) {
	e := baseEmployee("p1")
	e.JobTitle = &payroll.JobTitle{ProductionSystem: true}
	r := computeEmployee(payroll.EmployeeInputs{
		Employee:   e,
		Production: []payroll.ProductionRecord{{PieceID: "ghost", Date: day(2), Quantity: 1, Grade: payroll.GradeA}},
	}, testCatalog(), march)

	s := reduceRun(march, []EmployeeResult{r})

	assert.Equal(t, 1, s.Degraded)
	assert.Equal(t, 1, s.Production.EmployeeCount)
	assert.True(t, s.Production.TotalValue.IsZero())
}

func TestReduceRun_Empty(t *testing.T) {
	s := reduceRun(march, nil)

	assert.True(t, s.TotalPayroll.IsZero())
	assert.Empty(t, s.Results)
	assert.Len(t, s.Production.Grades, 5)
}
