package payroll

import (
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Relative worth of each grade when scoring output quality.
var gradeWeights = map[payroll.QualityGrade]decimal.Decimal{
	payroll.GradeA: decimal.RequireFromString("1.0"),
	payroll.GradeB: decimal.RequireFromString("0.8"),
	payroll.GradeC: decimal.RequireFromString("0.6"),
	payroll.GradeD: decimal.RequireFromString("0.4"),
	payroll.GradeE: decimal.RequireFromString("0.2"),
}

type ProductionLine struct {
	Record    payroll.ProductionRecord
	Piece     payroll.PieceCatalogEntry
	UnitPrice decimal.Decimal
	Value     decimal.Decimal
}

type GradeTotal struct {
	Count int
	Value decimal.Decimal
}

type ProductionDay struct {
	Date   time.Time
	Lines  int
	Pieces int
	Value  decimal.Decimal
}

// ProductionBreakdown is the production regime result.
type ProductionBreakdown struct {
	Lines       []ProductionLine
	Grades      map[payroll.QualityGrade]GradeTotal
	Days        []ProductionDay
	TotalPieces int
	TotalValue  decimal.Decimal
}

func newGradeTotals() map[payroll.QualityGrade]GradeTotal {
	grades := make(map[payroll.QualityGrade]GradeTotal, len(payroll.QualityGrades))
	for _, g := range payroll.QualityGrades {
		grades[g] = GradeTotal{Value: decimal.Zero}
	}
	return grades
}

// EfficiencyScore weighs produced quantity by grade, as a percentage of an
// all-A output. Zero when nothing was produced.
func (b ProductionBreakdown) EfficiencyScore() decimal.Decimal {
	if b.TotalPieces == 0 {
		return decimal.Zero
	}
	weighted := decimal.Zero
	for grade, total := range b.Grades {
		weighted = weighted.Add(gradeWeights[grade].Mul(decimal.NewFromInt(int64(total.Count))))
	}
	return weighted.Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(b.TotalPieces))).Round(2)
}

// calculateProduction prices every record at its grade. Grades without a
// price contribute zero; a record pointing at an unknown piece is an error.
func calculateProduction(records []payroll.ProductionRecord, catalog map[string]payroll.PieceCatalogEntry) (ProductionBreakdown, error) {
	b := ProductionBreakdown{
		Lines:      make([]ProductionLine, 0, len(records)),
		Grades:     newGradeTotals(),
		TotalValue: decimal.Zero,
	}

	sorted := make([]payroll.ProductionRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	dayIndex := make(map[string]int)
	for _, r := range sorted {
		piece, ok := catalog[r.PieceID]
		if !ok {
			return ProductionBreakdown{}, fmt.Errorf("%w: %s", payroll.ErrPieceNotFound, r.PieceID)
		}
		price := piece.PriceFor(r.Grade)
		qty := decimal.NewFromInt(int64(r.Quantity))
		value := qty.Mul(price)

		b.Lines = append(b.Lines, ProductionLine{Record: r, Piece: piece, UnitPrice: price, Value: value})
		b.TotalPieces += r.Quantity
		b.TotalValue = b.TotalValue.Add(value)

		g := b.Grades[r.Grade]
		g.Count += r.Quantity
		g.Value = g.Value.Add(value)
		b.Grades[r.Grade] = g

		key := r.Date.Format(dateLayout)
		idx, ok := dayIndex[key]
		if !ok {
			idx = len(b.Days)
			dayIndex[key] = idx
			b.Days = append(b.Days, ProductionDay{Date: truncateDate(r.Date), Value: decimal.Zero})
		}
		b.Days[idx].Lines++
		b.Days[idx].Pieces += r.Quantity
		b.Days[idx].Value = b.Days[idx].Value.Add(value)
	}

	return b, nil
}

func (b ProductionBreakdown) note() string {
	return fmt.Sprintf("production: %d pieces over %d days, value %s", b.TotalPieces, len(b.Days), FormatAmount(b.TotalValue))
}
