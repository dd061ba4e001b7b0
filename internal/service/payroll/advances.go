package payroll

import (
	"fmt"
	"sort"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// AdvancesSummary lists the advances paid inside a period and their sum.
type AdvancesSummary struct {
	Total decimal.Decimal
	Lines []payroll.AdvanceRecord
}

// resolveAdvances keeps only the advances dated inside period.
func resolveAdvances(records []payroll.AdvanceRecord, period payroll.Period) AdvancesSummary {
	s := AdvancesSummary{Total: decimal.Zero}
	for _, r := range records {
		if !period.Contains(r.Date) {
			continue
		}
		s.Total = s.Total.Add(r.Amount)
		s.Lines = append(s.Lines, r)
	}
	sort.SliceStable(s.Lines, func(i, j int) bool { return s.Lines[i].Date.Before(s.Lines[j].Date) })
	return s
}

func (s AdvancesSummary) note() string {
	return fmt.Sprintf("advances: %d totalling %s", len(s.Lines), FormatAmount(s.Total))
}
