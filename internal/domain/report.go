package domain

// ReportLine строка отчета: услуга зала за месяц
type ReportLine struct {
	HallID      int64
	HallName    string
	ServiceID   int64
	ServiceName string
	Count       int
	Total       int
}

// MonthlyReport выручка за месяц по залам и услугам
type MonthlyReport struct {
	Year       int
	Month      int
	HallID     *int64
	Lines      []ReportLine
	TotalCount int
	Total      int
}

// HallTotals суммы по каждому залу
func (r *MonthlyReport) HallTotals() map[int64]int {
	totals := make(map[int64]int)
	for _, line := range r.Lines {
		totals[line.HallID] += line.Total
	}
	return totals
}
