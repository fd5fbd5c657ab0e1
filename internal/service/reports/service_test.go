package reports

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	lines  []domain.ReportLine
	hallID *int64
}

func (f *fakeRepo) Monthly(_ context.Context, _, _ int, hallID *int64) ([]domain.ReportLine, error) {
	f.hallID = hallID
	return f.lines, nil
}

func sampleLines() []domain.ReportLine {
	return []domain.ReportLine{
		{HallID: 1, HallName: "Стрижки", ServiceID: 1, ServiceName: "Женская стрижка", Count: 3, Total: 4500},
		{HallID: 1, HallName: "Стрижки", ServiceID: 2, ServiceName: "Мужская стрижка", Count: 2, Total: 1600},
		{HallID: 2, HallName: "Ногти", ServiceID: 5, ServiceName: "Маникюр", Count: 4, Total: 6000},
	}
}

func TestService_Monthly(t *testing.T) {
	repo := &fakeRepo{lines: sampleLines()}
	svc := NewService(repo, nopLogger{})

	report, err := svc.Monthly(context.Background(), 2030, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 9, report.TotalCount)
	assert.Equal(t, 12100, report.Total)
	assert.Equal(t, map[int64]int{1: 6100, 2: 6000}, report.HallTotals())

	_, err = svc.Monthly(context.Background(), 2030, 13, nil)
	require.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestExportXLSX(t *testing.T) {
	report := &domain.MonthlyReport{Year: 2030, Month: 3, Lines: sampleLines(), TotalCount: 9, Total: 12100}

	var buf bytes.Buffer
	require.NoError(t, ExportXLSX(report, &buf))
	assert.Equal(t, "revenue_2030_03.xlsx", FileName(report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Отчет о выручке: Март 2030", title)

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	// заголовок, шапка, 3 строки, 2 итога по залам, общий итог
	require.Len(t, rows, 8)
	assert.Equal(t, []string{"Ногти", "Маникюр", "4", "6000"}, rows[4])
	assert.Equal(t, []string{"ИТОГО", "", "9", "12100"}, rows[7])
}
