package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const sheetName = "Выручка"

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// FileName имя файла выгрузки
func FileName(r *domain.MonthlyReport) string {
	return fmt.Sprintf("revenue_%d_%02d.xlsx", r.Year, r.Month)
}

// ExportXLSX пишет отчет в формате Excel
func ExportXLSX(r *domain.MonthlyReport, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("%w: create sheet: %v", ErrExport, err)
	}
	f.SetActiveSheet(index)

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Отчет о выручке: %s %d", monthNames[r.Month-1], r.Year))
	f.MergeCell(sheetName, "A1", "D1")

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		headerStyle = 0
	}

	for col, title := range []string{"Зал", "Услуга", "Записей", "Сумма, ₽"} {
		cell, _ := excelize.CoordinatesToCellName(col+1, 2)
		f.SetCellValue(sheetName, cell, title)
		if headerStyle != 0 {
			f.SetCellStyle(sheetName, cell, cell, headerStyle)
		}
	}

	row := 3
	for _, line := range r.Lines {
		f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &[]interface{}{
			line.HallName, line.ServiceName, line.Count, line.Total,
		})
		row++
	}

	// Итоги по залам
	hallTotals := r.HallTotals()
	seen := make(map[int64]bool)
	for _, line := range r.Lines {
		if seen[line.HallID] {
			continue
		}
		seen[line.HallID] = true
		f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &[]interface{}{
			line.HallName, "Итого по залу", nil, hallTotals[line.HallID],
		})
		row++
	}

	totalCell := fmt.Sprintf("A%d", row)
	f.SetSheetRow(sheetName, totalCell, &[]interface{}{"ИТОГО", nil, r.TotalCount, r.Total})
	if headerStyle != 0 {
		f.SetCellStyle(sheetName, totalCell, fmt.Sprintf("D%d", row), headerStyle)
	}

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "B", 35)
	f.SetColWidth(sheetName, "C", "D", 14)

	f.DeleteSheet("Sheet1")

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: write file: %v", ErrExport, err)
	}
	return nil
}
