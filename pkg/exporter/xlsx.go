package exporter

import (
	"fmt"
	"io"

	"sevsuctl/pkg/schedule"

	"github.com/xuri/excelize/v2"
)

var xlsxHeader = []any{"День", "Дата", "Время", "Предмет", "Тип", "Аудитория", "Преподаватель", "Группа"}

// SheetName is the worksheet name used for a given week.
func SheetName(week schedule.Week) string {
	return fmt.Sprintf("Неделя %d-%d", week.Week, week.Year)
}

// GenerateXLSX writes the week as a spreadsheet, one row per lesson.
func GenerateXLSX(week schedule.Week, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(week)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "H1", bold)
	}

	row := 2
	for _, day := range week.Days {
		for _, l := range day.Lessons {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := []any{day.Day, day.DateString, l.Time, l.Subject, l.Type, l.Room, l.Teacher, l.Group}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}
	}

	_ = f.SetColWidth(sheet, "A", "B", 14)
	_ = f.SetColWidth(sheet, "C", "C", 16)
	_ = f.SetColWidth(sheet, "D", "D", 40)
	_ = f.SetColWidth(sheet, "E", "H", 20)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
