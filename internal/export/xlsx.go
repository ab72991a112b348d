package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/claude/clab/internal/models"
	"github.com/claude/clab/internal/schedule"
)

// Sheet names.
const (
	SheetPlanning = "Planning"
	SheetSessions = "Séances"
)

var sessionHeaders = []string{
	"ID", "Semaine", "Jour", "Catégorie", "Séance", "Durée (min)",
	"Distance", "Allure cible", "RPE", "Intensité", "Exercices",
}

// XLSX builds a workbook with the weekly calendar and the session list.
func XLSX(plan []models.WeekBlock) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetPlanning); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSessions); err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("creating style: %w", err)
	}
	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("creating style: %w", err)
	}

	if err := planningSheet(f, plan, header, wrap); err != nil {
		return nil, err
	}
	if err := sessionsSheet(f, plan, header); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func planningSheet(f *excelize.File, plan []models.WeekBlock, header, wrap int) error {
	sheet := SheetPlanning
	cols := append([]string{"Semaine", "Phase", "Volume"}, schedule.Days[:]...)
	for i, h := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(cols), 1)
	if err := f.SetCellStyle(sheet, "A1", last, header); err != nil {
		return fmt.Errorf("styling planning header: %w", err)
	}

	for i, w := range plan {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), w.WeekNumber)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), w.Focus)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), w.VolumeLabel)
		for d, day := range w.Schedule {
			cell, _ := excelize.CoordinatesToCellName(4+d, row)
			f.SetCellValue(sheet, cell, day.Activity+"\n"+day.Focus)
		}
		first, _ := excelize.CoordinatesToCellName(4, row)
		end, _ := excelize.CoordinatesToCellName(len(cols), row)
		f.SetCellStyle(sheet, first, end, wrap)
	}

	f.SetColWidth(sheet, "A", "A", 10)
	f.SetColWidth(sheet, "B", "C", 16)
	f.SetColWidth(sheet, "D", "J", 28)
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	return nil
}

func sessionsSheet(f *excelize.File, plan []models.WeekBlock, header int) error {
	sheet := SheetSessions
	for i, h := range sessionHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(sessionHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", last, header); err != nil {
		return fmt.Errorf("styling sessions header: %w", err)
	}

	row := 2
	for _, rec := range Rows(plan) {
		for i, v := range rec.values() {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "E", "E", 36)
	f.SetColWidth(sheet, "K", "K", 60)
	if row > 2 {
		end, _ := excelize.CoordinatesToCellName(len(sessionHeaders), row-1)
		if err := f.AutoFilter(sheet, "A1:"+end, nil); err != nil {
			return fmt.Errorf("adding filter: %w", err)
		}
	}
	return nil
}
