package export

import (
	"fmt"

	"github.com/shrimpsizemoose/trekker/logger"
	"github.com/xuri/excelize/v2"

	"github.com/shrimpsizemoose/gradehub/internal/models"
	"github.com/shrimpsizemoose/gradehub/internal/scoring"
)

const (
	gradesSheet   = "Grades"
	studentsSheet = "Students"
	modulesSheet  = "Modules"
)

var (
	gradesHeader   = []any{"ID", "Student", "Username", "Module code", "Module", "Score", "Band"}
	studentsHeader = []any{"Student", "Username", "Grades", "Average", "Band"}
	modulesHeader  = []any{"Code", "Name", "MNC", "Grades", "Average"}
)

// Workbook lays grades out on three sheets: every grade in server order,
// per-student averages ranked best first, and per-module averages.
func Workbook(grades []models.Grade, modules []models.Module) (*excelize.File, error) {
	return newWorkbook(func(f *excelize.File) error {
		return fillWorkbook(f, grades, modules)
	})
}

// newWorkbook hands a fresh file to fill and closes it if fill fails.
func newWorkbook(fill func(*excelize.File) error) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fill(f); err != nil {
		if cerr := f.Close(); cerr != nil {
			logger.Warn.Printf("Failed to close workbook: %v", cerr)
		}
		return nil, err
	}
	return f, nil
}

func fillWorkbook(f *excelize.File, grades []models.Grade, modules []models.Module) error {
	if err := f.SetSheetName(f.GetSheetName(0), gradesSheet); err != nil {
		return fmt.Errorf("failed to name grades sheet: %w", err)
	}
	rows := [][]any{gradesHeader}
	for _, g := range grades {
		rows = append(rows, []any{
			g.ID,
			g.Student.FullName(),
			g.Student.Username,
			g.Module.Code,
			g.Module.Name,
			g.Score,
			string(scoring.BandFor(float64(g.Score))),
		})
	}
	if err := writeRows(f, gradesSheet, rows); err != nil {
		return err
	}

	// every student who has a grade, not just the dashboard's top N
	ranked := scoring.TopPerformers(grades, len(grades))
	rows = [][]any{studentsHeader}
	for _, p := range ranked {
		rows = append(rows, []any{
			p.Student.FullName(),
			p.Student.Username,
			p.Grades,
			p.Average,
			string(scoring.BandFor(p.Average)),
		})
	}
	if err := writeSheet(f, studentsSheet, rows); err != nil {
		return err
	}

	rows = [][]any{modulesHeader}
	for _, m := range modules {
		inModule := scoring.FilterByModule(grades, m.Code)
		rows = append(rows, []any{
			m.Code,
			m.Name,
			m.MNC,
			len(inModule),
			scoring.Average(inModule),
		})
	}
	if err := writeSheet(f, modulesSheet, rows); err != nil {
		return err
	}

	return nil
}

// WriteXLSX builds the workbook and saves it to path.
func WriteXLSX(path string, grades []models.Grade, modules []models.Module) error {
	f, err := Workbook(grades, modules)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
