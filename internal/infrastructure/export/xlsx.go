package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kivusafe/portal/internal/core/ports"
)

const sheetName = "Reports"

// XLSX writes the raw report rows into a single "Reports" sheet.
type XLSX struct{}

func (XLSX) Format() string { return "xlsx" }
func (XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (XLSX) FileName() string { return "reports.xlsx" }

func (XLSX) Export(w io.Writer, view *ports.DashboardView) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, r := range view.Reports {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			string(r.ID), r.Name, r.Email, r.IncidentDate,
			r.Description, r.Category, cellValue(r.Latitude), cellValue(r.Longitude),
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write report %s: %w", r.ID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// cellValue keeps numeric cells numeric and leaves missing ones blank.
func cellValue(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
