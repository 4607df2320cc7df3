package export

import (
	"fmt"

	"github.com/lehigh-university-libraries/geopicker/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet excelize creates by default
const SheetName = "Sheet1"

// Header is the first spreadsheet row
var Header = []any{"name", "search-result", "profile_geo"}

// WriteXLSX writes a header row followed by one row per export row
func WriteXLSX(path string, rows []models.ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{row.Name, row.SearchResult, row.ProfileGeo}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}
	return nil
}

// WriteParquet writes the same rows as a parquet file
func WriteParquet(path string, rows []models.ExportRow) error {
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("failed to write parquet file: %w", err)
	}
	return nil
}
