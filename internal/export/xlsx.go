package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"quote-crawler/pkg/models"
)

// SheetName is the only worksheet in the workbook.
const SheetName = "Quotes"

type XLSXExporter struct{}

func (XLSXExporter) Name() string     { return "xlsx" }
func (XLSXExporter) Filename() string { return "quotes.xlsx" }

func (XLSXExporter) Export(w io.Writer, quotes []models.Quote) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"; renaming keeps it the only sheet.
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(models.RowHeaders))
	for i, h := range models.RowHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range models.Rows(quotes) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row.Quote, row.Author, row.Tags}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	_, err := f.WriteTo(w)
	return err
}
