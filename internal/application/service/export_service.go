package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/salescope/salescope-api/internal/domain/entity"
	"github.com/salescope/salescope-api/internal/domain/repository"
)

// exportColumns is the header row shared by CSV and XLSX exports.
var exportColumns = []string{"Customer", "Product", "Quantity", "UnitPriceAtSale", "SoldAt", "Total"}

// ExportService renders sales as downloadable CSV or XLSX files.
type ExportService struct {
	saleRepo repository.SaleRepository
}

// NewExportService creates a new export service
func NewExportService(saleRepo repository.SaleRepository) *ExportService {
	return &ExportService{saleRepo: saleRepo}
}

// ExportFilename returns the base filename for an export, without extension.
func ExportFilename(year *int) string {
	if year != nil {
		return fmt.Sprintf("Sales_%d", *year)
	}
	return "Sales_All"
}

// ExportCSV writes all sales (optionally one year) as CSV, oldest first.
func (s *ExportService) ExportCSV(ctx context.Context, year *int) ([]byte, error) {
	sales, err := s.saleRepo.ListForExport(ctx, year)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}
	for i := range sales {
		if err := w.Write(exportRecord(&sales[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExportXLSX writes all sales (optionally one year) as a single-sheet
// workbook, oldest first.
func (s *ExportService) ExportXLSX(ctx context.Context, year *int) ([]byte, error) {
	sales, err := s.saleRepo.ListForExport(ctx, year)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sales"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}

	for rowIdx := range sales {
		record := exportRecord(&sales[rowIdx])
		for colIdx, value := range record {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	// Rough autosize so dates and long names are readable without opening
	// the column picker.
	widths := columnWidths(exportColumns, sales)
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportRecord(sale *entity.Sale) []string {
	customer := ""
	if sale.Customer != nil {
		customer = sale.Customer.Name
	}
	product := ""
	if sale.Product != nil {
		product = sale.Product.Name
	}
	return []string{
		customer,
		product,
		strconv.Itoa(sale.Quantity),
		strconv.FormatFloat(sale.GetUnitPriceAtSaleDecimal(), 'f', 2, 64),
		sale.SoldAt.Format("2006-01-02"),
		strconv.FormatFloat(sale.GetTotalDecimal(), 'f', 2, 64),
	}
}

func columnWidths(header []string, sales []entity.Sale) []float64 {
	widths := make([]float64, len(header))
	for i, h := range header {
		widths[i] = float64(len(h))
	}
	for i := range sales {
		for col, value := range exportRecord(&sales[i]) {
			if w := float64(len(value)); w > widths[col] {
				widths[col] = w
			}
		}
	}
	for i := range widths {
		widths[i] += 2 // padding
		if widths[i] > 60 {
			widths[i] = 60
		}
	}
	return widths
}
