package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/salescope/salescope-api/pkg/apperror"
)

// Required columns, matched by header name, case-sensitively. Column order
// is free and extra columns are ignored.
var saleCSVColumns = []string{"Customer", "Product", "Quantity", "UnitPrice", "SoldAt"}

// SaleCSVRow holds one raw data row from an upload. Fields stay as strings
// here; interpretation (and per-row error handling) happens during import.
type SaleCSVRow struct {
	Line      int
	Customer  string
	Product   string
	Quantity  string
	UnitPrice string
	SoldAt    string
}

// ParseSaleCSV reads an uploaded CSV into raw rows. Structural problems (bad
// header, malformed CSV) fail the whole parse; value-level problems are left
// for the import loop to handle row by row.
func ParseSaleCSV(r io.Reader) ([]SaleCSVRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperror.NewBadRequestError("CSV file is empty")
	}
	if err != nil {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("failed to read CSV header: %v", err))
	}

	// Excel saves UTF-8 CSVs with a BOM.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	// Columns are located by name; first occurrence wins on duplicates.
	index := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.TrimSpace(col)
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	for _, col := range saleCSVColumns {
		if _, ok := index[col]; !ok {
			return nil, apperror.NewBadRequestError(
				fmt.Sprintf("invalid CSV header: missing required column %q", col))
		}
	}

	var rows []SaleCSVRow
	line := 1 // header was line 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("malformed CSV at line %d: %v", line, err))
		}
		rows = append(rows, SaleCSVRow{
			Line:      line,
			Customer:  record[index["Customer"]],
			Product:   record[index["Product"]],
			Quantity:  record[index["Quantity"]],
			UnitPrice: record[index["UnitPrice"]],
			SoldAt:    record[index["SoldAt"]],
		})
	}

	return rows, nil
}

// soldAtFormats are tried in order; the first that parses wins.
var soldAtFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"1/2/2006",
}

func parseSoldAt(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	for _, layout := range soldAtFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// parseMoneyCents converts a decimal money string into integer cents.
// "10" means 10.00; anything past the second fraction digit is rounded half
// up. The integer and fraction parts are parsed as digit strings so values
// like "1.005" don't fall on binary-float boundaries.
func parseMoneyCents(value string) (int64, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("negative amount %q", value)
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || (hasFrac && fracPart != "" && !isDigits(fracPart)) {
		return 0, fmt.Errorf("invalid amount %q", value)
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || whole > (math.MaxInt64-100)/100 {
		return 0, fmt.Errorf("invalid amount %q", value)
	}

	cents := whole * 100
	if hasFrac && fracPart != "" {
		digits := fracPart
		for len(digits) < 3 {
			digits += "0"
		}
		frac, err := strconv.ParseInt(digits[:2], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", value)
		}
		if digits[2] >= '5' {
			frac++
		}
		cents += frac
	}

	return cents, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func parseQuantity(value string) (int, error) {
	s := strings.TrimSpace(value)
	qty, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", value)
	}
	return qty, nil
}
