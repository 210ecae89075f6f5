package register

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/heritage/internal/encoding"
	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

// Expected register columns. Booking and Notes are optional; everything
// else must be present in the header row.
const (
	colDate     = "Date"
	colBooking  = "Booking"
	colCategory = "Category"
	colVendor   = "Vendor"
	colAmount   = "Amount"
	colMethod   = "Method"
	colNotes    = "Notes"
)

// Parser reads CSV exports of the office expense register and produces
// expense params ready to append to the ledger. The header row is located
// by scanning, since exports often carry title and total rows around the
// actual table.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]ledger.ExpenseParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := findHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no register header found: expected at least %s, %s, %s and %s columns",
			colDate, colCategory, colVendor, colAmount)
	}

	var params []ledger.ExpenseParams

	for _, row := range rows[headerIdx+1:] {
		date, ok := parseDate(cell(row, cols, colDate))
		if !ok {
			// Title, blank, or totals row.
			continue
		}

		amount, err := parseAmount(cell(row, cols, colAmount))
		if err != nil || amount <= 0 {
			continue
		}

		vendor := cell(row, cols, colVendor)
		if vendor == "" {
			continue
		}

		params = append(params, ledger.ExpenseParams{
			BookingID: cell(row, cols, colBooking),
			Date:      date,
			Category:  cell(row, cols, colCategory),
			Vendor:    vendor,
			Amount:    amount,
			Method:    parseMethod(cell(row, cols, colMethod)),
			Note:      cell(row, cols, colNotes),
		})
	}

	return params, nil
}

type colIndex map[string]int

// findHeader scans for a row containing the required column names and
// returns the name-to-index mapping plus the header's row index.
func findHeader(rows [][]string) (colIndex, int) {
	required := []string{colDate, colCategory, colVendor, colAmount}

	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, c := range row {
			if name := strings.TrimSpace(c); name != "" {
				cols[name] = i
			}
		}

		matched := true

		for _, name := range required {
			if _, ok := cols[name]; !ok {
				matched = false
				break
			}
		}

		if matched {
			return cols, rowIdx
		}
	}

	return nil, 0
}

func cell(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006"}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount accepts plain integers and Indian-grouped figures with an
// optional rupee sign, e.g. "₹1,20,000".
func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "₹"))
	s = strings.ReplaceAll(s, ",", "")

	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	return strconv.ParseInt(s, 10, 64)
}

func parseMethod(s string) ledger.Method {
	switch strings.ToLower(s) {
	case "card":
		return ledger.MethodCard
	case "upi":
		return ledger.MethodUPI
	case "bank", "bank transfer", "neft", "rtgs":
		return ledger.MethodBank
	default:
		return ledger.MethodCash
	}
}
