package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/debt-discipline/debts/internal/ledger"
)

// CSVParser reads a spreadsheet export: a header row naming fields (wire
// names or legacy aliases) and one debt per line. Unknown columns are
// ignored and blank cells count as missing. The completed column also
// accepts true/false spelled out.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads a CSV file into raw records.
func (p *CSVParser) Parse(r io.Reader) (any, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &ledger.ParseError{Op: "import", Err: fmt.Errorf("reading CSV: %w", err)}
	}
	if len(records) == 0 {
		return []any{}, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	list := make([]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		raw := make(map[string]any, len(header))
		for i, cell := range rec {
			if header[i] == "" || strings.TrimSpace(cell) == "" {
				continue
			}
			if header[i] == ledger.FieldCompleted {
				if b, err := strconv.ParseBool(strings.TrimSpace(cell)); err == nil {
					raw[header[i]] = b
					continue
				}
			}
			raw[header[i]] = cell
		}
		list = append(list, raw)
	}
	return list, nil
}
