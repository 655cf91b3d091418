package importer

import (
	"fmt"
	"io"

	"github.com/debt-discipline/debts/internal/ledger"
)

// JSONParser reads the export format: a JSON array of debt objects.
type JSONParser struct{}

// Format returns the parser name.
func (p *JSONParser) Format() string { return "json" }

// Parse decodes JSON keeping numbers exact.
func (p *JSONParser) Parse(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading JSON: %w", err)
	}
	return ledger.DecodeBatch(data)
}
