package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/debt-discipline/debts/internal/model"
)

// ExportFilename is the suggested name for exported ledgers.
const ExportFilename = "debts.json"

// Encode serializes debts compactly for persistence. A nil slice encodes as
// an empty list.
func Encode(debts []model.Debt) ([]byte, error) {
	if debts == nil {
		debts = []model.Debt{}
	}
	data, err := json.Marshal(debts)
	if err != nil {
		return nil, fmt.Errorf("encoding debts: %w", err)
	}
	return data, nil
}

// EncodePretty serializes debts with two-space indentation for export.
func EncodePretty(debts []model.Debt) ([]byte, error) {
	if debts == nil {
		debts = []model.Debt{}
	}
	data, err := json.MarshalIndent(debts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding debts: %w", err)
	}
	return data, nil
}

// DecodeBatch parses JSON into generic values, keeping numbers exact.
func DecodeBatch(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Op: "decode", Err: fmt.Errorf("%w: %v", ErrInvalidJSON, err)}
	}
	if dec.More() {
		return nil, &ParseError{Op: "decode", Err: fmt.Errorf("%w: trailing data", ErrInvalidJSON)}
	}
	return raw, nil
}
