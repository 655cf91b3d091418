// Package importer reads debt lists from files in the supported formats.
// Parsers only decode; every record still goes through the ledger
// normalizer, so any format gets the same healing and defaults.
package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// Parser decodes a file into a list of raw records ([]any holding
// map[string]any values), the shape ledger.ReplaceAll accepts.
type Parser interface {
	Parse(r io.Reader) (any, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Detect picks a parser from an explicit format or, when format is empty,
// from the file extension.
func (r *Registry) Detect(format, fileName string) (Parser, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(fileName), ".")
	}
	if format == "" {
		return nil, fmt.Errorf("cannot tell the format of %q: pass one of %s", fileName, strings.Join(r.Formats(), ", "))
	}
	p := r.Get(format)
	if p == nil {
		return nil, fmt.Errorf("unknown import format %q: must be one of %s", format, strings.Join(r.Formats(), ", "))
	}
	return p, nil
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&JSONParser{})
	r.Register(&CSVParser{})
	return r
}
