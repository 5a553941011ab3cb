// Package catalog loads and validates the static candidate catalog.
// The default source is a JSON file embedded at compile time; deployments
// that manage catalog rows in PostgreSQL can load from there instead.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/jonathan/relomatcher/internal/types"
)

//go:embed data/countries.json
var catalogFiles embed.FS

// Catalog is the immutable set of candidate records. It is loaded once at
// startup and shared read-only across all requests.
type Catalog struct {
	records []types.CandidateRecord
	byCode  map[string]*types.CandidateRecord
}

// Load parses and validates the embedded catalog.
func Load() (*Catalog, error) {
	data, err := catalogFiles.ReadFile("data/countries.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}
	return FromJSON(data)
}

// FromJSON builds a catalog from raw JSON. Every record is validated and
// codes must be unique; a bad catalog is a startup error, never a request error.
func FromJSON(data []byte) (*Catalog, error) {
	var records []types.CandidateRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	return FromRecords(records)
}

// FromRecords builds a catalog from already-decoded records.
func FromRecords(records []types.CandidateRecord) (*Catalog, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	byCode := make(map[string]*types.CandidateRecord, len(records))
	for i := range records {
		rec := &records[i]
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog record: %w", err)
		}
		if _, exists := byCode[rec.Code]; exists {
			return nil, fmt.Errorf("duplicate candidate code %s in catalog", rec.Code)
		}
		byCode[rec.Code] = rec
	}

	return &Catalog{records: records, byCode: byCode}, nil
}

// Records returns all candidate records in catalog order.
func (c *Catalog) Records() []types.CandidateRecord {
	return c.records
}

// Get returns the record for a code, or nil if unknown.
func (c *Catalog) Get(code string) *types.CandidateRecord {
	return c.byCode[code]
}

// Len returns the number of candidates.
func (c *Catalog) Len() int {
	return len(c.records)
}
