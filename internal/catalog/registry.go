package catalog

import (
	"sort"

	"github.com/oshifan/hocgsim/internal/dsl"
)

// Catalog is the immutable, loaded map from card number to record.
type Catalog struct {
	records map[string]*Record
}

// New builds and validates a Catalog from a set of records, validating
// each embedded (already parsed) effect and rejecting duplicate numbers. Any
// failure is reported as a CatalogError.
func New(records []*Record) (*Catalog, error) {
	c := &Catalog{records: make(map[string]*Record, len(records))}
	for _, r := range records {
		if _, dup := c.records[r.Number]; dup {
			return nil, &Error{Kind: ErrDuplicateEntry, Number: r.Number}
		}
		for _, e := range r.Effects() {
			if err := dsl.Validate(e); err != nil {
				return nil, &Error{Kind: ErrInvalidEffect, Number: r.Number, Err: err}
			}
		}
		c.records[r.Number] = r
	}
	return c, nil
}

// Lookup returns the record for number, or a CatalogError if none exists.
func (c *Catalog) Lookup(number string) (*Record, error) {
	r, ok := c.records[number]
	if !ok {
		return nil, &Error{Kind: ErrUnknownCardNumber, Number: number}
	}
	return r, nil
}

// Numbers returns every card number in the catalog, in a stable sorted
// order so replay-relevant iteration (e.g. deck legality scans) stays
// deterministic.
func (c *Catalog) Numbers() []string {
	out := make([]string, 0, len(c.records))
	for n := range c.records {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
