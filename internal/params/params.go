// Package params turns loosely-typed caller options into a validated,
// canonical request descriptor for the scraping cloud API. The engine is
// generic over per-endpoint policy tables; endpoints supply the tables and
// get back either a Set ready for query/body encoding or a typed Error
// naming the offending option.
package params

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Pair is a single key/value option. Values may be scalars, []any/[]string
// lists, or a nested Pairs block. Duplicate keys are allowed and carry
// meaning (a repeated index selects several items).
type Pair struct {
	Key   string
	Value any
}

// Pairs is an ordered option list. It resembles a map but preserves both
// encounter order and duplicate keys.
type Pairs []Pair

// P builds a single pair.
func P(key string, value any) Pair {
	return Pair{Key: key, Value: value}
}

// Get returns the first value recorded for key.
func (ps Pairs) Get(key string) (any, bool) {
	for _, p := range ps {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Has reports whether key occurs at least once.
func (ps Pairs) Has(key string) bool {
	_, ok := ps.Get(key)
	return ok
}

// All returns every value recorded for key, in encounter order.
func (ps Pairs) All(key string) []any {
	var vals []any
	for _, p := range ps {
		if p.Key == key {
			vals = append(vals, p.Value)
		}
	}
	return vals
}

// Keys returns the distinct keys in encounter order.
func (ps Pairs) Keys() []string {
	var keys []string
	seen := make(map[string]bool, len(ps))
	for _, p := range ps {
		if !seen[p.Key] {
			seen[p.Key] = true
			keys = append(keys, p.Key)
		}
	}
	return keys
}

// Without returns a copy with every occurrence of the listed keys removed.
func (ps Pairs) Without(keys ...string) Pairs {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	out := make(Pairs, 0, len(ps))
	for _, p := range ps {
		if !drop[p.Key] {
			out = append(out, p)
		}
	}
	return out
}

func (p Pair) String() string {
	return fmt.Sprintf("%s: %v", p.Key, p.Value)
}

func (ps Pairs) String() string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// asPairs reports whether v is a nested pair block.
func asPairs(v any) (Pairs, bool) {
	switch nested := v.(type) {
	case Pairs:
		return nested, true
	case []Pair:
		return Pairs(nested), true
	default:
		return nil, false
	}
}

// Set is the canonical, progressively validated form of one call's options.
// It is threaded by value through the pipeline; each stage returns a new Set
// and becomes a no-op once err is non-nil, so the first failure wins.
type Set struct {
	err *Error

	// Format is the output format tag. It may hold a nested Pairs block
	// until configureFormat has run; afterwards it is always a single
	// string tag (or nil when the endpoint takes no format).
	Format any

	// CSVParams holds the csv sub-options. Non-empty only when Format
	// is "csv".
	CSVParams Pairs

	// Meta is the requested metadata field list, nil when absent.
	Meta any

	// NoData suppresses item data in responses. Carried as 0/1 for wire
	// encoding on storage endpoints, or as a native bool where the
	// endpoint takes one. Nil when absent.
	NoData any

	// Pagination is the merged pagination block. Always a mapping after
	// normalization, never scattered at the top level.
	Pagination Pairs

	// Extra holds endpoint-specific fields (item_index, field_name, job
	// filters) that pass through to the wire after extras validation.
	Extra Pairs
}

// Err returns the validation error recorded on the set, if any.
func (s Set) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// fail records the first error on the set. Later failures are dropped.
func (s Set) fail(param string, detail any) Set {
	if s.err == nil {
		s.err = invalidParam(param, detail)
	}
	return s
}

// Engine runs the normalization and validation pipeline for one endpoint.
// Advisory warnings (synonym substitution, pagination reconciliation) go to
// the injected logger and never affect control flow.
type Engine struct {
	policy Policy
	warn   zerolog.Logger
}

// NewEngine builds an engine over the given policy table. Warnings are
// written to logger.
func NewEngine(policy Policy, logger zerolog.Logger) *Engine {
	return &Engine{policy: policy, warn: logger}
}

// Policy returns the engine's policy table.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Process runs the full pipeline: synonym resolution and sanitization,
// pagination normalization, format configuration and the validator chain.
// On failure the returned error is always a *Error naming the offending
// option; the Set it rides on is not fit for encoding.
func (e *Engine) Process(opts Pairs) (Set, error) {
	opts = e.Sanitize(opts)
	opts = e.NormalizePagination(opts)

	set := e.newSet(opts)
	set = e.configureFormat(set)
	set = e.validate(set)

	if set.err != nil {
		return set, set.err
	}
	return set, nil
}

// newSet splits a sanitized, pagination-normalized option list into the
// structured set. The first occurrence wins for the uniquely-valued keys;
// everything unrecognized lands in Extra for extras validation and
// passthrough encoding.
func (e *Engine) newSet(opts Pairs) Set {
	set := Set{}
	seen := make(map[string]bool, 4)

	for _, p := range opts {
		switch p.Key {
		case "format", "meta", "nodata", "pagination":
			if seen[p.Key] {
				continue
			}
			seen[p.Key] = true
		}

		switch p.Key {
		case "format":
			set.Format = p.Value
		case "meta":
			set.Meta = p.Value
		case "nodata":
			set.NoData = p.Value
		case "pagination":
			if nested, ok := asPairs(p.Value); ok {
				set.Pagination = nested
			} else {
				set = set.fail("pagination", fmt.Sprintf(
					"expected a list of pagination parameters (got %v)", p.Value))
			}
		default:
			set.Extra = append(set.Extra, p)
		}
	}

	if set.Format == nil && e.policy.DefaultFormat != "" {
		set.Format = e.policy.DefaultFormat
	}
	return set
}
