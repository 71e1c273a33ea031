package params

import (
	"fmt"
)

// configureFormat interprets the format option. A scalar tag passes through
// for the format validator. A nested block must hold a single csv key; its
// value becomes the csv sub-parameters. A csv key with siblings fails citing
// the literal misplaced structure, so the common mistake of nesting a csv
// sibling at the wrong level points at what was actually written instead of
// a generic bad-format message.
func (e *Engine) configureFormat(s Set) Set {
	if s.err != nil || s.Format == nil {
		return s
	}

	switch v := s.Format.(type) {
	case string:
		return s
	case Pairs, []Pair:
		block, _ := asPairs(v)
		if !block.Has("csv") {
			// Left for the format validator to reject.
			return s
		}
		if len(block) > 1 {
			return s.fail("format", fmt.Sprintf("multiple values provided: %v", block))
		}
		csv, _ := block.Get("csv")
		s.Format = "csv"
		if sub, ok := asPairs(csv); ok {
			s.CSVParams = sub
		} else {
			return s.fail("csv_param", fmt.Sprintf("expected a list of csv parameters (got %v)", csv))
		}
		return s
	case []any, []string:
		return s.fail("format", "unexpected list value")
	default:
		return s
	}
}
