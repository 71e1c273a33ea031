package params

import (
	"fmt"
	"strings"
)

// validate runs the ordered check chain. Every stage is a no-op once an
// error has been recorded, so the first failure in pipeline order is the
// one the caller sees.
func (e *Engine) validate(s Set) Set {
	s = e.validateFormat(s)
	s = e.validateMeta(s)
	s = e.validateNoData(s)
	s = e.validatePagination(s)
	s = e.validateExtras(s)
	return s
}

func (e *Engine) validateFormat(s Set) Set {
	if s.err != nil || s.Format == nil {
		return s
	}

	tag, ok := s.Format.(string)
	if !ok || !e.policy.allowsFormat(tag) {
		return s.fail("format", fmt.Sprintf(
			"format must be one of: %s (got %v)",
			strings.Join(e.policy.Formats, ", "), s.Format))
	}

	if tag != "csv" {
		return s
	}
	for _, p := range s.CSVParams {
		if !e.policy.allowsCSVKey(p.Key) {
			return s.fail("csv_param", fmt.Sprintf(
				"csv parameter must be one of: %s (got %s)",
				strings.Join(e.policy.CSVKeys, ", "), p.Key))
		}
	}
	if !s.CSVParams.Has("fields") {
		return s.fail("csv_param", "required attribute 'fields' not provided")
	}
	return s
}

func (e *Engine) validateMeta(s Set) Set {
	if s.err != nil || s.Meta == nil {
		return s
	}

	list, ok := toList(s.Meta)
	if !ok {
		return s.fail("meta", "expected a list")
	}
	for _, el := range list {
		field, isString := el.(string)
		if !isString || !e.policy.allowsMetaKey(field) {
			return s.fail("meta", fmt.Sprintf(
				"meta field must be one of: %s (got %v)",
				strings.Join(e.policy.MetaKeys, ", "), el))
		}
	}
	return s
}

func (e *Engine) validateNoData(s Set) Set {
	if s.err != nil || s.NoData == nil {
		return s
	}

	if e.policy.NumericBooleans {
		if n, ok := s.NoData.(int); ok && (n == 0 || n == 1) {
			return s
		}
	} else if _, ok := s.NoData.(bool); ok {
		return s
	}
	return s.fail("nodata", "expected a boolean value")
}

func (e *Engine) validatePagination(s Set) Set {
	if s.err != nil {
		return s
	}

	for _, p := range s.Pagination {
		if !e.policy.allowsPaginationKey(p.Key) {
			return s.fail("pagination", invalidParam(p.Key, fmt.Sprintf(
				"pagination parameter must be one of: %s",
				strings.Join(e.policy.PaginationKeys, ", "))))
		}
	}

	if count, ok := s.Pagination.Get("count"); ok && !intForm(count) {
		return s.fail("pagination", invalidParam("count",
			fmt.Sprintf("expected an integer (got %v)", count)))
	}

	for _, key := range []string{"start", "startafter"} {
		v, ok := s.Pagination.Get(key)
		if !ok {
			continue
		}
		id, isString := v.(string)
		if !isString {
			return s.fail("pagination", invalidParam(key,
				fmt.Sprintf("expected a string id (got %v)", v)))
		}
		if parts := splitID(id); len(parts) != 4 {
			return s.fail("pagination", invalidParam(key,
				fmt.Sprintf("expected an id with 4 sections (got %q)", id)))
		}
	}

	return e.normalizeIndex(s)
}

// normalizeIndex flattens every index occurrence (repeated keys and list
// values alike) into one ordered list and validates each element, reporting
// the first invalid one in encounter order. The flattened list replaces the
// original occurrences, at the position of the first.
func (e *Engine) normalizeIndex(s Set) Set {
	if !s.Pagination.Has("index") {
		return s
	}

	var flat []any
	for _, v := range s.Pagination.All("index") {
		if list, ok := toList(v); ok {
			flat = append(flat, list...)
		} else {
			flat = append(flat, v)
		}
	}
	for _, el := range flat {
		if !intForm(el) {
			return s.fail("pagination", invalidParam("index",
				fmt.Sprintf("expected an integer (got %v)", el)))
		}
	}

	var rewritten Pairs
	for _, p := range s.Pagination {
		if p.Key != "index" {
			rewritten = append(rewritten, p)
			continue
		}
		if flat != nil {
			rewritten = append(rewritten, P("index", flat))
			flat = nil
		}
	}
	s.Pagination = rewritten
	return s
}

func (e *Engine) validateExtras(s Set) Set {
	if s.err != nil {
		return s
	}

	for _, key := range e.policy.RequiredInts {
		v, ok := s.Extra.Get(key)
		if !ok {
			return s.fail(key, "required parameter not provided")
		}
		if !intForm(v) {
			return s.fail(key, fmt.Sprintf("expected an integer (got %v)", v))
		}
	}
	for _, key := range e.policy.Ints {
		if v, ok := s.Extra.Get(key); ok && !intForm(v) {
			return s.fail(key, fmt.Sprintf("expected an integer (got %v)", v))
		}
	}
	for _, key := range e.policy.RequiredStrings {
		v, ok := s.Extra.Get(key)
		if !ok {
			return s.fail(key, "required parameter not provided")
		}
		if str, isString := v.(string); !isString || str == "" {
			return s.fail(key, fmt.Sprintf("expected a non-empty string (got %v)", v))
		}
	}
	for _, key := range e.policy.Strings {
		if v, ok := s.Extra.Get(key); ok {
			if _, isString := v.(string); !isString {
				return s.fail(key, fmt.Sprintf("expected a string (got %v)", v))
			}
		}
	}
	return s
}

// intForm accepts integers and digit-only strings, the two spellings the
// remote API takes for numeric parameters.
func intForm(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case string:
		if n == "" {
			return false
		}
		for _, r := range n {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// toList accepts the list shapes callers actually hand us.
func toList(v any) ([]any, bool) {
	switch list := v.(type) {
	case []any:
		return list, true
	case []string:
		out := make([]any, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out, true
	case []int:
		out := make([]any, len(list))
		for i, n := range list {
			out[i] = n
		}
		return out, true
	default:
		return nil, false
	}
}
