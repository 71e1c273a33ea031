package params

import (
	"net/url"
	"strings"

	"github.com/spf13/cast"
)

// Flatten turns a validated set into the ordered key/value list the wire
// wants: nested groupings (pagination, csv params) expand into member pairs
// at the top level, list values expand into one pair per element under the
// same key, and absent or empty values contribute nothing. A set carrying
// an error returns that error instead.
func (s Set) Flatten() (Pairs, error) {
	if s.err != nil {
		return nil, s.err
	}

	out := Pairs{}
	out = appendFlat(out, "format", s.Format)
	for _, p := range s.CSVParams {
		out = appendFlat(out, p.Key, p.Value)
	}
	out = appendFlat(out, "meta", s.Meta)
	out = appendFlat(out, "nodata", s.NoData)
	for _, p := range s.Pagination {
		out = appendFlat(out, p.Key, p.Value)
	}
	for _, p := range s.Extra {
		out = appendFlat(out, p.Key, p.Value)
	}
	return out, nil
}

func appendFlat(out Pairs, key string, v any) Pairs {
	if v == nil {
		return out
	}
	if nested, ok := asPairs(v); ok {
		for _, p := range nested {
			out = appendFlat(out, p.Key, p.Value)
		}
		return out
	}
	if list, ok := toList(v); ok {
		for _, el := range list {
			if scalar, ok := scalarString(el); ok {
				out = append(out, P(key, scalar))
			}
		}
		return out
	}
	if scalar, ok := scalarString(v); ok {
		out = append(out, P(key, scalar))
	}
	return out
}

// scalarString renders a scalar for the wire. Anything that is not a simple
// scalar, or renders empty, contributes no pair.
func scalarString(v any) (string, bool) {
	switch v.(type) {
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		s := cast.ToString(v)
		return s, s != ""
	default:
		return "", false
	}
}

// Encode returns the flattened set as a URL-encoded query or form body
// string, preserving pair order and key multiplicity.
func (s Set) Encode() (string, error) {
	pairs, err := s.Flatten()
	if err != nil {
		return "", err
	}
	return EncodePairs(pairs), nil
}

// Values returns the flattened set as url.Values. Multiplicity of repeated
// keys survives; order of unrelated keys does not.
func (s Set) Values() (url.Values, error) {
	pairs, err := s.Flatten()
	if err != nil {
		return nil, err
	}
	values := make(url.Values, len(pairs))
	for _, p := range pairs {
		values.Add(p.Key, cast.ToString(p.Value))
	}
	return values, nil
}

// EncodePairs URL-encodes an already-flat pair list in order.
func EncodePairs(pairs Pairs) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(cast.ToString(p.Value)))
	}
	return b.String()
}
