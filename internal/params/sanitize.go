package params

// synonymTable maps deprecated option spellings to their canonical names.
// Chains resolve fully because resolveSynonym recurses on the replacement.
var synonymTable = map[string]string{
	"includeheaders": "include_headers",
	"line_end":       "lineend",
	"no_data":        "nodata",
	"start_after":    "startafter",
}

// resolveSynonym replaces a deprecated key with its canonical form, warning
// once per substitution. Unknown keys pass through unchanged.
func (e *Engine) resolveSynonym(p Pair) Pair {
	canonical, ok := synonymTable[p.Key]
	if !ok {
		return p
	}
	e.warn.Warn().
		Str("resource", e.policy.Resource).
		Str("param", p.Key).
		Str("canonical", canonical).
		Msg("deprecated parameter name, use the canonical form")
	return e.resolveSynonym(Pair{Key: canonical, Value: p.Value})
}

// Sanitize resolves synonyms and applies value-level coercions across the
// option list, recursing into nested pair blocks. Values that are not pair
// lists pass through untouched; whatever is wrong with them surfaces later,
// on the validation stage that consumes them.
func (e *Engine) Sanitize(opts Pairs) Pairs {
	out := make(Pairs, 0, len(opts))
	for _, p := range opts {
		p = e.resolveSynonym(p)
		p.Value = e.sanitizeValue(p.Key, p.Value)
		out = append(out, p)
	}
	return out
}

func (e *Engine) sanitizeValue(key string, v any) any {
	if nested, ok := asPairs(v); ok {
		return e.Sanitize(nested)
	}
	if b, ok := v.(bool); ok && key == "nodata" && e.policy.NumericBooleans {
		if b {
			return 1
		}
		return 0
	}
	return v
}
