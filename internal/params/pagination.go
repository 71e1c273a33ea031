package params

import (
	"strings"
)

// NormalizePagination reconciles pagination keys supplied at the top level
// with the nested pagination block. Scattered keys are folded into the
// block with a warning; on conflict the nested block wins and a second
// warning names the values being overridden. The output always carries a
// single pagination key holding the merged mapping. A pagination value that
// is not a pair block passes through untouched; set construction rejects it.
func (e *Engine) NormalizePagination(opts Pairs) Pairs {
	nested := Pairs{}
	if v, ok := opts.Get("pagination"); ok {
		block, isPairs := asPairs(v)
		if !isPairs {
			// Not a pair block; left in place for set construction
			// to reject.
			return opts
		}
		nested = block
	}

	var scattered Pairs
	for _, p := range opts {
		if e.policy.allowsPaginationKey(p.Key) {
			scattered = append(scattered, p)
		}
	}

	if len(scattered) > 0 {
		e.warn.Warn().
			Str("resource", e.policy.Resource).
			Strs("params", scattered.Keys()).
			Msg("pagination parameters should be nested under the pagination key")

		if overridden := commonKeys(scattered, nested); len(overridden) > 0 {
			e.warn.Warn().
				Str("resource", e.policy.Resource).
				Strs("params", overridden).
				Msg("top-level pagination values overridden by the nested pagination block")
		}
	}

	merged := make(Pairs, 0, len(scattered)+len(nested))
	for _, p := range scattered {
		if !nested.Has(p.Key) {
			merged = append(merged, p)
		}
	}
	merged = append(merged, nested...)

	drop := make([]string, 0, len(e.policy.PaginationKeys)+1)
	drop = append(drop, e.policy.PaginationKeys...)
	drop = append(drop, "pagination")

	out := opts.Without(drop...)
	out = append(out, P("pagination", merged))
	return out
}

func commonKeys(a, b Pairs) []string {
	var common []string
	for _, k := range a.Keys() {
		if b.Has(k) {
			common = append(common, k)
		}
	}
	return common
}

// splitID breaks a full-form id into its slash-delimited segments, ignoring
// empty ones.
func splitID(id string) []string {
	var parts []string
	for _, part := range strings.Split(id, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
