package params

// Policy is one endpoint's parameter table. The engine is generic over it:
// the same pipeline serves jobs, items and activity calls, each supplying
// its own allowed sets. Empty slices disable the corresponding check.
type Policy struct {
	// Resource names the endpoint in warnings.
	Resource string

	// Formats enumerates the accepted format tags. Empty means the
	// endpoint takes no format option.
	Formats []string

	// DefaultFormat is applied when the caller gives no format.
	DefaultFormat string

	// CSVKeys enumerates the accepted csv sub-options.
	CSVKeys []string

	// MetaKeys enumerates the accepted metadata field tags.
	MetaKeys []string

	// PaginationKeys enumerates the accepted pagination sub-options.
	// Top-level occurrences of these keys are folded into the pagination
	// block during normalization.
	PaginationKeys []string

	// NumericBooleans encodes boolean flags as 0/1 for the wire. Item
	// level endpoints keep native booleans instead.
	NumericBooleans bool

	// RequiredInts lists endpoint-specific fields that must be present in
	// integer-or-digit-string form (item_index).
	RequiredInts []string

	// Ints lists optional fields checked for integer form when present.
	Ints []string

	// RequiredStrings lists endpoint-specific fields that must be present
	// as non-empty strings (spider on job scheduling).
	RequiredStrings []string

	// Strings lists optional fields that must be strings when present
	// (field_name).
	Strings []string
}

func (p Policy) allowsFormat(tag string) bool {
	return contains(p.Formats, tag)
}

func (p Policy) allowsCSVKey(key string) bool {
	return contains(p.CSVKeys, key)
}

func (p Policy) allowsMetaKey(key string) bool {
	return contains(p.MetaKeys, key)
}

func (p Policy) allowsPaginationKey(key string) bool {
	return contains(p.PaginationKeys, key)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
