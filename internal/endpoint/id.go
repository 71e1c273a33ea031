package endpoint

import (
	"fmt"
	"strings"

	"scrapecloud/internal/params"
)

// CheckProjectID validates the numeric project id every resource path
// starts with.
func CheckProjectID(id string) error {
	if !digits(id) {
		return params.NewError("project_id", fmt.Sprintf("expected an integer (got %q)", id))
	}
	return nil
}

// CheckStorageID validates a storage id of the form
// project[/spider[/job[/item]]]: one to four non-empty, slash-delimited
// sections, the first numeric.
func CheckStorageID(id string) error {
	parts := SplitID(id)
	if len(parts) < 1 || len(parts) > 4 {
		return params.NewError("id", fmt.Sprintf("expected between 1 and 4 sections (got %q)", id))
	}
	if !digits(parts[0]) {
		return params.NewError("id", fmt.Sprintf("expected a numeric project section (got %q)", id))
	}
	return nil
}

// SplitID breaks an id into its slash-delimited sections, ignoring empty
// ones.
func SplitID(id string) []string {
	var parts []string
	for _, part := range strings.Split(id, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
