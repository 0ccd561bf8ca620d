package model

import (
	"slices"
	"strings"
)

const (
	FilterUrgent    = "urgent"
	FilterImportant = "important"
)

// BuiltinFilters is the fixed catalog. User filters never repeat one of these.
var BuiltinFilters = []string{FilterUrgent, FilterImportant}

func NormalizeFilter(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func IsBuiltinFilter(name string) bool {
	return slices.Contains(BuiltinFilters, NormalizeFilter(name))
}

// NormalizeFilters lowercases and trims every entry, dropping blanks and
// duplicates while keeping first-seen order.
func NormalizeFilters(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		f = NormalizeFilter(f)
		if f == "" || slices.Contains(out, f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func HasFilter(filters []string, name string) bool {
	return slices.Contains(filters, name)
}
