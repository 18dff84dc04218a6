package db

import "strings"

// Filter maps a field name to a substring pattern. A record matches when any
// one of its entries matches.
type Filter map[string]string

// Match reports whether r satisfies f. Fields that are missing or not strings
// never match. An empty filter matches everything.
func (f Filter) Match(r Record) bool {
	if len(f) == 0 {
		return true
	}
	for field, pattern := range f {
		v, ok := r.String(field)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(v), strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}
