package validate

import "time"

// isoLayout is the wire format for dates: millisecond precision with an
// explicit offset (UTC serializes as "Z").
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// IsISODate reports whether s parses as an ISO-8601 instant and
// re-serializing it reproduces s exactly. Partial or ambiguous date strings
// fail the round trip and are rejected.
func IsISODate(s string) bool {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return false
	}
	return t.UTC().Format(isoLayout) == s
}

// ParseDate converts an accepted ISO-8601 string into its instant.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(isoLayout, s)
}
