package normalize

import (
	"regexp"
	"time"
)

// The vendor emits offsets as ±HHMM instead of the RFC3339 ±HH:MM.
var offsetNoColon = regexp.MustCompile(`([+-]\d{2})(\d{2})$`)

// FixTimestamp repairs the vendor's timezone offset so the string
// parses as RFC3339. Already-valid timestamps pass through unchanged.
func FixTimestamp(s string) string {
	return offsetNoColon.ReplaceAllString(s, "$1:$2")
}

// ParseTime parses a vendor timestamp, repairing the offset first.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, FixTimestamp(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ISO re-renders a vendor timestamp as RFC3339, or nil when it does
// not parse.
func ISO(s string) *string {
	t, ok := ParseTime(s)
	if !ok {
		return nil
	}
	out := t.Format(time.RFC3339)
	return &out
}

// Clock renders a vendor timestamp as a local clock string such as
// "10:41 PM", in the timestamp's own offset.
func Clock(s string) *string {
	t, ok := ParseTime(s)
	if !ok {
		return nil
	}
	out := t.Format("3:04 PM")
	return &out
}
