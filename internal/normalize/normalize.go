// Package normalize shapes raw vendor display values into typed,
// display-ready values. The vendor decorates numbers with units and
// emits timestamps with a non-standard timezone offset; everything
// here degrades to nil instead of failing on unparseable input.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Number parses a numeric value out of a decorated display string
// such as "72 bpm" or "98.6°F". Every character except digits, '.'
// and '-' is stripped before parsing. Returns nil when nothing
// parseable remains or the result is not finite.
func Number(s string) *float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Int parses a display string like Number and rounds to the nearest
// integer, so "98.6°F" becomes 99.
func Int(s string) *int {
	f := Number(s)
	if f == nil {
		return nil
	}
	n := int(math.Round(*f))
	return &n
}

// Round1 rounds to one decimal place.
func Round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// HumanizeName turns a vendor activity identifier such as
// "HIGH_INTENSITY_INTERVAL_TRAINING" or "rock-climbing" into a
// title-cased display name.
func HumanizeName(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Duration renders the interval between start and end as a human
// duration. Non-positive intervals are rejected with nil.
func Duration(start, end time.Time) *string {
	return durationString(end.Sub(start))
}

// DurationMillis renders a millisecond count as a human duration.
func DurationMillis(ms float64) *string {
	return durationString(time.Duration(ms) * time.Millisecond)
}

func durationString(d time.Duration) *string {
	if d <= 0 {
		return nil
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	var out string
	switch {
	case h > 0:
		out = fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		out = fmt.Sprintf("%dm", m)
	default:
		out = fmt.Sprintf("%ds", s)
	}
	return &out
}
