package extract

import (
	"strings"

	"whoopctl/internal/display"
	"whoopctl/internal/normalize"
)

// nextUpdatePrefix is the fixed phrase the vendor prepends to the
// healthspan countdown subtitle.
const nextUpdatePrefix = "next update in"

// Healthspan holds the vendor-computed aging metrics.
type Healthspan struct {
	WhoopAge        *float64 `json:"whoop_age"`
	YearsDifference *float64 `json:"years_difference"`
	PaceOfAging     *float64 `json:"pace_of_aging"`
	NextUpdate      *string  `json:"next_update"`
}

// HealthspanSummary reads the aging metrics from the healthspan
// payload's amoeba style values, preferring the structured numeric
// fields and falling back to their decorated display strings. The
// next-update countdown is parsed out of the free-text navigation
// subtitle.
func HealthspanSummary(payload map[string]any) Healthspan {
	unlocked := display.Dig(payload, "unlocked_content")
	values := display.Dig(unlocked, "whoop_age_amoeba", "style_values")

	return Healthspan{
		WhoopAge:        styleValue(values, "whoop_age"),
		YearsDifference: styleValue(values, "years_difference"),
		PaceOfAging:     styleValue(values, "pace_of_aging"),
		NextUpdate:      nextUpdate(unlocked),
	}
}

// styleValue reads a numeric style value rounded to one decimal, or
// parses the matching "<key>_display" string when the number is
// absent.
func styleValue(values any, key string) *float64 {
	if f, ok := display.Number(values, key); ok {
		rounded := normalize.Round1(f)
		return &rounded
	}
	if s, ok := display.String(values, key+"_display"); ok {
		if f := normalize.Number(s); f != nil {
			rounded := normalize.Round1(*f)
			return &rounded
		}
	}
	return nil
}

func nextUpdate(unlocked any) *string {
	subtitle, ok := display.String(unlocked, "navigation_subtitle")
	if !ok {
		return nil
	}
	trimmed := strings.TrimSpace(subtitle)
	if len(trimmed) >= len(nextUpdatePrefix) &&
		strings.EqualFold(trimmed[:len(nextUpdatePrefix)], nextUpdatePrefix) {
		trimmed = strings.TrimSpace(trimmed[len(nextUpdatePrefix):])
	}
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
