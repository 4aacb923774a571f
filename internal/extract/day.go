package extract

import (
	"whoopctl/internal/display"
	"whoopctl/internal/normalize"
)

// DayBounds reads the physiological day window from the overview
// payload's cycle metadata. Either side may be absent.
func DayBounds(home map[string]any) (start, end *string) {
	during := display.Dig(home, "metadata", "cycle_metadata", "during")
	if lower, ok := display.String(during, "lower_endpoint"); ok {
		start = normalize.ISO(lower)
	}
	if upper, ok := display.String(during, "upper_endpoint"); ok {
		end = normalize.ISO(upper)
	}
	return start, end
}
