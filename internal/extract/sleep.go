package extract

import (
	"whoopctl/internal/display"
	"whoopctl/internal/normalize"
)

// Contributor-metric ids inside the sleep deep-dive payload.
const (
	MetricSleepEfficiency = "CONTRIBUTORS_TILE_IN_SLEEP_EFFICIENCY"
	MetricHoursVsNeeded   = "CONTRIBUTORS_TILE_HOURS_V_NEEDED"
)

// Sleep-stage zone ids inside the hours-of-sleep bar graph.
const (
	zoneREM   = "REM_SLEEP"
	zoneDeep  = "SWS_SLEEP"
	zoneLight = "LIGHT_SLEEP"
)

// SleepScore reads the first SCORE_GAUGE item's score display as an
// integer.
func SleepScore(sleep map[string]any) *int {
	gauge, ok := display.FindFirst(display.Items(sleep), "SCORE_GAUGE")
	if !ok {
		return nil
	}
	score, ok := display.String(gauge.Content(), "score_display")
	if !ok {
		return nil
	}
	return normalize.Int(score)
}

// SleepMetric scans the CONTRIBUTORS_TILE items' metrics lists for
// the given metric id and parses its status as an integer.
func SleepMetric(sleep map[string]any, metricID string) *int {
	for _, tile := range display.FindAll(display.Items(sleep), "CONTRIBUTORS_TILE") {
		for _, m := range display.AsSlice(tile.Content()["metrics"]) {
			id, ok := display.String(m, "id")
			if !ok || id != metricID {
				continue
			}
			status, ok := display.String(m, "status")
			if !ok {
				continue
			}
			return normalize.Int(status)
		}
	}
	return nil
}

// Stages holds formatted sleep-stage durations.
type Stages struct {
	REM   *string `json:"rem"`
	Deep  *string `json:"deep"`
	Light *string `json:"light"`
}

// SleepStages locates the hours-of-sleep graphing card, its nested
// bar graph, and maps the stage zones to formatted durations. Only
// one matching card is expected, so the first wins.
func SleepStages(sleep map[string]any) Stages {
	var stages Stages
	for _, card := range display.FindAll(display.Items(sleep), "DETAILS_GRAPHING_CARD") {
		content := card.Content()
		if id, _ := display.String(content, "id"); id != "hours_of_sleep" {
			continue
		}
		bar, ok := display.FindTyped(content, "BAR_GRAPH_CARD")
		if !ok {
			return stages
		}
		for _, z := range display.AsSlice(bar.Content()["heart_rate_zones"]) {
			id, _ := display.String(z, "id")
			millis, ok := display.Number(z, "duration_milli")
			if !ok {
				continue
			}
			switch id {
			case zoneREM:
				stages.REM = normalize.DurationMillis(millis)
			case zoneDeep:
				stages.Deep = normalize.DurationMillis(millis)
			case zoneLight:
				stages.Light = normalize.DurationMillis(millis)
			}
		}
		return stages
	}
	return stages
}

// BedWakeTimes resolves bed and wake times as clock strings. The
// explicit start_time/end_time parameters on the last-night payload's
// header are preferred; each missing side independently falls back to
// the sleep activity's time window inside the overview tree.
func BedWakeTimes(lastNight, home map[string]any) (bed, wake *string) {
	params := display.Dig(lastNight, "header", "parameters")
	if s, ok := display.String(params, "start_time"); ok {
		bed = normalize.Clock(s)
	}
	if e, ok := display.String(params, "end_time"); ok {
		wake = normalize.Clock(e)
	}
	if bed != nil && wake != nil {
		return bed, wake
	}

	during, ok := sleepActivityWindow(home)
	if !ok {
		return bed, wake
	}
	if bed == nil {
		if s, ok := display.String(during, "lower_endpoint"); ok {
			bed = normalize.Clock(s)
		}
	}
	if wake == nil {
		if e, ok := display.String(during, "upper_endpoint"); ok {
			wake = normalize.Clock(e)
		}
	}
	return bed, wake
}

// sleepActivityWindow finds the sleep-tagged activity's during window
// in the overview tree.
func sleepActivityWindow(home map[string]any) (map[string]any, bool) {
	for _, a := range overviewActivities(home) {
		content := a.Content()
		if isSleepActivity(content) {
			if during := display.AsMap(content["during"]); during != nil {
				return during, true
			}
		}
	}
	return nil, false
}
