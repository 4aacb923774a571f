// Package stats composes the authenticated fetches and the domain
// extractors into the daily statistics record the CLI renders.
package stats

import "whoopctl/internal/extract"

// DailyStats is the stable output contract. Key names are fixed;
// any field the vendor data cannot resolve is null, never omitted.
type DailyStats struct {
	Date       string             `json:"date"`
	Day        DayBounds          `json:"day"`
	Sleep      SleepStats         `json:"sleep"`
	Steps      Trend              `json:"steps"`
	Weight     WeightStats        `json:"weight"`
	Workouts   []extract.Activity `json:"workouts"`
	Healthspan extract.Healthspan `json:"healthspan"`
}

// DayBounds is the physiological day window.
type DayBounds struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// Trend is a metric's current value and its 30-day average.
type Trend struct {
	Current      *int `json:"current"`
	ThirtyDayAvg *int `json:"thirty_day_avg"`
}

// WeightStats carries body weight with the unit suffix dropped.
type WeightStats struct {
	Current      *float64 `json:"current"`
	ThirtyDayAvg *float64 `json:"thirty_day_avg"`
}

// SleepStats groups everything derived from the sleep payloads plus
// the sleep-related key statistics.
type SleepStats struct {
	Score            *int           `json:"score"`
	Hours            *string        `json:"hours"`
	HoursVsNeeded    *int           `json:"hours_vs_needed"`
	Efficiency       *int           `json:"efficiency"`
	RestingHeartRate Trend          `json:"resting_heart_rate"`
	HRV              Trend          `json:"hrv"`
	BedTime          *string        `json:"bed_time"`
	WakeTime         *string        `json:"wake_time"`
	Stages           extract.Stages `json:"stages"`
}
