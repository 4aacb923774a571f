// Package extract pulls typed facts out of the vendor's display-tree
// payloads. Every extractor returns nil or an empty result when its
// target branch is missing or malformed; absence of vendor data is a
// normal outcome, never an error.
package extract

import (
	"strings"

	"whoopctl/internal/display"
)

// Trend identifiers the aggregator reads from the key-statistic table.
const (
	TrendRHR        = "RHR"
	TrendHRV        = "HRV"
	TrendSteps      = "STEPS"
	TrendSleepHours = "SLEEP_HOURS"
)

// KeyStat carries one named metric's current and 30-day-average
// display strings.
type KeyStat struct {
	Current   *string
	ThirtyDay *string
}

// KeyStatTable is the key-statistic mapping of one overview payload,
// preserving the vendor's item order so fallback scans are
// deterministic. Built fresh per request.
type KeyStatTable struct {
	order []string
	stats map[string]KeyStat
}

// Get looks up a trend identifier.
func (t *KeyStatTable) Get(key string) (KeyStat, bool) {
	ks, ok := t.stats[key]
	return ks, ok
}

// Len reports the number of distinct trend identifiers.
func (t *KeyStatTable) Len() int {
	return len(t.order)
}

// KeyStats scans every KEY_STATISTIC item inside the OVERVIEW pillar.
// The first occurrence of a trend key wins.
func KeyStats(home map[string]any) *KeyStatTable {
	table := &KeyStatTable{stats: make(map[string]KeyStat)}

	items := display.PillarItems(home, "OVERVIEW")
	for _, it := range display.FindAll(items, "KEY_STATISTIC") {
		content := it.Content()
		key, ok := display.String(content, "trend_key")
		if !ok || key == "" {
			continue
		}
		if _, exists := table.stats[key]; exists {
			continue
		}

		var ks KeyStat
		if cur, ok := display.String(content, "current_value_display"); ok {
			ks.Current = &cur
		}
		if avg, ok := display.String(content, "thirty_day_value_display"); ok {
			ks.ThirtyDay = &avg
		}
		table.order = append(table.order, key)
		table.stats[key] = ks
	}
	return table
}

// Identifiers the vendor has been observed using for body weight,
// in preference order. The naming is inconsistent across accounts
// and regions, so the list must stay a literal priority chain.
var weightIdentifiers = []string{"WEIGHT", "BODY_WEIGHT", "WEIGHT_LBS", "WEIGHT_KG", "BODY_MASS"}

// Weight resolves the body-weight key statistic: exact identifier
// matches first, then the first identifier containing "WEIGHT"
// case-insensitively.
func (t *KeyStatTable) Weight() (KeyStat, bool) {
	for _, id := range weightIdentifiers {
		if ks, ok := t.stats[id]; ok {
			return ks, true
		}
	}
	for _, key := range t.order {
		if strings.Contains(strings.ToUpper(key), "WEIGHT") {
			return t.stats[key], true
		}
	}
	return KeyStat{}, false
}
