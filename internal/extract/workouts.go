package extract

import (
	"sort"
	"strings"

	"whoopctl/internal/display"
	"whoopctl/internal/normalize"
)

// Activity is one workout normalized from either source tree.
type Activity struct {
	Name     string  `json:"name"`
	Start    *string `json:"start"`
	End      *string `json:"end"`
	Duration *string `json:"duration"`
}

// Workouts collects ACTIVITY entries from the overview's ITEMS_CARD
// items and the strain tree's top-level items, excludes sleep,
// normalizes names and times, deduplicates on (name, start, end) with
// the first occurrence winning, and sorts ascending by start time.
// Missing start times sort first.
func Workouts(home, strain map[string]any) []Activity {
	var raw []display.Item
	raw = append(raw, overviewActivities(home)...)
	raw = append(raw, display.FindAll(display.Items(strain), "ACTIVITY")...)

	out := make([]Activity, 0, len(raw))
	seen := make(map[string]struct{})
	for _, it := range raw {
		content := it.Content()
		if content == nil || isSleepActivity(content) {
			continue
		}

		a := normalizeActivity(content)
		if a.Name == "" {
			continue
		}
		key := a.Name + "\x00" + deref(a.Start) + "\x00" + deref(a.End)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return deref(out[i].Start) < deref(out[j].Start)
	})
	return out
}

// overviewActivities returns the ACTIVITY entries nested inside the
// overview tree's ITEMS_CARD items.
func overviewActivities(home map[string]any) []display.Item {
	var out []display.Item
	for _, card := range display.FindAll(display.Items(home), "ITEMS_CARD") {
		for _, entry := range display.AsSlice(card.Content()["items"]) {
			m := display.AsMap(entry)
			if m == nil {
				continue
			}
			it := display.Item(m)
			if it.Type() == "ACTIVITY" {
				out = append(out, it)
			}
		}
	}
	return out
}

// isSleepActivity reports whether an activity's title or type equals
// SLEEP case-insensitively.
func isSleepActivity(content map[string]any) bool {
	title, _ := display.String(content, "title")
	typ, _ := display.String(content, "type")
	return strings.EqualFold(title, "SLEEP") || strings.EqualFold(typ, "SLEEP")
}

func normalizeActivity(content map[string]any) Activity {
	title, _ := display.String(content, "title")
	if title == "" {
		title, _ = display.String(content, "type")
	}

	a := Activity{Name: normalize.HumanizeName(title)}

	during := display.Dig(content, "during")
	lower, _ := display.String(during, "lower_endpoint")
	upper, _ := display.String(during, "upper_endpoint")
	a.Start = normalize.ISO(lower)
	a.End = normalize.ISO(upper)

	startT, okS := normalize.ParseTime(lower)
	endT, okE := normalize.ParseTime(upper)
	if okS && okE {
		a.Duration = normalize.Duration(startT, endT)
	}
	return a
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
