package display

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestItems_WellFormedTree(t *testing.T) {
	tree := decode(t, `{
		"pillars": [
			{"type": "OVERVIEW", "sections": [
				{"items": [
					{"type": "KEY_STATISTIC", "content": {"trend_key": "RHR"}},
					{"type": "ACTIVITY", "content": {"title": "RUNNING"}}
				]}
			]},
			{"type": "SLEEP", "sections": [
				{"items": [{"type": "SCORE_GAUGE", "content": {"score_display": "85"}}]}
			]}
		]
	}`)

	all := Items(tree)
	assert.Len(t, all, 3)

	overview := PillarItems(tree, "OVERVIEW")
	assert.Len(t, overview, 2)

	gauge, ok := FindFirst(all, "SCORE_GAUGE")
	require.True(t, ok)
	score, ok := String(gauge.Content(), "score_display")
	require.True(t, ok)
	assert.Equal(t, "85", score)

	assert.Len(t, FindAll(all, "KEY_STATISTIC"), 1)
}

// Every accessor must degrade to "not found" on malformed trees, not
// panic. The upstream schema changes without notice.
func TestNavigation_MalformedTrees(t *testing.T) {
	trees := map[string]string{
		"empty_object":        `{}`,
		"pillars_not_array":   `{"pillars": "nope"}`,
		"pillar_not_object":   `{"pillars": [42, "x", null]}`,
		"sections_not_array":  `{"pillars": [{"type": "OVERVIEW", "sections": {"a": 1}}]}`,
		"section_not_object":  `{"pillars": [{"sections": [true, 3]}]}`,
		"items_not_array":     `{"pillars": [{"sections": [{"items": "oops"}]}]}`,
		"item_not_object":     `{"pillars": [{"sections": [{"items": [1, null, "x"]}]}]}`,
		"type_not_string":     `{"pillars": [{"sections": [{"items": [{"type": 7}]}]}]}`,
		"content_not_object":  `{"pillars": [{"sections": [{"items": [{"type": "ACTIVITY", "content": []}]}]}]}`,
		"deeply_wrong_shapes": `{"pillars": [{"type": [], "sections": [{"items": [{}]}]}]}`,
	}

	for name, raw := range trees {
		t.Run(name, func(t *testing.T) {
			tree := decode(t, raw)
			assert.NotPanics(t, func() {
				items := Items(tree)
				_, _ = FindFirst(items, "KEY_STATISTIC")
				_ = FindAll(items, "ACTIVITY")
				_ = PillarItems(tree, "OVERVIEW")
				for _, it := range items {
					_ = it.Type()
					_ = it.Content()
				}
			})
		})
	}

	assert.Empty(t, Items(nil))
	assert.Empty(t, PillarItems(nil, "OVERVIEW"))
}

func TestDig(t *testing.T) {
	tree := decode(t, `{"metadata": {"cycle_metadata": {"during": {"upper_endpoint": "2026-08-23T04:00:00Z", "count": 3}}}}`)

	got, ok := String(tree, "metadata", "cycle_metadata", "during", "upper_endpoint")
	require.True(t, ok)
	assert.Equal(t, "2026-08-23T04:00:00Z", got)

	n, ok := Number(tree, "metadata", "cycle_metadata", "during", "count")
	require.True(t, ok)
	assert.Equal(t, 3.0, n)

	_, ok = String(tree, "metadata", "missing", "during")
	assert.False(t, ok)

	_, ok = String(tree, "metadata", "cycle_metadata", "during", "count")
	assert.False(t, ok, "number leaf is not a string")

	assert.Nil(t, Dig(nil, "anything"))
	assert.Nil(t, Dig("scalar", "anything"))
}

func TestFindTyped(t *testing.T) {
	tree := decode(t, `{
		"pillars": [{"sections": [{"items": [
			{"type": "DETAILS_GRAPHING_CARD", "content": {
				"id": "hours_of_sleep",
				"items": [
					{"type": "LEGEND", "content": {}},
					{"type": "BAR_GRAPH_CARD", "content": {"heart_rate_zones": [{"id": "REM_SLEEP"}]}}
				]
			}}
		]}]}]
	}`)

	card, ok := FindTyped(tree, "BAR_GRAPH_CARD")
	require.True(t, ok)
	zones := AsSlice(card.Content()["heart_rate_zones"])
	require.Len(t, zones, 1)

	_, ok = FindTyped(tree, "NOT_PRESENT")
	assert.False(t, ok)

	_, ok = FindTyped(nil, "BAR_GRAPH_CARD")
	assert.False(t, ok)
}
