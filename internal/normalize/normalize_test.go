package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	tests := map[string]struct {
		input  string
		expect *float64
	}{
		"bpm_suffix":        {input: "72 bpm", expect: floatPtr(72)},
		"degrees":           {input: "98.6°F", expect: floatPtr(98.6)},
		"plain_number":      {input: "12345", expect: floatPtr(12345)},
		"negative":          {input: "-2.3 yrs", expect: floatPtr(-2.3)},
		"thousands_commas":  {input: "10,432 steps", expect: floatPtr(10432)},
		"empty":             {input: "", expect: nil},
		"placeholder_dash":  {input: "--", expect: nil},
		"letters_only":      {input: "n/a", expect: nil},
		"stray_punctuation": {input: "..", expect: nil},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Number(tc.input)
			if tc.expect == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tc.expect, *got, 0.0001)
		})
	}
}

func TestInt(t *testing.T) {
	tests := map[string]struct {
		input  string
		expect *int
	}{
		"bpm":            {input: "72 bpm", expect: intPtr(72)},
		"rounds_up":      {input: "98.6°F", expect: intPtr(99)},
		"rounds_down":    {input: "84.3%", expect: intPtr(84)},
		"empty":          {input: "", expect: nil},
		"no_digits":      {input: "unknown", expect: nil},
		"negative_round": {input: "-1.7", expect: intPtr(-2)},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Int(tc.input)
			if tc.expect == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.expect, *got)
		})
	}
}

func TestHumanizeName(t *testing.T) {
	tests := map[string]struct {
		input  string
		expect string
	}{
		"underscores": {input: "HIGH_INTENSITY_INTERVAL_TRAINING", expect: "High Intensity Interval Training"},
		"hyphens":     {input: "rock-climbing", expect: "Rock Climbing"},
		"mixed_case":  {input: "Weightlifting", expect: "Weightlifting"},
		"single":      {input: "RUNNING", expect: "Running"},
		"empty":       {input: "", expect: ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expect, HumanizeName(tc.input))
		})
	}
}

func TestDuration(t *testing.T) {
	base := time.Date(2026, 8, 22, 22, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		end    time.Time
		expect *string
	}{
		"identical_rejected": {end: base, expect: nil},
		"negative_rejected":  {end: base.Add(-time.Minute), expect: nil},
		"hour_and_minutes":   {end: base.Add(time.Hour + 5*time.Minute), expect: strPtr("1h 5m")},
		"minutes_only":       {end: base.Add(7 * time.Minute), expect: strPtr("7m")},
		"seconds_only":       {end: base.Add(45 * time.Second), expect: strPtr("45s")},
		"multi_hour":         {end: base.Add(2*time.Hour + 30*time.Minute), expect: strPtr("2h 30m")},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Duration(base, tc.end)
			if tc.expect == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.expect, *got)
		})
	}
}

func TestDurationMillis(t *testing.T) {
	got := DurationMillis(90 * 60 * 1000)
	require.NotNil(t, got)
	assert.Equal(t, "1h 30m", *got)

	assert.Nil(t, DurationMillis(0))
	assert.Nil(t, DurationMillis(-500))
}

func TestFixTimestamp(t *testing.T) {
	tests := map[string]struct {
		input  string
		expect string
	}{
		"compact_offset":  {input: "2026-08-22T22:41:00.000-0700", expect: "2026-08-22T22:41:00.000-07:00"},
		"already_valid":   {input: "2026-08-22T22:41:00-07:00", expect: "2026-08-22T22:41:00-07:00"},
		"utc_zulu":        {input: "2026-08-23T05:41:00Z", expect: "2026-08-23T05:41:00Z"},
		"positive_offset": {input: "2026-08-23T10:11:00+0530", expect: "2026-08-23T10:11:00+05:30"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expect, FixTimestamp(tc.input))
		})
	}
}

func TestParseTime(t *testing.T) {
	got, ok := ParseTime("2026-08-22T22:41:00-0700")
	require.True(t, ok)
	assert.Equal(t, 22, got.Hour())

	_, ok = ParseTime("not a timestamp")
	assert.False(t, ok)

	_, ok = ParseTime("")
	assert.False(t, ok)
}

func TestISO(t *testing.T) {
	got := ISO("2026-08-22T22:41:00.000-0700")
	require.NotNil(t, got)
	assert.Equal(t, "2026-08-22T22:41:00-07:00", *got)

	assert.Nil(t, ISO("garbage"))
}

func TestClock(t *testing.T) {
	got := Clock("2026-08-22T22:41:00-0700")
	require.NotNil(t, got)
	assert.Equal(t, "10:41 PM", *got)

	morning := Clock("2026-08-23T06:05:00-07:00")
	require.NotNil(t, morning)
	assert.Equal(t, "6:05 AM", *morning)

	assert.Nil(t, Clock(""))
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }
func strPtr(s string) *string     { return &s }
