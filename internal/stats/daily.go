package stats

import (
	"context"

	"golang.org/x/sync/errgroup"

	"whoopctl/internal/extract"
	"whoopctl/internal/normalize"
)

// Fetcher is the slice of the authenticated client the aggregator
// needs: the five typed display-tree fetches for one date.
type Fetcher interface {
	FetchHome(ctx context.Context, date string) (map[string]any, error)
	FetchSleep(ctx context.Context, date string) (map[string]any, error)
	FetchSleepLastNight(ctx context.Context, date string) (map[string]any, error)
	FetchStrain(ctx context.Context, date string) (map[string]any, error)
	FetchHealthspan(ctx context.Context, date string) (map[string]any, error)
}

// Build fetches the five payloads for date concurrently and derives
// the daily statistics record. A fetch failure aborts and propagates
// as-is; an extractor finding nothing only leaves its field null.
func Build(ctx context.Context, fetcher Fetcher, date string) (*DailyStats, error) {
	var home, sleep, lastNight, strain, healthspan map[string]any

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { home, err = fetcher.FetchHome(ctx, date); return err })
	g.Go(func() (err error) { sleep, err = fetcher.FetchSleep(ctx, date); return err })
	g.Go(func() (err error) { lastNight, err = fetcher.FetchSleepLastNight(ctx, date); return err })
	g.Go(func() (err error) { strain, err = fetcher.FetchStrain(ctx, date); return err })
	g.Go(func() (err error) { healthspan, err = fetcher.FetchHealthspan(ctx, date); return err })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	keyStats := extract.KeyStats(home)

	out := &DailyStats{
		Date:       date,
		Steps:      trend(keyStats, extract.TrendSteps),
		Weight:     weight(keyStats),
		Workouts:   extract.Workouts(home, strain),
		Healthspan: extract.HealthspanSummary(healthspan),
	}
	out.Day.Start, out.Day.End = extract.DayBounds(home)

	out.Sleep = SleepStats{
		Score:            extract.SleepScore(sleep),
		Hours:            currentDisplay(keyStats, extract.TrendSleepHours),
		HoursVsNeeded:    extract.SleepMetric(sleep, extract.MetricHoursVsNeeded),
		Efficiency:       extract.SleepMetric(sleep, extract.MetricSleepEfficiency),
		RestingHeartRate: trend(keyStats, extract.TrendRHR),
		HRV:              trend(keyStats, extract.TrendHRV),
		Stages:           extract.SleepStages(sleep),
	}
	out.Sleep.BedTime, out.Sleep.WakeTime = extract.BedWakeTimes(lastNight, home)

	return out, nil
}

func trend(table *extract.KeyStatTable, key string) Trend {
	ks, ok := table.Get(key)
	if !ok {
		return Trend{}
	}
	var t Trend
	if ks.Current != nil {
		t.Current = normalize.Int(*ks.Current)
	}
	if ks.ThirtyDay != nil {
		t.ThirtyDayAvg = normalize.Int(*ks.ThirtyDay)
	}
	return t
}

func weight(table *extract.KeyStatTable) WeightStats {
	ks, ok := table.Weight()
	if !ok {
		return WeightStats{}
	}
	var w WeightStats
	if ks.Current != nil {
		w.Current = normalize.Number(*ks.Current)
	}
	if ks.ThirtyDay != nil {
		w.ThirtyDayAvg = normalize.Number(*ks.ThirtyDay)
	}
	return w
}

// currentDisplay keeps a key statistic's current value as its raw
// display string. Sleep-hours displays ("7:23") do not survive
// numeric stripping.
func currentDisplay(table *extract.KeyStatTable, key string) *string {
	ks, ok := table.Get(key)
	if !ok {
		return nil
	}
	return ks.Current
}
