package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"whoopctl/internal/output"
	"whoopctl/internal/stats"
	"whoopctl/internal/whoop"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the daily WHOOP summary",
	Long: `Fetch the day's display payloads and print sleep, key statistics,
workouts, and healthspan as a single summary.

Examples:
  whoopctl stats                     # Today
  whoopctl stats --date 2026-08-20   # A specific day
  whoopctl stats --json              # Machine-readable output`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().String("date", "", "day to summarize, YYYY-MM-DD (default: today)")
	statsCmd.Flags().Bool("json", false, "output as JSON")
	statsCmd.Flags().Duration("timeout", 60*time.Second, "overall fetch timeout")
}

func runStats(cmd *cobra.Command, args []string) error {
	date, _ := cmd.Flags().GetString("date")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return &output.CLIError{
			Summary:    fmt.Sprintf("invalid date %q", date),
			Detail:     err.Error(),
			Suggestion: "Use YYYY-MM-DD, e.g. whoopctl stats --date 2026-08-20",
			ExitCode:   output.ExitUsageError,
		}
	}

	client, err := newWhoopClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	logger.Debug("building daily stats", "date", date)

	record, err := stats.Build(ctx, client, date)
	if err != nil {
		return statsError(err)
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}

	renderStats(newPrinter(cmd), record)
	return nil
}

func statsError(err error) error {
	var authErr *whoop.AuthError
	if errors.As(err, &authErr) {
		return &output.CLIError{
			Summary:    "login rejected",
			Detail:     authErr.Error(),
			Suggestion: "Check WHOOP_EMAIL and WHOOP_PASSWORD, then run 'whoopctl auth'",
			ExitCode:   output.ExitAuthError,
		}
	}
	var apiErr *whoop.APIError
	if errors.As(err, &apiErr) {
		return &output.CLIError{
			Summary:    "WHOOP API request failed",
			Detail:     apiErr.Error(),
			Suggestion: "Retry in a moment, or rerun with --verbose for request logs",
			ExitCode:   output.ExitAPIError,
		}
	}
	return fmt.Errorf("building daily stats: %w", err)
}

// renderStats prints the human-readable report. Missing values render
// as "-" so the layout stays stable regardless of payload gaps.
func renderStats(p *output.Printer, s *stats.DailyStats) {
	p.Print("%s", p.Bold("WHOOP summary for "+s.Date))
	if s.Day.Start != nil || s.Day.End != nil {
		p.Print("%s", p.Dim(fmt.Sprintf("Day window: %s to %s", strVal(s.Day.Start), strVal(s.Day.End))))
	}

	p.Header("Sleep")
	p.Print("  Score:           %s", intVal(s.Sleep.Score))
	p.Print("  Hours:           %s", strVal(s.Sleep.Hours))
	p.Print("  Hours vs needed: %s%%", intVal(s.Sleep.HoursVsNeeded))
	p.Print("  Efficiency:      %s%%", intVal(s.Sleep.Efficiency))
	p.Print("  Bed time:        %s", strVal(s.Sleep.BedTime))
	p.Print("  Wake time:       %s", strVal(s.Sleep.WakeTime))
	p.Print("  Stages:          REM %s, deep %s, light %s",
		strVal(s.Sleep.Stages.REM), strVal(s.Sleep.Stages.Deep), strVal(s.Sleep.Stages.Light))

	p.Header("Trends (current / 30-day avg)")
	p.Print("  Resting HR: %s", trendVal(s.Sleep.RestingHeartRate))
	p.Print("  HRV:        %s", trendVal(s.Sleep.HRV))
	p.Print("  Steps:      %s", trendVal(s.Steps))
	p.Print("  Weight:     %s / %s", floatVal(s.Weight.Current), floatVal(s.Weight.ThirtyDayAvg))

	p.Header("Workouts")
	if len(s.Workouts) == 0 {
		p.Print("  none recorded")
	} else {
		table := output.NewTableWithWriter(p.Writer(), []string{"Workout", "Start", "End", "Duration"})
		for _, a := range s.Workouts {
			table.AddRow([]string{a.Name, strVal(a.Start), strVal(a.End), strVal(a.Duration)})
		}
		table.Render()
	}

	p.Header("Healthspan")
	p.Print("  WHOOP age:        %s", floatVal(s.Healthspan.WhoopAge))
	p.Print("  Years difference: %s", floatVal(s.Healthspan.YearsDifference))
	p.Print("  Pace of aging:    %s", floatVal(s.Healthspan.PaceOfAging))
	p.Print("  Next update:      %s", strVal(s.Healthspan.NextUpdate))
}

func strVal(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func intVal(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}

func floatVal(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func trendVal(t stats.Trend) string {
	return intVal(t.Current) + " / " + intVal(t.ThirtyDayAvg)
}
