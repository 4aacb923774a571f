package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"whoopctl/internal/output"
)

// newFakeBackend serves a successful login plus empty display payloads
// for every other endpoint.
func newFakeBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth-service/v3/whoop", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"AuthenticationResult":{"AccessToken":"token-1","ExpiresIn":3600}}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupStatsTest(t *testing.T, baseURL string) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("WHOOP_EMAIL", "user@example.com")
	t.Setenv("WHOOP_PASSWORD", "hunter2")
	t.Setenv("WHOOPCTL_API_BASE_URL", baseURL)
	// Reset flags between test runs to avoid state leaking
	statsCmd.Flags().Set("date", "")
	statsCmd.Flags().Set("json", "false")
}

func TestStats_JSONOutput(t *testing.T) {
	srv := newFakeBackend(t)
	setupStatsTest(t, srv.URL)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"stats", "--date", "2026-08-20", "--json"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("stats --json failed: %v", err)
	}

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("stats --json produced invalid JSON: %v\n%s", err, buf.String())
	}
	if record["date"] != "2026-08-20" {
		t.Errorf("date = %v, want 2026-08-20", record["date"])
	}
	workouts, ok := record["workouts"].([]any)
	if !ok {
		t.Fatalf("workouts is %T, want an array", record["workouts"])
	}
	if len(workouts) != 0 {
		t.Errorf("expected no workouts for empty payloads, got %v", workouts)
	}
}

func TestStats_TextOutput(t *testing.T) {
	srv := newFakeBackend(t)
	setupStatsTest(t, srv.URL)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"stats", "--date", "2026-08-20"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	out := buf.String()
	for _, section := range []string{"Sleep", "Trends", "Workouts", "Healthspan"} {
		if !strings.Contains(out, section) {
			t.Errorf("text output missing %q section. Got:\n%s", section, out)
		}
	}
	if !strings.Contains(out, "none recorded") {
		t.Errorf("expected workout placeholder for empty payloads. Got:\n%s", out)
	}
}

func TestStats_InvalidDate(t *testing.T) {
	setupStatsTest(t, "http://localhost:1")

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"stats", "--date", "tomorrow"})

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for invalid date, got nil")
	}

	var cliErr *output.CLIError
	if !errors.As(err, &cliErr) {
		t.Fatalf("expected *output.CLIError, got %T: %v", err, err)
	}
	if cliErr.ExitCode != output.ExitUsageError {
		t.Errorf("ExitCode = %d, want %d", cliErr.ExitCode, output.ExitUsageError)
	}
}

func TestStats_APIFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth-service/v3/whoop", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"AuthenticationResult":{"AccessToken":"token-1","ExpiresIn":3600}}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	setupStatsTest(t, srv.URL)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"stats", "--date", "2026-08-20"})

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error when every fetch fails, got nil")
	}

	var cliErr *output.CLIError
	if !errors.As(err, &cliErr) {
		t.Fatalf("expected *output.CLIError, got %T: %v", err, err)
	}
	if cliErr.ExitCode != output.ExitAPIError {
		t.Errorf("ExitCode = %d, want %d", cliErr.ExitCode, output.ExitAPIError)
	}
}
