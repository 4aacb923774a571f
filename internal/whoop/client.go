// Package whoop implements the authenticated client for the WHOOP
// mobile-backend API: credential login, cached bearer token with
// single-flight refresh, and typed fetches for the five display-tree
// endpoints.
package whoop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultBaseURL is the production mobile-backend host.
	DefaultBaseURL = "https://api.prod.whoop.com"

	// DefaultClientID is the mobile app's public password-grant
	// client id, overridable via configuration.
	DefaultClientID = "9e486f32-f201-4f4f-9025-b4bf44f1c5a3"

	userAgent = "whoopctl/1.0"
)

// Endpoint path templates, parameterized by date (YYYY-MM-DD).
const (
	loginPath      = "/auth-service/v3/whoop"
	homePath       = "/home-service/v1/home"
	sleepPath      = "/home-service/v1/deep-dive/sleep"
	lastNightPath  = "/home-service/v1/deep-dive/sleep/last-night"
	strainPath     = "/home-service/v1/deep-dive/strain"
	healthspanPath = "/healthspan-service/v1/healthspan/bff"
)

// Credentials is the username/password pair supplied once at client
// construction. Never logged.
type Credentials struct {
	Email    string
	Password string
}

// Client owns the credentials, the cached bearer token, and the
// single-flight login coordination. Safe for concurrent use.
type Client struct {
	creds      Credentials
	clientID   string
	baseURL    string
	deviceID   string
	timezone   string
	httpClient *http.Client
	logger     *slog.Logger

	mu    sync.Mutex
	token *Token

	// Single-flight group collapses concurrent logins so the auth
	// endpoint is never hit redundantly. A failed flight clears
	// itself, so the next caller retries cleanly.
	loginGroup singleflight.Group
}

// NewClient creates an authenticated WHOOP client. Empty clientID or
// baseURL fall back to the production defaults.
func NewClient(creds Credentials, clientID, baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if clientID == "" {
		clientID = DefaultClientID
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		creds:    creds,
		clientID: clientID,
		baseURL:  strings.TrimRight(baseURL, "/"),
		deviceID: uuid.NewString(),
		timezone: resolveTimezone(),
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				IdleConnTimeout:       90 * time.Second,
				MaxIdleConns:          10,
				MaxIdleConnsPerHost:   2,
			},
		},
	}
}

// Login performs a password-grant login and replaces the stored
// token. Concurrent callers share a single outstanding attempt and
// all receive its result.
func (c *Client) Login(ctx context.Context) (*Token, error) {
	result, err, shared := c.loginGroup.Do("login", func() (any, error) {
		return c.performLogin(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("login result shared with concurrent caller")
	}
	return result.(*Token), nil
}

func (c *Client) performLogin(ctx context.Context) (*Token, error) {
	payload := map[string]any{
		"AuthParameters": map[string]string{
			"USERNAME": c.creds.Email,
			"PASSWORD": c.creds.Password,
		},
		"ClientId": c.clientID,
		"AuthFlow": "USER_PASSWORD_AUTH",
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setDeviceHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing login request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading login response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("login failed",
			"status_code", resp.StatusCode,
			"content_type", resp.Header.Get("Content-Type"))
		return nil, &AuthError{Status: resp.StatusCode, Excerpt: bodyExcerpt(body)}
	}

	var decoded struct {
		AuthenticationResult struct {
			AccessToken string `json:"AccessToken"`
			ExpiresIn   int    `json:"ExpiresIn"`
		} `json:"AuthenticationResult"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &AuthError{Excerpt: "token not present"}
	}
	result := decoded.AuthenticationResult
	if result.AccessToken == "" || result.ExpiresIn <= 0 {
		return nil, &AuthError{Excerpt: "token not present"}
	}

	now := time.Now()
	token := &Token{
		AccessToken: result.AccessToken,
		ExpiresAt:   now.Add(time.Duration(result.ExpiresIn) * time.Second),
		IssuedAt:    now,
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	c.logger.Info("login succeeded",
		"expires_at", token.ExpiresAt,
		"expires_in_seconds", result.ExpiresIn)

	return token, nil
}

// EnsureValidToken returns the current token, logging in first when
// none exists or its remaining lifetime is inside the safety margin.
func (c *Client) EnsureValidToken(ctx context.Context) (*Token, error) {
	if tok := c.currentToken(); tok.Usable() {
		return tok, nil
	}
	return c.Login(ctx)
}

func (c *Client) currentToken() *Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Get issues an authorized GET and decodes the JSON body. On a 401 it
// re-authenticates at most once: a fresh login is triggered only when
// the token used for this request is still the client's current one
// (a concurrent refresh may already have rotated it), then the
// request is retried with the now-current token before giving up.
func (c *Client) Get(ctx context.Context, path string) (map[string]any, error) {
	token, err := c.EnsureValidToken(ctx)
	if err != nil {
		return nil, err
	}

	body, status, err := c.doGet(ctx, path, token.AccessToken)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized {
		c.logger.Warn("request unauthorized, re-authenticating once", "path", path)

		if cur := c.currentToken(); cur == nil || cur.AccessToken == token.AccessToken {
			if _, err := c.Login(ctx); err != nil {
				return nil, err
			}
		}
		retry := c.currentToken()
		if retry == nil {
			return nil, &APIError{Status: status, Path: path, Excerpt: bodyExcerpt(body)}
		}
		body, status, err = c.doGet(ctx, path, retry.AccessToken)
		if err != nil {
			return nil, err
		}
	}

	if status < 200 || status >= 300 {
		c.logger.Error("api request failed", "path", path, "status_code", status)
		return nil, &APIError{Status: status, Path: path, Excerpt: bodyExcerpt(body)}
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", path, err)
	}
	return payload, nil
}

func (c *Client) doGet(ctx context.Context, path, accessToken string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	c.setDeviceHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("executing request for %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response for %s: %w", path, err)
	}
	return body, resp.StatusCode, nil
}

// setDeviceHeaders attaches the device/locale/timezone metadata the
// mobile backend expects on every call.
func (c *Client) setDeviceHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("x-whoop-device-id", c.deviceID)
	req.Header.Set("x-whoop-device-platform", "android")
	req.Header.Set("x-whoop-locale", "en_US")
	req.Header.Set("x-whoop-time-zone", c.timezone)
}

// FetchHome retrieves the overview display tree for a date.
func (c *Client) FetchHome(ctx context.Context, date string) (map[string]any, error) {
	return c.Get(ctx, datedPath(homePath, date))
}

// FetchSleep retrieves the sleep deep-dive display tree for a date.
func (c *Client) FetchSleep(ctx context.Context, date string) (map[string]any, error) {
	return c.Get(ctx, datedPath(sleepPath, date))
}

// FetchSleepLastNight retrieves the last-night sleep payload for a date.
func (c *Client) FetchSleepLastNight(ctx context.Context, date string) (map[string]any, error) {
	return c.Get(ctx, datedPath(lastNightPath, date))
}

// FetchStrain retrieves the strain deep-dive display tree for a date.
func (c *Client) FetchStrain(ctx context.Context, date string) (map[string]any, error) {
	return c.Get(ctx, datedPath(strainPath, date))
}

// FetchHealthspan retrieves the healthspan summary payload for a date.
func (c *Client) FetchHealthspan(ctx context.Context, date string) (map[string]any, error) {
	return c.Get(ctx, datedPath(healthspanPath, date))
}

func datedPath(path, date string) string {
	return path + "?date=" + url.QueryEscape(date)
}

// resolveTimezone returns the IANA name of the local timezone for the
// x-whoop-time-zone header.
func resolveTimezone() string {
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}
	return "UTC"
}
