package whoop

import "time"

// usableMargin guards against a token expiring mid-request: a token
// within five minutes of expiry is treated as already unusable.
const usableMargin = 5 * time.Minute

// Token is a bearer token with its calculated expiry. It is owned
// exclusively by the Client and replaced wholesale on login, never
// mutated in place.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
	IssuedAt    time.Time
}

// Usable reports whether the token can still back a request.
func (t *Token) Usable() bool {
	return t != nil && t.AccessToken != "" && time.Now().Before(t.ExpiresAt.Add(-usableMargin))
}

// TimeUntilExpiry returns the duration until the token expires.
func (t *Token) TimeUntilExpiry() time.Duration {
	return time.Until(t.ExpiresAt)
}
