package whoop

import (
	"fmt"
	"strings"
)

// excerptLimit bounds how much of a failed response body is carried
// in errors for diagnostics.
const excerptLimit = 300

// AuthError reports a failed login: a non-success status from the
// auth endpoint or a success response missing the token fields.
type AuthError struct {
	Status  int
	Excerpt string
}

func (e *AuthError) Error() string {
	if e.Status == 0 {
		return "authentication failed: " + e.Excerpt
	}
	return fmt.Sprintf("authentication failed: status %d: %s", e.Status, e.Excerpt)
}

// APIError reports a data fetch that returned a non-success status
// after the one permitted retry-after-reauth.
type APIError struct {
	Status  int
	Path    string
	Excerpt string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api request %s failed: status %d: %s", e.Path, e.Status, e.Excerpt)
}

// bodyExcerpt collapses whitespace and truncates a response body for
// error diagnostics.
func bodyExcerpt(body []byte) string {
	collapsed := strings.Join(strings.Fields(string(body)), " ")
	if len(collapsed) > excerptLimit {
		collapsed = collapsed[:excerptLimit]
	}
	return collapsed
}
