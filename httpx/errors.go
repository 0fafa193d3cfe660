package httpx

import (
	"fmt"
	"net/http"

	"github.com/mbolis/quick-feedback/log"
	"github.com/pkg/errors"
)

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	Method string
	URL    string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Code, http.StatusText(e.Code))
}

// Unauthorized reports whether the server refused the session.
func (e *StatusError) Unauthorized() bool {
	return e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden
}

// IsUnauthorized unwraps err looking for a 401/403 StatusError.
func IsUnauthorized(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Unauthorized()
}

// Will log a failed call at the given level, tagged with its code.
// Refused sessions are expected and always go to DEBUG.
func LogFailure(level log.Level, code string, err error) {
	if IsUnauthorized(err) {
		level = log.DebugLevel
	}
	log.LogOp(level, code, err)
}
