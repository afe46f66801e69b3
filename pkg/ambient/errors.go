package ambient

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPStatusError is returned when the API answers with anything but 200 OK.
// Body holds the raw response body as received.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("ambient weather API returned status %d: %s", e.StatusCode, e.Body)
}

// RateLimited reports whether the API rejected the call for exceeding the
// per-key request rate (roughly one call per second).
func (e *HTTPStatusError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// AsHTTPStatusError unwraps err to an *HTTPStatusError if it carries one.
func AsHTTPStatusError(err error) (*HTTPStatusError, bool) {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}
