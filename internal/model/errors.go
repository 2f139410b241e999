package model

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrMissingCredential is returned when the search/scrape service key is absent.
var ErrMissingCredential = errors.New("missing FIRECRAWL_API_KEY")

// ErrAIDisabled is returned by the no-op provider when no inference backend is configured.
var ErrAIDisabled = errors.New("ai provider not configured")

// HTTPError is a non-2xx response from the search service or an inference
// backend.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Transient reports whether the request may succeed if repeated: 429 and
// any 5xx.
func (e *HTTPError) Transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}
