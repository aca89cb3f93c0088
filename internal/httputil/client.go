package httputil

import (
	"net/http"
	"time"
)

const DefaultTimeout = 10 * time.Second

// NewClient returns an HTTP client with an explicit timeout so a stalled
// upstream cannot pin a request forever.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
	}
}
