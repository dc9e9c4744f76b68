package source

import (
	"errors"
	"fmt"
)

// ErrNoAPIURL is returned on a cache miss when no API endpoint is configured.
var ErrNoAPIURL = errors.New("source: no cache file and no api_url configured")

// HTTPStatusError is returned when the API answers with a non-2xx status.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s, body: %s", e.StatusCode, e.URL, e.Body)
}
