// Package geodata provides clients for the two remote geodata services the
// bot queries alongside the catalog: an address geocoder and a cadastral
// lookup. Both are stateless request/response wrappers over JSON HTTP
// endpoints; neither retries.
package geodata

import (
	"errors"
	"net/http"
	"time"
)

// ErrLookup marks a remote lookup that failed in transport, returned a
// non-200 status, or produced a response that could not be decoded. It is
// distinct from a successfully decoded empty result.
var ErrLookup = errors.New("remote lookup failed")

const defaultLookupTimeout = 15 * time.Second

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &http.Client{Timeout: timeout}
}
