package httpx

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/publicsuffix"
)

// Clients pairs an HTTP client that carries the session cookie with one that
// never does. Both share the same transport and connection pool.
type Clients struct {
	Credentialed *http.Client
	Anonymous    *http.Client
}

// NewClients builds the pair. A zero timeout means requests never time out.
func NewClients(transport http.RoundTripper, timeout time.Duration) (Clients, error) {
	if transport == nil {
		transport = http.DefaultTransport
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return Clients{}, errors.Wrap(err, "httpx.cookie_jar")
	}
	return Clients{
		Credentialed: &http.Client{Transport: transport, Jar: jar, Timeout: timeout},
		Anonymous:    &http.Client{Transport: transport, Timeout: timeout},
	}, nil
}
