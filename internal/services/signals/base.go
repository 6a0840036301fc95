package signals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	xhttp "TravelPulse/pkg/http"
)

const defaultUpstreamTimeout = 5 * time.Second

var (
	ErrClientNotInitialized = errors.New("upstream http client not initialized")
	ErrMalformedResponse    = errors.New("malformed upstream response")
)

// HTTPServiceBase centralizes client construction and JSON GET handling for
// the remote signal providers.
type HTTPServiceBase struct {
	baseURL string
	client  *xhttp.Client
}

// NewHTTPServiceBase builds a client bound to baseURL. A non-positive timeout
// falls back to defaultUpstreamTimeout.
func NewHTTPServiceBase(baseURL string, timeout time.Duration) *HTTPServiceBase {
	if timeout <= 0 {
		timeout = defaultUpstreamTimeout
	}
	return &HTTPServiceBase{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// GetJSON issues GET baseURL+path and decodes the JSON body into dest.
// Status errors and xhttp.ErrNoContent stay reachable through errors.Is/As.
func (b *HTTPServiceBase) GetJSON(ctx context.Context, path string, query map[string][]string, dest interface{}) error {
	if b == nil || b.client == nil || b.baseURL == "" {
		return ErrClientNotInitialized
	}
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         b.baseURL + path,
		QueryParams: query,
	}, dest)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	return nil
}

// remote marks providers that perform network I/O.
type remote struct{}

func (remote) Blocking() bool { return true }
