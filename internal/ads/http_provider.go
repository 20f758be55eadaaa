package ads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

var (
	ErrNoAdCached  = errors.New("no ad cached")
	ErrBadResponse = errors.New("unexpected ad server response")
)

// HTTPProvider fetches interstitial creatives from an ad server over
// HTTP, caching one at a time the way a mobile ads SDK does.
type HTTPProvider struct {
	client   *http.Client
	endpoint string
	unitID   string

	mu     sync.Mutex
	cached []byte
}

func NewHTTPProvider(endpoint, unitID string) *HTTPProvider {
	return &HTTPProvider{
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: endpoint,
		unitID:   unitID,
	}
}

// Load fetches and caches the next creative for the configured unit.
func (that *HTTPProvider) Load(ctx context.Context) error {
	reqURL := fmt.Sprintf("%s/interstitial?unit=%s", that.endpoint, url.QueryEscape(that.unitID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build ad request: %w", err)
	}

	resp, err := that.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch interstitial: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}

	creative, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read interstitial body: %w", err)
	}

	that.mu.Lock()
	that.cached = creative
	that.mu.Unlock()

	return nil
}

// Show consumes the cached creative. The actual display happens on the
// client, driven by the interstitial directive; here the cache is the
// contract: showing without a loaded ad is an error.
func (that *HTTPProvider) Show(_ context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.cached == nil {
		return ErrNoAdCached
	}

	that.cached = nil

	return nil
}
