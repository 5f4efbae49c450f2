package popup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrFetchFailed is returned when any of the popup settings cannot be loaded.
var ErrFetchFailed = errors.New("popup settings fetch failed")

// Fetcher loads the popup settings for a page view.
type Fetcher interface {
	Fetch(ctx context.Context) (Settings, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (Settings, error)

func (f FetcherFunc) Fetch(ctx context.Context) (Settings, error) {
	return f(ctx)
}

// HTTPFetcher reads the four popup settings from the settings API.
type HTTPFetcher struct {
	baseURL         string
	client          *http.Client
	defaultCooldown float64
}

// NewHTTPFetcher creates a fetcher for the API rooted at baseURL.
// A nil client gets a 10 second timeout.
func NewHTTPFetcher(baseURL string, client *http.Client, defaultCooldown float64) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPFetcher{
		baseURL:         strings.TrimRight(baseURL, "/"),
		client:          client,
		defaultCooldown: defaultCooldown,
	}
}

type settingValue struct {
	Value string `json:"value"`
}

// Fetch issues the four setting requests concurrently and waits for all of
// them. Any failure fails the whole fetch; nothing is retried.
func (f *HTTPFetcher) Fetch(ctx context.Context) (Settings, error) {
	values := make([]string, len(SettingKeys))

	g, gctx := errgroup.WithContext(ctx)
	for i, key := range SettingKeys {
		i, key := i, key
		g.Go(func() error {
			v, err := f.fetchValue(gctx, key)
			if err != nil {
				return err
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Settings{}, err
	}

	byKey := make(map[string]string, len(SettingKeys))
	for i, key := range SettingKeys {
		byKey[key] = values[i]
	}
	return ParseSettings(byKey, f.defaultCooldown), nil
}

func (f *HTTPFetcher) fetchValue(ctx context.Context, key string) (string, error) {
	endpoint := f.baseURL + "/api/settings/" + url.PathEscape(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFetchFailed, key, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFetchFailed, key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s: status %d", ErrFetchFailed, key, resp.StatusCode)
	}

	var body settingValue
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %s: decode: %v", ErrFetchFailed, key, err)
	}
	return body.Value, nil
}
