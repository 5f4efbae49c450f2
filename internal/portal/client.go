// Package portal is a small client for the public portal API.
package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"suviet_server/internal/models"
)

// Client reads periods and events from the portal API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// APIError is a non-2xx response from the portal.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("portal api: status %d", e.Status)
	}
	return fmt.Sprintf("portal api: status %d: %s", e.Status, e.Message)
}

// Periods returns all periods in display order.
func (c *Client) Periods(ctx context.Context) ([]models.Period, error) {
	var periods []models.Period
	if err := c.getData(ctx, "/api/periods", &periods); err != nil {
		return nil, err
	}
	return periods, nil
}

// Events returns events, limited to one period when periodSlug is set.
func (c *Client) Events(ctx context.Context, periodSlug string) ([]models.Event, error) {
	path := "/api/events"
	if periodSlug != "" {
		path += "?period=" + url.QueryEscape(periodSlug)
	}
	var events []models.Event
	if err := c.getData(ctx, path, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) getData(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	var body envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := body.Message
		if msg == "" {
			msg = body.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return fmt.Errorf("GET %s: decode: %w", path, decodeErr)
	}
	if err := json.Unmarshal(body.Data, out); err != nil {
		return fmt.Errorf("GET %s: decode data: %w", path, err)
	}
	return nil
}
