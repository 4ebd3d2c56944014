package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps outbound HTTP with the configuration the remote search
// integrations expect.
//
// Example usage:
//
//	client := NewClient()
//
//	// Fetch a JSON search endpoint
//	var out searchResponse
//	err := client.PostJSON(ctx, endpoint, reqBody, &out)
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new outbound HTTP client.
//
// The client is configured with:
//   - 60 second timeout
//   - a browser-like User-Agent header, which the search endpoints require
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: "Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/126.0",
	}
}

// PostJSON sends body JSON-encoded to url and decodes the JSON response
// into out. Pass a nil out to discard the response body.
func (c *Client) PostJSON(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	if out == nil {
		_, err = io.Copy(io.Discard, resp.Body)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
