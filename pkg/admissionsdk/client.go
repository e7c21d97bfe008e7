// Package admissionsdk provides a small client for the admissions tracker
// HTTP API. Authentication is a bearer token minted by the external auth
// service; the SDK does not refresh tokens.
package admissionsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the admissions tracker service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Token is the bearer access token attached to authenticated requests.
	// Leave empty for the public endpoints (health, docs).
	Token string
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken returns a copy of the client that authenticates with the given
// bearer token.
func (c *Client) WithToken(token string) *Client {
	out := *c
	out.Token = token
	return &out
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doJSON performs a request with an optional JSON body, attaching the bearer
// token when present.
func (c *Client) doJSON(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// decodeJSON decodes the response body into v when the status matches
// wantStatus, and into an *APIError otherwise.
func decodeJSON(resp *http.Response, v any, wantStatus int) error {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != wantStatus {
		var apiErr ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return &APIError{StatusCode: resp.StatusCode, Kind: "unknown"}
		}
		return &APIError{
			StatusCode:  resp.StatusCode,
			Kind:        apiErr.Error,
			Description: apiErr.ErrorDescription,
			Details:     apiErr.Details,
		}
	}

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode  int
	Kind        string
	Description string
	Details     []FieldError
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("admissionsdk: %s (%d): %s", e.Kind, e.StatusCode, e.Description)
	}
	return fmt.Sprintf("admissionsdk: %s (%d)", e.Kind, e.StatusCode)
}
