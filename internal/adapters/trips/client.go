// Package trips implements ports.TripService over the HTTP trip
// persistence service.
package trips

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/planora/planora/pkg/domain"
	"github.com/planora/planora/pkg/ports"
)

// Client is an authenticated trip-service client. The bearer token rides
// on every request; a 401 maps to domain.ErrSessionExpired and a 404 to
// domain.ErrTripNotFound so callers never see raw status codes.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the trip service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Create(ctx context.Context, token string, trip ports.TripRecord) (ports.TripRecord, error) {
	var out ports.TripRecord
	err := c.do(ctx, token, http.MethodPost, "/api/trips/", trip, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, token string, trip ports.TripRecord) (ports.TripRecord, error) {
	var out ports.TripRecord
	err := c.do(ctx, token, http.MethodPut, "/api/trips/"+trip.ID, trip, &out)
	return out, err
}

func (c *Client) Get(ctx context.Context, token, id string) (ports.TripRecord, error) {
	var out ports.TripRecord
	err := c.do(ctx, token, http.MethodGet, "/api/trips/"+id, nil, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/api/trips/"+id, nil, nil)
}

func (c *Client) List(ctx context.Context, token string) ([]ports.TripRecord, error) {
	var out []ports.TripRecord
	err := c.do(ctx, token, http.MethodGet, "/api/trips/", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, token, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode trip: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("trip request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrSessionExpired
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrTripNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("trip service returned %s", resp.Status)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode trip response: %w", err)
	}
	return nil
}
