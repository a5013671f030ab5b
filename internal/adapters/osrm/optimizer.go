// Package osrm implements ports.RouteOptimizer over the HTTP route
// optimization service.
package osrm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/planora/planora/pkg/ports"
)

// Client calls the optimizer's POST endpoint with a bare waypoint list and
// decodes the ordered result. Optimizer failures come back as a 200 with
// success=false; the coordinator handles those, not this client.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the optimizer at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Optimize(ctx context.Context, waypoints []ports.Waypoint) (*ports.RouteResult, error) {
	body, err := json.Marshal(waypoints)
	if err != nil {
		return nil, fmt.Errorf("encode waypoints: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/route/optimize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("optimizer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("optimizer returned %s", resp.Status)
	}

	var result ports.RouteResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode optimizer response: %w", err)
	}
	return &result, nil
}
