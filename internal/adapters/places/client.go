// Package places implements ports.PlaceLookup over the HTTP place
// directory service.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/planora/planora/pkg/domain"
)

// Client covers the three lookup shapes the engine stages candidates
// from: free-text search, nearby-by-category, and detail by place id.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the place service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *Client) Search(ctx context.Context, query string) ([]domain.Place, error) {
	q := url.Values{}
	q.Set("query", query)
	return c.fetchList(ctx, "/api/places/manualsearch?"+q.Encode())
}

func (c *Client) Nearby(ctx context.Context, placeType string, lat, lon float64, radiusM int) ([]domain.Place, error) {
	q := url.Values{}
	q.Set("type", placeType)
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("radius_m", strconv.Itoa(radiusM))
	return c.fetchList(ctx, "/api/places/nearby?"+q.Encode())
}

func (c *Client) ByID(ctx context.Context, placeID string) (*domain.Place, error) {
	q := url.Values{}
	q.Set("id", placeID)

	var place domain.Place
	if err := c.get(ctx, "/api/places/byid?"+q.Encode(), &place); err != nil {
		return nil, err
	}
	return &place, nil
}

func (c *Client) fetchList(ctx context.Context, path string) ([]domain.Place, error) {
	var body struct {
		Places []domain.Place `json:"places"`
	}
	if err := c.get(ctx, path, &body); err != nil {
		return nil, err
	}
	return body.Places, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("place request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("place service returned %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode place response: %w", err)
	}
	return nil
}
