// Package exchange implements ports.Converter over the HTTP exchange-rate
// service.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client converts one amount per call. The service takes lowercase
// currency codes and answers either {"amount": n} or {"error": "..."}
// with status 200 either way.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the rate service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Convert(ctx context.Context, amount float64, source, target string) (float64, error) {
	q := url.Values{}
	q.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	q.Set("source", strings.ToLower(source))
	q.Set("target", strings.ToLower(target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/exchangerate?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("rate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate service returned %s", resp.Status)
	}

	var body struct {
		Amount *float64 `json:"amount"`
		Error  string   `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode rate response: %w", err)
	}
	if body.Error != "" {
		return 0, fmt.Errorf("rate service: %s", body.Error)
	}
	if body.Amount == nil {
		return 0, fmt.Errorf("rate service returned no amount")
	}
	return *body.Amount, nil
}
