// Package agent implements ports.Translator over the HTTP command
// translation service.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/planora/planora/pkg/command"
	"github.com/planora/planora/pkg/domain"
)

// Client posts the user's free text plus the current plan and decodes the
// flat command envelope the service answers with.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the translation service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) Translate(ctx context.Context, plan domain.TripPlan, prompt string) (*command.Envelope, error) {
	body, err := json.Marshal(map[string]any{
		"prompt":    prompt,
		"itinerary": plan,
	})
	if err != nil {
		return nil, fmt.Errorf("encode prompt: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/agent/detect-command", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("translation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("translation service returned %s", resp.Status)
	}

	var env command.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &env, nil
}
