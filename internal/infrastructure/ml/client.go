package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"CommentsAnalyzer/internal/ports"
)

// Client talks to an external inference service that returns compound
// polarity scores.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.PolarityScorer = (*Client)(nil)

// NewClient creates a reusable HTTP client.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Score sends the comment text and returns the compound score clamped to [-1, 1].
func (c *Client) Score(ctx context.Context, text string) (float64, error) {
	if c.endpoint == "" {
		return 0, fmt.Errorf("inference endpoint is not configured")
	}

	var resp struct {
		Compound *float64 `json:"compound"`
	}
	if err := c.post(ctx, "/polarity", map[string]any{"text": text}, &resp); err != nil {
		return 0, err
	}
	if resp.Compound == nil {
		return 0, fmt.Errorf("decode response: missing compound score")
	}

	score := *resp.Compound
	if math.IsNaN(score) {
		return 0, fmt.Errorf("decode response: compound is NaN")
	}
	return math.Max(-1, math.Min(1, score)), nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
