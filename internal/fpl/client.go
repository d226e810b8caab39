package fpl

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"fpl-cache/internal/config"
)

// Client is a thin wrapper over the public FPL API. It returns raw JSON
// bytes; callers own decoding. It exists to supply fetch functions and warm
// key sets to the cache, not to model FPL data.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates an FPL API client.
func NewClient(cfg *config.FPLConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// Bootstrap fetches the season-wide bootstrap-static payload.
func (c *Client) Bootstrap(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "/bootstrap-static/")
}

// LiveScores fetches live element scores for a gameweek.
func (c *Client) LiveScores(ctx context.Context, gameweek int) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("/event/%d/live/", gameweek))
}

// Fixtures fetches the fixtures for a gameweek.
func (c *Client) Fixtures(ctx context.Context, gameweek int) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("/fixtures/?event=%d", gameweek))
}

// ManagerHistory fetches a manager's season history.
func (c *Client) ManagerHistory(ctx context.Context, managerID int) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("/entry/%d/history/", managerID))
}

// ManagerPicks fetches a manager's squad picks for a gameweek.
func (c *Client) ManagerPicks(ctx context.Context, managerID, gameweek int) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("/entry/%d/event/%d/picks/", managerID, gameweek))
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request to %s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	c.logger.Debug("Fetched FPL API payload",
		zap.String("path", path),
		zap.Int("bytes", len(body)))

	return body, nil
}
