package weather

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/kearth1516-lgtm/my-app/internal"
)

// Client fetches current weather from a configured JSON endpoint. It is
// best-effort: callers treat any failure as "no weather available".
type Client struct {
	url        string
	httpClient *http.Client
	logger     internal.Logger
}

func NewClient(url string, logger internal.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

func (c *Client) Current(ctx context.Context) (map[string]any, error) {
	if c.url == "" {
		return nil, errors.New("weather: no endpoint configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnf("weather: request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.logger.Warnf("weather: endpoint returned %d", resp.StatusCode)
		return nil, errors.New("weather: endpoint returned non-200")
	}
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}
