// Package client provides an HTTP client for the instock-server API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/karibuclean/instock/internal/metrics"
	"github.com/karibuclean/instock/internal/models"
	"github.com/karibuclean/instock/internal/service"
)

const defaultEndpoint = "http://localhost:8085"

// Client is an HTTP client for a running instock-server.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a client for the given endpoint. An empty endpoint falls back
// to INSTOCK_SERVER_URL, then to the default local address.
func New(endpoint string) *Client {
	if endpoint == "" {
		endpoint = os.Getenv("INSTOCK_SERVER_URL")
	}
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Stats fetches the server's runtime statistics.
func (c *Client) Stats(ctx context.Context) (metrics.Snapshot, error) {
	var snap metrics.Snapshot
	if err := c.get(ctx, "/v1/stats", &snap); err != nil {
		return metrics.Snapshot{}, err
	}
	return snap, nil
}

// Report fetches the inventory valuation report.
func (c *Client) Report(ctx context.Context) (service.Report, error) {
	var rep service.Report
	if err := c.get(ctx, "/v1/report", &rep); err != nil {
		return service.Report{}, err
	}
	return rep, nil
}

// Items fetches the full item listing.
func (c *Client) Items(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := c.get(ctx, "/v1/items", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Healthy reports whether the server answers its health check.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/healthz", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server error: %s - %s", resp.Status, string(body))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
