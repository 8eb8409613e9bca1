package client

import (
	"context"

	"github.com/kelsos/meili-go/models"
)

// Health checks whether the server answers on its health endpoint.
func (c *Client) Health(ctx context.Context) (*models.Health, error) {
	var health models.Health
	if err := c.Get(ctx, "/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// IsHealthy reports server availability as a plain boolean.
func (c *Client) IsHealthy(ctx context.Context) bool {
	health, err := c.Health(ctx)
	return err == nil && health.Status == "available"
}

// Version returns the server build information.
func (c *Client) Version(ctx context.Context) (*models.Version, error) {
	var version models.Version
	if err := c.Get(ctx, "/version", &version); err != nil {
		return nil, err
	}
	return &version, nil
}

// CreateDump triggers an export of the whole instance into a dump file.
// The export runs as an asynchronous task.
func (c *Client) CreateDump(ctx context.Context) (*models.TaskInfo, error) {
	var info models.TaskInfo
	if err := c.Post(ctx, "/dumps", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// CreateSnapshot triggers a snapshot of the instance database. The
// snapshot runs as an asynchronous task.
func (c *Client) CreateSnapshot(ctx context.Context) (*models.TaskInfo, error) {
	var info models.TaskInfo
	if err := c.Post(ctx, "/snapshots", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Stats returns instance-wide statistics.
func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := c.Get(ctx, "/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
