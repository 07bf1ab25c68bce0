package backend

import (
	"context"
	"fmt"
)

// Health succeeds when the backend answers its health endpoint with 2xx.
func (c *Client) Health(ctx context.Context) error {
	if err := c.getJSON(ctx, healthPath, nil); err != nil {
		return fmt.Errorf("backend health check: %w", err)
	}
	return nil
}
