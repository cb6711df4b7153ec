package api

import (
	"context"
	"fmt"

	"github.com/rohitkumarofficial/reactivities/internal/model"
)

// ListActivities retrieves the full activity collection. Ordering is
// not guaranteed by this layer.
func (c *Client) ListActivities(
	ctx context.Context,
) ([]model.ActivityPayload, error) {
	var payloads []model.ActivityPayload
	if err := c.Get(ctx, "/activities", &payloads); err != nil {
		return nil, err
	}
	return payloads, nil
}

// ActivityDetails retrieves a single activity by identifier.
func (c *Client) ActivityDetails(
	ctx context.Context,
	id string,
) (*model.ActivityPayload, error) {
	var payload model.ActivityPayload
	path := fmt.Sprintf("/activities/%s", id)
	if err := c.Get(ctx, path, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateActivity posts a new activity. The payload must carry its
// identifier; the server returns no body on success.
func (c *Client) CreateActivity(
	ctx context.Context,
	payload model.ActivityPayload,
) error {
	return c.Post(ctx, "/activities", payload, nil)
}

// UpdateActivity replaces an existing activity wholesale.
func (c *Client) UpdateActivity(
	ctx context.Context,
	payload model.ActivityPayload,
) error {
	path := fmt.Sprintf("/activities/%s", payload.ID)
	return c.Put(ctx, path, payload, nil)
}

// DeleteActivity removes an activity by identifier. Deleting an
// identifier the server no longer knows is a server-side concern.
func (c *Client) DeleteActivity(ctx context.Context, id string) error {
	path := fmt.Sprintf("/activities/%s", id)
	return c.Delete(ctx, path)
}

// Attend toggles the current user's attendance on an activity. No
// request body, no response body.
func (c *Client) Attend(ctx context.Context, id string) error {
	path := fmt.Sprintf("/activities/%s/attend", id)
	return c.Post(ctx, path, nil, nil)
}
