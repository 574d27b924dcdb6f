package clubapi

import (
	"context"

	"clubadmin/internal/domain/coach"
	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/registration"
)

// ListCoaches fetches every coach.
func (c *Client) ListCoaches(ctx context.Context) ([]coach.Coach, error) {
	var out []coach.Coach
	if err := c.get(ctx, "/coaches", "/coaches", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCoach fetches one coach.
func (c *Client) GetCoach(ctx context.Context, id entity.ID) (coach.Coach, error) {
	var out coach.Coach
	if err := c.get(ctx, idPath("/coaches", id, ""), "/coaches/:id", &out); err != nil {
		return coach.Coach{}, err
	}
	return out, nil
}

// CreateCoach posts a composed registration to the route its mode selects.
func (c *Client) CreateCoach(ctx context.Context, req registration.Request[registration.CoachPayload]) (coach.Coach, error) {
	path := "/coaches"
	if req.Endpoint == registration.EndpointWithUser {
		path = "/coaches/with-user"
	}
	var out coach.Coach
	if err := c.post(ctx, path, path, req.Body, &out); err != nil {
		return coach.Coach{}, err
	}
	return out, nil
}

// UpdateCoach patches a coach.
func (c *Client) UpdateCoach(ctx context.Context, id entity.ID, u coach.Update) (coach.Coach, error) {
	var out coach.Coach
	if err := c.patch(ctx, idPath("/coaches", id, ""), "/coaches/:id", u, &out); err != nil {
		return coach.Coach{}, err
	}
	return out, nil
}

// DeleteCoach deletes a coach.
func (c *Client) DeleteCoach(ctx context.Context, id entity.ID) error {
	return c.delete(ctx, idPath("/coaches", id, ""), "/coaches/:id")
}

// GetCoachStatistics fetches a coach's counters.
func (c *Client) GetCoachStatistics(ctx context.Context, id entity.ID) (coach.Statistics, error) {
	var out coach.Statistics
	if err := c.get(ctx, idPath("/coaches", id, "/statistics"), "/coaches/:id/statistics", &out); err != nil {
		return coach.Statistics{}, err
	}
	return out, nil
}
