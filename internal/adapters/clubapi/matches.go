package clubapi

import (
	"context"

	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/match"
)

// ListMatches fetches every match.
func (c *Client) ListMatches(ctx context.Context) ([]match.Match, error) {
	var out []match.Match
	if err := c.get(ctx, "/matches", "/matches", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUpcomingMatches fetches the matches the server considers upcoming.
func (c *Client) ListUpcomingMatches(ctx context.Context) ([]match.Match, error) {
	var out []match.Match
	if err := c.get(ctx, "/matches/upcoming", "/matches/upcoming", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMatch fetches one match.
func (c *Client) GetMatch(ctx context.Context, id entity.ID) (match.Match, error) {
	var out match.Match
	if err := c.get(ctx, idPath("/matches", id, ""), "/matches/:id", &out); err != nil {
		return match.Match{}, err
	}
	return out, nil
}

// CreateMatch creates a match.
func (c *Client) CreateMatch(ctx context.Context, p match.Payload) (match.Match, error) {
	var out match.Match
	if err := c.post(ctx, "/matches", "/matches", p, &out); err != nil {
		return match.Match{}, err
	}
	return out, nil
}

// UpdateMatch patches a match.
func (c *Client) UpdateMatch(ctx context.Context, id entity.ID, p match.Payload) (match.Match, error) {
	var out match.Match
	if err := c.patch(ctx, idPath("/matches", id, ""), "/matches/:id", p, &out); err != nil {
		return match.Match{}, err
	}
	return out, nil
}

// UpdateMatchScore records the final or running score.
func (c *Client) UpdateMatchScore(ctx context.Context, id entity.ID, s match.Score) (match.Match, error) {
	var out match.Match
	if err := c.patch(ctx, idPath("/matches", id, "/score"), "/matches/:id/score", s, &out); err != nil {
		return match.Match{}, err
	}
	return out, nil
}

// DeleteMatch deletes a match.
func (c *Client) DeleteMatch(ctx context.Context, id entity.ID) error {
	return c.delete(ctx, idPath("/matches", id, ""), "/matches/:id")
}
