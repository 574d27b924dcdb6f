package clubapi

import (
	"context"
	"net/url"

	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/player"
	"clubadmin/internal/domain/registration"
)

func idPath(prefix string, id entity.ID, suffix string) string {
	return prefix + "/" + url.PathEscape(id.String()) + suffix
}

// ListPlayers fetches every player.
func (c *Client) ListPlayers(ctx context.Context) ([]player.Player, error) {
	var out []player.Player
	if err := c.get(ctx, "/players", "/players", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPlayer fetches one player.
func (c *Client) GetPlayer(ctx context.Context, id entity.ID) (player.Player, error) {
	var out player.Player
	if err := c.get(ctx, idPath("/players", id, ""), "/players/:id", &out); err != nil {
		return player.Player{}, err
	}
	return out, nil
}

// CreatePlayer posts a composed registration to the route its mode selects.
// PRE: req came from registration.ComposePlayer
// POST: Exactly one POST is issued
func (c *Client) CreatePlayer(ctx context.Context, req registration.Request[registration.PlayerPayload]) (player.Player, error) {
	path := "/players"
	if req.Endpoint == registration.EndpointWithUser {
		path = "/players/with-user"
	}
	var out player.Player
	if err := c.post(ctx, path, path, req.Body, &out); err != nil {
		return player.Player{}, err
	}
	return out, nil
}

// UpdatePlayer patches a player.
func (c *Client) UpdatePlayer(ctx context.Context, id entity.ID, u player.Update) (player.Player, error) {
	var out player.Player
	if err := c.patch(ctx, idPath("/players", id, ""), "/players/:id", u, &out); err != nil {
		return player.Player{}, err
	}
	return out, nil
}

// DeletePlayer deletes a player.
func (c *Client) DeletePlayer(ctx context.Context, id entity.ID) error {
	return c.delete(ctx, idPath("/players", id, ""), "/players/:id")
}

// GetPlayerStatistics fetches a player's counters.
func (c *Client) GetPlayerStatistics(ctx context.Context, id entity.ID) (player.Statistics, error) {
	var out player.Statistics
	if err := c.get(ctx, idPath("/players", id, "/statistics"), "/players/:id/statistics", &out); err != nil {
		return player.Statistics{}, err
	}
	return out, nil
}
