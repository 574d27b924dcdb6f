package clubapi

import (
	"context"

	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/team"
)

// ListTeams fetches every team.
func (c *Client) ListTeams(ctx context.Context) ([]team.Team, error) {
	var out []team.Team
	if err := c.get(ctx, "/teams", "/teams", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTeam fetches one team with its roster.
func (c *Client) GetTeam(ctx context.Context, id entity.ID) (team.Team, error) {
	var out team.Team
	if err := c.get(ctx, idPath("/teams", id, ""), "/teams/:id", &out); err != nil {
		return team.Team{}, err
	}
	return out, nil
}

// CreateTeam creates a team.
func (c *Client) CreateTeam(ctx context.Context, p team.Payload) (team.Team, error) {
	var out team.Team
	if err := c.post(ctx, "/teams", "/teams", p, &out); err != nil {
		return team.Team{}, err
	}
	return out, nil
}

// UpdateTeam patches a team.
func (c *Client) UpdateTeam(ctx context.Context, id entity.ID, p team.Payload) (team.Team, error) {
	var out team.Team
	if err := c.patch(ctx, idPath("/teams", id, ""), "/teams/:id", p, &out); err != nil {
		return team.Team{}, err
	}
	return out, nil
}

// DeleteTeam deletes a team.
func (c *Client) DeleteTeam(ctx context.Context, id entity.ID) error {
	return c.delete(ctx, idPath("/teams", id, ""), "/teams/:id")
}

// AddTeamPlayers adds players to a team's roster.
func (c *Client) AddTeamPlayers(ctx context.Context, id entity.ID, r team.Roster) error {
	return c.post(ctx, idPath("/teams", id, "/players"), "/teams/:id/players", r, nil)
}

// GetTeamStatistics fetches a team's record.
func (c *Client) GetTeamStatistics(ctx context.Context, id entity.ID) (team.Statistics, error) {
	var out team.Statistics
	if err := c.get(ctx, idPath("/teams", id, "/statistics"), "/teams/:id/statistics", &out); err != nil {
		return team.Statistics{}, err
	}
	return out, nil
}
