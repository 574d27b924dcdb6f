package projections

import (
	"context"

	"clubadmin/internal/domain/coach"
	"clubadmin/internal/domain/player"
	"clubadmin/internal/domain/team"
)

// FormOptionsQuery selects which option lists a form needs.
type FormOptionsQuery struct {
	Teams   bool
	Coaches bool
	Players bool
}

// FormOptionsDeps holds dependencies for the form options.
type FormOptionsDeps struct {
	Teams   TeamReader
	Coaches CoachReader
	Players PlayerReader
}

// FormOptions are the select lists of a create/edit form.
type FormOptions struct {
	Teams         []team.Team
	Coaches       []coach.Coach
	Players       []player.Player
	FailedRegions []string
}

// QueryFormOptions loads the requested select lists in parallel. A failed
// list renders as an empty select rather than failing the form.
// PRE: each requested list has a non-nil reader in deps
// POST: Lists not requested are nil
func QueryFormOptions(ctx context.Context, query FormOptionsQuery, deps FormOptionsDeps) (FormOptions, error) {
	var res FormOptions
	r := newRegions(ctx)
	if query.Teams {
		r.secondary("teams", func(ctx context.Context) error {
			got, err := deps.Teams.ListTeams(ctx)
			if err != nil {
				return err
			}
			res.Teams = got
			return nil
		})
	}
	if query.Coaches {
		r.secondary("coaches", func(ctx context.Context) error {
			got, err := deps.Coaches.ListCoaches(ctx)
			if err != nil {
				return err
			}
			res.Coaches = got
			return nil
		})
	}
	if query.Players {
		r.secondary("players", func(ctx context.Context) error {
			players, err := deps.Players.ListPlayers(ctx)
			if err != nil {
				return err
			}
			res.Players = activeOnly(players)
			return nil
		})
	}
	failed, err := r.wait()
	if err != nil {
		return FormOptions{}, err
	}
	res.FailedRegions = failed
	return res, nil
}
