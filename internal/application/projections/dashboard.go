package projections

import (
	"context"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"

	"clubadmin/internal/domain/account"
	"clubadmin/internal/domain/coach"
	"clubadmin/internal/domain/match"
	"clubadmin/internal/domain/payment"
	"clubadmin/internal/domain/player"
	"clubadmin/internal/domain/team"
)

// NextMatchesShown caps the dashboard's upcoming matches list.
const NextMatchesShown = 5

// DashboardGateway is the subset of the club API the dashboard reads.
type DashboardGateway interface {
	ListPlayers(ctx context.Context) ([]player.Player, error)
	ListCoaches(ctx context.Context) ([]coach.Coach, error)
	ListTeams(ctx context.Context) ([]team.Team, error)
	ListUpcomingMatches(ctx context.Context) ([]match.Match, error)
	GetPaymentStatistics(ctx context.Context) (payment.Statistics, error)
}

// DashboardQuery carries input for the dashboard projection.
type DashboardQuery struct {
	Identity account.Identity
}

// DashboardDeps holds dependencies for the dashboard projection.
type DashboardDeps struct {
	Gateway DashboardGateway
	Clock   clockwork.Clock
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	Identity     account.Identity
	Today        time.Time
	QuickActions []account.QuickAction

	ShowPlayers  bool
	PlayerCount  int
	ActiveCount  int
	ShowCoaches  bool
	CoachCount   int
	ShowTeams    bool
	TeamCount    int
	ShowMatches  bool
	NextMatches  []match.Match
	ShowPayments bool
	Payments     payment.Statistics

	// FailedRegions names regions that could not be loaded.
	FailedRegions []string
}

// QueryDashboard loads the dashboard regions the role may see, in parallel.
// PRE: none
// POST: Failed regions are empty and listed in FailedRegions; a remote 401 is returned
// INVARIANT: Regions hidden from the role are never fetched
func QueryDashboard(ctx context.Context, query DashboardQuery, deps DashboardDeps) (DashboardResult, error) {
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	role := query.Identity.Role
	res := DashboardResult{
		Identity:     query.Identity,
		Today:        clock.Now(),
		QuickActions: account.QuickActionsFor(role),
		ShowPlayers:  role.Can(account.NavPlayers),
		ShowCoaches:  role.Can(account.NavCoaches),
		ShowTeams:    role.Can(account.NavTeams),
		ShowMatches:  role.Can(account.NavMatches),
		ShowPayments: role.Can(account.NavPayments),
	}

	r := newRegions(ctx)
	if res.ShowPlayers {
		r.secondary("players", func(ctx context.Context) error {
			players, err := deps.Gateway.ListPlayers(ctx)
			if err != nil {
				return err
			}
			res.PlayerCount = len(players)
			res.ActiveCount, _ = player.CountActive(players)
			return nil
		})
	}
	if res.ShowCoaches {
		r.secondary("coaches", func(ctx context.Context) error {
			coaches, err := deps.Gateway.ListCoaches(ctx)
			if err != nil {
				return err
			}
			res.CoachCount = len(coaches)
			return nil
		})
	}
	if res.ShowTeams {
		r.secondary("teams", func(ctx context.Context) error {
			teams, err := deps.Gateway.ListTeams(ctx)
			if err != nil {
				return err
			}
			res.TeamCount = len(teams)
			return nil
		})
	}
	if res.ShowMatches {
		r.secondary("matches", func(ctx context.Context) error {
			matches, err := deps.Gateway.ListUpcomingMatches(ctx)
			if err != nil {
				return err
			}
			res.NextMatches = nextMatches(matches, NextMatchesShown)
			return nil
		})
	}
	if res.ShowPayments {
		r.secondary("payments", func(ctx context.Context) error {
			stats, err := deps.Gateway.GetPaymentStatistics(ctx)
			if err != nil {
				return err
			}
			res.Payments = stats
			return nil
		})
	}

	failed, err := r.wait()
	if err != nil {
		return DashboardResult{}, err
	}
	slices.Sort(failed)
	res.FailedRegions = failed
	return res, nil
}

// nextMatches sorts by kickoff and keeps the first n.
func nextMatches(matches []match.Match, n int) []match.Match {
	out := slices.Clone(matches)
	slices.SortStableFunc(out, func(a, b match.Match) int {
		return a.MatchDate.Compare(b.MatchDate.Time)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
