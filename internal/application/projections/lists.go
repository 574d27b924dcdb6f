package projections

import (
	"context"

	"github.com/jonboulle/clockwork"

	"clubadmin/internal/application/listutil"
	"clubadmin/internal/domain/coach"
	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/event"
	"clubadmin/internal/domain/match"
	"clubadmin/internal/domain/payment"
	"clubadmin/internal/domain/player"
	"clubadmin/internal/domain/team"
	"clubadmin/internal/domain/training"
)

// List tabs for matches and events.
const (
	TabAll      = "all"
	TabUpcoming = "upcoming"
)

// ListTabs are the tabs of the match and event lists, default first.
var ListTabs = []string{TabAll, TabUpcoming}

// PlayerListResult carries one page of the player list.
type PlayerListResult struct {
	Players  []player.Player
	Page     listutil.PageInfo
	Query    listutil.Query
	Total    int
	Active   int
	Inactive int
}

// QueryPlayerList searches players by name, email or document and pages the result.
// PRE: none
// POST: Total/Active/Inactive count every player, not just the matches
func QueryPlayerList(ctx context.Context, q listutil.Query, gw PlayerReader) (PlayerListResult, error) {
	all, err := gw.ListPlayers(ctx)
	if err != nil {
		return PlayerListResult{}, err
	}
	active, inactive := player.CountActive(all)
	hits := listutil.Filter(all, func(p player.Player) bool { return p.Matches(q.Search) })
	rows, info := listutil.Page(hits, q)
	return PlayerListResult{
		Players:  rows,
		Page:     info,
		Query:    q,
		Total:    len(all),
		Active:   active,
		Inactive: inactive,
	}, nil
}

// CoachListResult carries one page of the coach list.
type CoachListResult struct {
	Coaches []coach.Coach
	Page    listutil.PageInfo
	Query   listutil.Query
	Total   int
	Active  int
}

// QueryCoachList searches coaches by name, email or specialization.
func QueryCoachList(ctx context.Context, q listutil.Query, gw CoachReader) (CoachListResult, error) {
	all, err := gw.ListCoaches(ctx)
	if err != nil {
		return CoachListResult{}, err
	}
	hits := listutil.Filter(all, func(c coach.Coach) bool {
		return entity.Search(q.Search, c.FullName(), c.Email, c.Specialization)
	})
	rows, info := listutil.Page(hits, q)
	return CoachListResult{Coaches: rows, Page: info, Query: q, Total: len(all), Active: coach.CountActive(all)}, nil
}

// TeamListResult carries the team list.
type TeamListResult struct {
	Teams  []team.Team
	Page   listutil.PageInfo
	Query  listutil.Query
	Total  int
	Active int
}

// QueryTeamList searches teams by name, category or division.
func QueryTeamList(ctx context.Context, q listutil.Query, gw TeamReader) (TeamListResult, error) {
	all, err := gw.ListTeams(ctx)
	if err != nil {
		return TeamListResult{}, err
	}
	hits := listutil.Filter(all, func(t team.Team) bool {
		return entity.Search(q.Search, t.Name, t.Category, t.Division)
	})
	rows, info := listutil.Page(hits, q)
	return TeamListResult{Teams: rows, Page: info, Query: q, Total: len(all), Active: team.CountActive(all)}, nil
}

// MatchListResult carries one tab of the match list.
type MatchListResult struct {
	Matches []match.Match
	Page    listutil.PageInfo
	Query   listutil.Query
}

// QueryMatchList loads the "all" or "upcoming" tab.
// PRE: q.Tab is one of ListTabs
// POST: The upcoming tab reads /matches/upcoming, never filters locally
func QueryMatchList(ctx context.Context, q listutil.Query, gw MatchReader) (MatchListResult, error) {
	list := gw.ListMatches
	if q.Tab == TabUpcoming {
		list = gw.ListUpcomingMatches
	}
	all, err := list(ctx)
	if err != nil {
		return MatchListResult{}, err
	}
	hits := listutil.Filter(all, func(m match.Match) bool {
		return entity.Search(q.Search, m.HomeTeam.Name, m.AwayTeam.Name, m.Competition)
	})
	rows, info := listutil.Page(hits, q)
	return MatchListResult{Matches: rows, Page: info, Query: q}, nil
}

// TrainingRow is a training with its derived duration.
type TrainingRow struct {
	training.Training
	Minutes int
}

// TrainingListResult carries one page of the training list.
type TrainingListResult struct {
	Trainings []TrainingRow
	Page      listutil.PageInfo
	Query     listutil.Query
}

// QueryTrainingList loads trainings with their duration in minutes.
func QueryTrainingList(ctx context.Context, q listutil.Query, gw TrainingReader) (TrainingListResult, error) {
	all, err := gw.ListTrainings(ctx)
	if err != nil {
		return TrainingListResult{}, err
	}
	hits := listutil.Filter(all, func(t training.Training) bool {
		return entity.Search(q.Search, t.Title, t.Team.Name)
	})
	page, info := listutil.Page(hits, q)
	rows := make([]TrainingRow, len(page))
	for i, t := range page {
		rows[i] = TrainingRow{Training: t, Minutes: training.DurationMinutes(t)}
	}
	return TrainingListResult{Trainings: rows, Page: info, Query: q}, nil
}

// OverdueRow is an overdue payment with its days overdue.
type OverdueRow struct {
	payment.Payment
	Days int
}

// PaymentOverviewDeps holds dependencies for the payment overview.
type PaymentOverviewDeps struct {
	Gateway PaymentReader
	Clock   clockwork.Clock
}

// PaymentOverviewResult carries the payments page.
type PaymentOverviewResult struct {
	Stats         payment.Statistics
	Payments      []payment.Payment
	Page          listutil.PageInfo
	Query         listutil.Query
	Overdue       []OverdueRow
	FailedRegions []string
}

// QueryPaymentOverview loads the statistics cards, the searchable payment
// list and the overdue table in parallel.
// PRE: none
// POST: The payment list is primary; statistics and overdue are secondary regions
func QueryPaymentOverview(ctx context.Context, q listutil.Query, deps PaymentOverviewDeps) (PaymentOverviewResult, error) {
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	var (
		res     = PaymentOverviewResult{Query: q}
		all     []payment.Payment
		overdue []payment.Payment
	)
	r := newRegions(ctx)
	r.primary(func(ctx context.Context) error {
		var err error
		all, err = deps.Gateway.ListPayments(ctx)
		return err
	})
	r.secondary("statistics", func(ctx context.Context) error {
		got, err := deps.Gateway.GetPaymentStatistics(ctx)
		if err != nil {
			return err
		}
		res.Stats = got
		return nil
	})
	r.secondary("overdue", func(ctx context.Context) error {
		got, err := deps.Gateway.ListOverduePayments(ctx)
		if err != nil {
			return err
		}
		overdue = got
		return nil
	})
	failed, err := r.wait()
	if err != nil {
		return PaymentOverviewResult{}, err
	}
	res.FailedRegions = failed

	hits := listutil.Filter(all, func(p payment.Payment) bool { return p.Matches(q.Search) })
	res.Payments, res.Page = listutil.Page(hits, q)

	now := clock.Now()
	for _, p := range overdue {
		if days, ok := payment.OverdueDays(p, now); ok {
			res.Overdue = append(res.Overdue, OverdueRow{Payment: p, Days: days})
		}
	}
	return res, nil
}

// EventListResult carries one tab of the event list.
type EventListResult struct {
	Events []event.Event
	Page   listutil.PageInfo
	Query  listutil.Query
}

// QueryEventList loads the "all" or "upcoming" tab.
func QueryEventList(ctx context.Context, q listutil.Query, gw EventReader) (EventListResult, error) {
	list := gw.ListEvents
	if q.Tab == TabUpcoming {
		list = gw.ListUpcomingEvents
	}
	all, err := list(ctx)
	if err != nil {
		return EventListResult{}, err
	}
	hits := listutil.Filter(all, func(e event.Event) bool {
		return entity.Search(q.Search, e.Title, e.Location)
	})
	rows, info := listutil.Page(hits, q)
	return EventListResult{Events: rows, Page: info, Query: q}, nil
}
