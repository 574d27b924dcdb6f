package projections

import (
	"context"
	"slices"

	"github.com/jonboulle/clockwork"

	"clubadmin/internal/domain/coach"
	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/event"
	"clubadmin/internal/domain/match"
	"clubadmin/internal/domain/payment"
	"clubadmin/internal/domain/player"
	"clubadmin/internal/domain/team"
	"clubadmin/internal/domain/training"
)

// PlayerDetailQuery carries input for the player profile.
type PlayerDetailQuery struct {
	ID              entity.ID
	IncludePayments bool // only roles that may see payments
}

// PlayerDetailDeps holds dependencies for the player profile.
type PlayerDetailDeps struct {
	Players  PlayerReader
	Payments PaymentReader
}

// PlayerDetailResult carries the player profile.
type PlayerDetailResult struct {
	Player        player.Player
	Stats         *player.Statistics // nil when the statistics region failed
	Payments      []payment.Payment
	FailedRegions []string
}

// QueryPlayerDetail loads a player with statistics and, when allowed, payments.
// PRE: query.ID is non-empty
// POST: A 404 on the player is returned; statistics and payments fail soft
func QueryPlayerDetail(ctx context.Context, query PlayerDetailQuery, deps PlayerDetailDeps) (PlayerDetailResult, error) {
	var res PlayerDetailResult
	r := newRegions(ctx)
	r.primary(func(ctx context.Context) error {
		var err error
		res.Player, err = deps.Players.GetPlayer(ctx, query.ID)
		return err
	})
	r.secondary("statistics", func(ctx context.Context) error {
		stats, err := deps.Players.GetPlayerStatistics(ctx, query.ID)
		if err != nil {
			return err
		}
		res.Stats = &stats
		return nil
	})
	if query.IncludePayments && deps.Payments != nil {
		r.secondary("payments", func(ctx context.Context) error {
			got, err := deps.Payments.ListPaymentsByPlayer(ctx, query.ID)
			if err != nil {
				return err
			}
			res.Payments = got
			return nil
		})
	}
	failed, err := r.wait()
	if err != nil {
		return PlayerDetailResult{}, err
	}
	res.FailedRegions = failed
	return res, nil
}

// CoachDetailResult carries the coach profile.
type CoachDetailResult struct {
	Coach         coach.Coach
	Stats         *coach.Statistics
	FailedRegions []string
}

// QueryCoachDetail loads a coach with statistics.
func QueryCoachDetail(ctx context.Context, id entity.ID, gw CoachReader) (CoachDetailResult, error) {
	var res CoachDetailResult
	r := newRegions(ctx)
	r.primary(func(ctx context.Context) error {
		var err error
		res.Coach, err = gw.GetCoach(ctx, id)
		return err
	})
	r.secondary("statistics", func(ctx context.Context) error {
		stats, err := gw.GetCoachStatistics(ctx, id)
		if err != nil {
			return err
		}
		res.Stats = &stats
		return nil
	})
	failed, err := r.wait()
	if err != nil {
		return CoachDetailResult{}, err
	}
	res.FailedRegions = failed
	return res, nil
}

// TeamDetailDeps holds dependencies for the team page.
type TeamDetailDeps struct {
	Teams   TeamReader
	Players PlayerReader
}

// TeamDetailResult carries the team page.
type TeamDetailResult struct {
	Team team.Team
	Stats *team.Statistics
	// Candidates are active players not yet on the roster, for the add-players form.
	Candidates    []player.Player
	FailedRegions []string
}

// QueryTeamDetail loads a team, its statistics and the roster candidates.
func QueryTeamDetail(ctx context.Context, id entity.ID, deps TeamDetailDeps) (TeamDetailResult, error) {
	var (
		res TeamDetailResult
		all []player.Player
	)
	r := newRegions(ctx)
	r.primary(func(ctx context.Context) error {
		var err error
		res.Team, err = deps.Teams.GetTeam(ctx, id)
		return err
	})
	r.secondary("statistics", func(ctx context.Context) error {
		stats, err := deps.Teams.GetTeamStatistics(ctx, id)
		if err != nil {
			return err
		}
		res.Stats = &stats
		return nil
	})
	r.secondary("players", func(ctx context.Context) error {
		got, err := deps.Players.ListPlayers(ctx)
		if err != nil {
			return err
		}
		all = got
		return nil
	})
	failed, err := r.wait()
	if err != nil {
		return TeamDetailResult{}, err
	}
	res.FailedRegions = failed
	res.Candidates = notIn(all, res.Team.Players)
	return res, nil
}

// MatchDetailResult carries the match page.
type MatchDetailResult struct {
	Match match.Match
}

// QueryMatchDetail loads one match.
func QueryMatchDetail(ctx context.Context, id entity.ID, gw MatchReader) (MatchDetailResult, error) {
	m, err := gw.GetMatch(ctx, id)
	if err != nil {
		return MatchDetailResult{}, err
	}
	return MatchDetailResult{Match: m}, nil
}

// TrainingDetailDeps holds dependencies for the training page.
type TrainingDetailDeps struct {
	Trainings TrainingReader
	Players   PlayerReader
}

// AttendanceRow is one line of the attendance checklist.
type AttendanceRow struct {
	Player   player.Player
	Attended bool
}

// TrainingDetailResult carries the training page.
type TrainingDetailResult struct {
	Training      training.Training
	Minutes       int
	Checklist     []AttendanceRow
	FailedRegions []string
}

// QueryTrainingDetail loads a training and builds the attendance checklist
// from the team roster, falling back to every active player when the
// training's team carries no roster.
func QueryTrainingDetail(ctx context.Context, id entity.ID, deps TrainingDetailDeps) (TrainingDetailResult, error) {
	var (
		res TrainingDetailResult
		all []player.Player
	)
	r := newRegions(ctx)
	r.primary(func(ctx context.Context) error {
		var err error
		res.Training, err = deps.Trainings.GetTraining(ctx, id)
		return err
	})
	r.secondary("players", func(ctx context.Context) error {
		got, err := deps.Players.ListPlayers(ctx)
		if err != nil {
			return err
		}
		all = got
		return nil
	})
	failed, err := r.wait()
	if err != nil {
		return TrainingDetailResult{}, err
	}
	res.FailedRegions = failed
	res.Minutes = training.DurationMinutes(res.Training)

	roster := res.Training.Team.Players
	if len(roster) == 0 {
		roster = activeOnly(all)
	}
	for _, p := range roster {
		res.Checklist = append(res.Checklist, AttendanceRow{Player: p, Attended: res.Training.Attended(p.ID)})
	}
	return res, nil
}

// PaymentDetailDeps holds dependencies for the payment page.
type PaymentDetailDeps struct {
	Gateway PaymentReader
	Clock   clockwork.Clock
}

// PaymentDetailResult carries the payment page.
type PaymentDetailResult struct {
	Payment     payment.Payment
	OverdueDays int
	IsOverdue   bool
}

// QueryPaymentDetail loads one payment with its days overdue.
func QueryPaymentDetail(ctx context.Context, id entity.ID, deps PaymentDetailDeps) (PaymentDetailResult, error) {
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	p, err := deps.Gateway.GetPayment(ctx, id)
	if err != nil {
		return PaymentDetailResult{}, err
	}
	days, overdue := payment.OverdueDays(p, clock.Now())
	return PaymentDetailResult{Payment: p, OverdueDays: days, IsOverdue: overdue}, nil
}

// EventDetailDeps holds dependencies for the event page.
type EventDetailDeps struct {
	Events  EventReader
	Players PlayerReader
}

// EventDetailResult carries the event page.
type EventDetailResult struct {
	Event         event.Event
	SpotsLeft     int
	Limited       bool
	Candidates    []player.Player
	FailedRegions []string
}

// QueryEventDetail loads an event and the players who could still join.
func QueryEventDetail(ctx context.Context, id entity.ID, deps EventDetailDeps) (EventDetailResult, error) {
	var (
		res EventDetailResult
		all []player.Player
	)
	r := newRegions(ctx)
	r.primary(func(ctx context.Context) error {
		var err error
		res.Event, err = deps.Events.GetEvent(ctx, id)
		return err
	})
	r.secondary("players", func(ctx context.Context) error {
		got, err := deps.Players.ListPlayers(ctx)
		if err != nil {
			return err
		}
		all = got
		return nil
	})
	failed, err := r.wait()
	if err != nil {
		return EventDetailResult{}, err
	}
	res.FailedRegions = failed
	res.SpotsLeft, res.Limited = res.Event.SpotsLeft()
	res.Candidates = notIn(activeOnly(all), res.Event.Participants)
	return res, nil
}

// notIn returns the players of all whose id is not in taken.
func notIn(all, taken []player.Player) []player.Player {
	out := make([]player.Player, 0, len(all))
	for _, p := range all {
		if !slices.ContainsFunc(taken, func(t player.Player) bool { return t.ID == p.ID }) {
			out = append(out, p)
		}
	}
	return out
}

func activeOnly(players []player.Player) []player.Player {
	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}
