package projections

import (
	"context"

	"clubadmin/internal/domain/coach"
	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/event"
	"clubadmin/internal/domain/match"
	"clubadmin/internal/domain/payment"
	"clubadmin/internal/domain/player"
	"clubadmin/internal/domain/team"
	"clubadmin/internal/domain/training"
)

// PlayerReader reads players from the club API.
type PlayerReader interface {
	ListPlayers(ctx context.Context) ([]player.Player, error)
	GetPlayer(ctx context.Context, id entity.ID) (player.Player, error)
	GetPlayerStatistics(ctx context.Context, id entity.ID) (player.Statistics, error)
}

// CoachReader reads coaches from the club API.
type CoachReader interface {
	ListCoaches(ctx context.Context) ([]coach.Coach, error)
	GetCoach(ctx context.Context, id entity.ID) (coach.Coach, error)
	GetCoachStatistics(ctx context.Context, id entity.ID) (coach.Statistics, error)
}

// TeamReader reads teams from the club API.
type TeamReader interface {
	ListTeams(ctx context.Context) ([]team.Team, error)
	GetTeam(ctx context.Context, id entity.ID) (team.Team, error)
	GetTeamStatistics(ctx context.Context, id entity.ID) (team.Statistics, error)
}

// MatchReader reads matches from the club API.
type MatchReader interface {
	ListMatches(ctx context.Context) ([]match.Match, error)
	ListUpcomingMatches(ctx context.Context) ([]match.Match, error)
	GetMatch(ctx context.Context, id entity.ID) (match.Match, error)
}

// TrainingReader reads trainings from the club API.
type TrainingReader interface {
	ListTrainings(ctx context.Context) ([]training.Training, error)
	GetTraining(ctx context.Context, id entity.ID) (training.Training, error)
}

// PaymentReader reads payments from the club API.
type PaymentReader interface {
	ListPayments(ctx context.Context) ([]payment.Payment, error)
	ListPaymentsByPlayer(ctx context.Context, playerID entity.ID) ([]payment.Payment, error)
	ListOverduePayments(ctx context.Context) ([]payment.Payment, error)
	GetPaymentStatistics(ctx context.Context) (payment.Statistics, error)
	GetPayment(ctx context.Context, id entity.ID) (payment.Payment, error)
}

// EventReader reads events from the club API.
type EventReader interface {
	ListEvents(ctx context.Context) ([]event.Event, error)
	ListUpcomingEvents(ctx context.Context) ([]event.Event, error)
	GetEvent(ctx context.Context, id entity.ID) (event.Event, error)
}

// ClubReader is every read the dashboard makes. *clubapi.Client satisfies it.
type ClubReader interface {
	PlayerReader
	CoachReader
	TeamReader
	MatchReader
	TrainingReader
	PaymentReader
	EventReader
}
