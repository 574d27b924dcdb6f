package web

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"

	"clubadmin/internal/adapters/email"
	"clubadmin/internal/adapters/http/middleware"
	"clubadmin/internal/adapters/http/perf"
	"clubadmin/internal/application/orchestrators"
	"clubadmin/internal/application/projections"
	"clubadmin/internal/config"
	"clubadmin/internal/domain/account"
	"clubadmin/internal/domain/entity"
)

// ClubAPI is everything the dashboard asks of the club API. *clubapi.Client
// implements it.
type ClubAPI interface {
	projections.ClubReader
	orchestrators.LoginGateway
	orchestrators.PlayerRegistrar
	orchestrators.CoachRegistrar
	orchestrators.PlayerUpdater
	orchestrators.CoachUpdater
	orchestrators.TeamGateway
	orchestrators.MatchGateway
	orchestrators.TrainingGateway
	orchestrators.PaymentGateway
	orchestrators.EventGateway

	DeletePlayer(ctx context.Context, id entity.ID) error
	DeleteCoach(ctx context.Context, id entity.ID) error
	DeleteTeam(ctx context.Context, id entity.ID) error
	DeleteMatch(ctx context.Context, id entity.ID) error
	DeleteTraining(ctx context.Context, id entity.ID) error
	DeletePayment(ctx context.Context, id entity.ID) error
	DeleteEvent(ctx context.Context, id entity.ID) error
}

// SessionStore is the part of the session store the handlers use.
type SessionStore interface {
	middleware.SessionLoader
	orchestrators.SessionCreator
	orchestrators.SessionDeleter
}

// Pinger reports whether the local database answers.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps holds everything the router needs.
type Deps struct {
	API       ClubAPI
	Sessions  SessionStore
	DB        Pinger
	Collector *perf.Collector // may be nil
	Mailer    email.Sender    // may be nil
	Clock     clockwork.Clock // nil means the real clock
	Config    *config.Config
	Version   string
}

// LoginRatePerMinute caps POST /login per client IP. Tests can raise it.
var LoginRatePerMinute = 10

type server struct {
	Deps
}

func newServer(deps Deps) *server {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	return &server{Deps: deps}
}

// NewRouter wires the dashboard's routes and middleware. The login rate
// limiter's sweeper stops when ctx is done.
func NewRouter(ctx context.Context, deps Deps) http.Handler {
	s := newServer(deps)
	protect := middleware.CSRF(deps.Config.CSRFAuthKey(), deps.Config.IsProduction(), trustedOrigins(deps.Config))
	limiter := middleware.NewRateLimiter(ctx, LoginRatePerMinute, time.Minute)
	return s.routes(protect, limiter)
}

// routes builds the router. protect is the CSRF layer, swapped out in tests.
func (s *server) routes(protect func(http.Handler) http.Handler, limiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timing(s.Collector, s.Config.SlowRequestMs))
	r.Use(middleware.SecurityHeaders)
	if len(s.Config.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:   s.Config.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodHead},
			AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders:   []string{middleware.RequestIDHeader},
			AllowCredentials: true,
		}).Handler)
	}
	r.Use(protect)
	r.Use(middleware.Auth(s.Sessions))

	r.Handle("/static/*", staticHandler())
	r.Get("/healthz", s.handleHealthz)
	r.Get("/login", s.handleLoginForm)
	r.With(middleware.RateLimit(limiter)).Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		})
		r.With(middleware.RequireCapability(account.NavDashboard)).Get("/dashboard", s.handleDashboard)

		r.Route("/players", func(r chi.Router) {
			r.Use(middleware.RequireCapability(account.NavPlayers))
			r.Get("/", s.handlePlayerList)
			r.Get("/{id}", s.handlePlayerDetail)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(account.ActionNewPlayer))
				r.Get("/new", s.handlePlayerNew)
				r.Post("/", s.handlePlayerCreate)
				r.Post("/{id}/active", s.handlePlayerActive)
				r.Post("/{id}/delete", s.handlePlayerDelete)
			})
		})

		r.Route("/coaches", func(r chi.Router) {
			r.Use(middleware.RequireCapability(account.NavCoaches))
			r.Get("/", s.handleCoachList)
			r.Get("/{id}", s.handleCoachDetail)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(account.ActionNewCoach))
				r.Get("/new", s.handleCoachNew)
				r.Post("/", s.handleCoachCreate)
				r.Get("/{id}/edit", s.handleCoachEdit)
				r.Post("/{id}/edit", s.handleCoachUpdate)
				r.Post("/{id}/delete", s.handleCoachDelete)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.Use(middleware.RequireCapability(account.NavTeams))
			r.Get("/", s.handleTeamList)
			r.Get("/{id}", s.handleTeamDetail)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(account.ActionNewTeam))
				r.Get("/new", s.handleTeamNew)
				r.Post("/", s.handleTeamCreate)
				r.Get("/{id}/edit", s.handleTeamEdit)
				r.Post("/{id}/edit", s.handleTeamUpdate)
				r.Post("/{id}/players", s.handleTeamAddPlayers)
				r.Post("/{id}/delete", s.handleTeamDelete)
			})
		})

		r.Route("/matches", func(r chi.Router) {
			r.Use(middleware.RequireCapability(account.NavMatches))
			r.Get("/", s.handleMatchList)
			r.Get("/{id}", s.handleMatchDetail)
			r.Post("/{id}/score", s.handleMatchScore)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(account.ActionNewMatch))
				r.Get("/new", s.handleMatchNew)
				r.Post("/", s.handleMatchCreate)
				r.Get("/{id}/edit", s.handleMatchEdit)
				r.Post("/{id}/edit", s.handleMatchUpdate)
				r.Post("/{id}/delete", s.handleMatchDelete)
			})
		})

		r.Route("/trainings", func(r chi.Router) {
			r.Use(middleware.RequireCapability(account.NavTrainings))
			r.Get("/", s.handleTrainingList)
			r.Get("/new", s.handleTrainingNew)
			r.Post("/", s.handleTrainingCreate)
			r.Get("/{id}", s.handleTrainingDetail)
			r.Post("/{id}/attendance", s.handleTrainingAttendance)
			r.Post("/{id}/delete", s.handleTrainingDelete)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(middleware.RequireCapability(account.NavPayments))
			r.Get("/", s.handlePaymentList)
			r.Get("/{id}", s.handlePaymentDetail)
			r.Post("/{id}/mark-paid", s.handlePaymentMarkPaid)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(account.ActionRegisterPayment))
				r.Get("/new", s.handlePaymentNew)
				r.Post("/", s.handlePaymentCreate)
				r.Post("/{id}/delete", s.handlePaymentDelete)
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Use(middleware.RequireCapability(account.NavEvents))
			r.Get("/", s.handleEventList)
			r.Get("/{id}", s.handleEventDetail)
			r.Post("/{id}/participants", s.handleEventAddParticipants)
			r.Post("/{id}/participants/{playerId}/delete", s.handleEventRemoveParticipant)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(account.ActionNewEvent))
				r.Get("/new", s.handleEventNew)
				r.Post("/", s.handleEventCreate)
				r.Post("/{id}/delete", s.handleEventDelete)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCapability(account.NavSettings))
			r.Get("/settings", s.handleSettings)
			r.Get("/admin/perf", s.handlePerf)
		})
	})

	r.NotFound(s.notFound)
	return r
}

// trustedOrigins lists the hosts the CSRF origin check accepts besides the
// request's own: the public URL and the CORS origins.
func trustedOrigins(cfg *config.Config) []string {
	var hosts []string
	for _, raw := range append([]string{cfg.PublicURL}, cfg.CORSOrigins...) {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			continue
		}
		hosts = append(hosts, u.Host)
	}
	return hosts
}
