package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"clubadmin/internal/adapters/clubapi"
	emailPkg "clubadmin/internal/adapters/email"
	web "clubadmin/internal/adapters/http"
	"clubadmin/internal/adapters/http/perf"
	"clubadmin/internal/adapters/storage"
	"clubadmin/internal/adapters/storage/session"
	"clubadmin/internal/config"
	"clubadmin/internal/domain/entity"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// sessionSweepInterval is how often expired sessions are purged.
const sessionSweepInterval = 15 * time.Minute

// shutdownTimeout bounds how long in-flight requests may drain.
const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	for _, name := range cfg.GeneratedKeys() {
		slog.Warn("config_random_key", "key", name, "reason", "not set outside production")
	}

	entity.Location = cfg.Location()

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialise database: %v", err)
	}

	// Performance instrumentation: timed DB for the session store, shared collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector, cfg.SlowRequestMs)

	sealer, err := session.NewSealer(cfg.SessionSealKey())
	if err != nil {
		log.Fatalf("invalid session key: %v", err)
	}
	clock := clockwork.NewRealClock()
	sessions := session.NewSQLiteStore(timedDB, sealer, clock)

	api := clubapi.New(cfg.APIURL, clubapi.Options{
		Timeout:        cfg.APITimeout,
		SlowUpstreamMs: cfg.SlowUpstreamMs,
		Collector:      collector,
	})

	var mailer emailPkg.Sender
	if cfg.ResendKey != "" {
		mailer = emailPkg.NewResendSender(cfg.ResendKey, cfg.MailFrom)
		slog.Info("email_sender_configured", "provider", "resend")
	} else {
		mailer = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			slog.Warn("email_sender_configured", "provider", "noop", "reason", "CLUBADMIN_RESEND_KEY is not set")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, sessions, clock)

	router := web.NewRouter(ctx, web.Deps{
		API:       api,
		Sessions:  sessions,
		DB:        db,
		Collector: collector,
		Mailer:    mailer,
		Clock:     clock,
		Config:    cfg,
		Version:   version,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.APITimeout + 15*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", cfg.Addr, err)
	}

	slog.Info("server_starting",
		"version", version,
		"addr", cfg.Addr,
		"env", cfg.Env,
		"api_url", cfg.APIURL,
		"time_zone", cfg.TimeZone,
	)
	if err := serve(ctx, srv, ln, shutdownTimeout); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	slog.Info("server_stopped")
}

// serve runs srv on ln until ctx is done, then drains in-flight requests.
// POST: returns only after Shutdown has finished, so callers may close the DB
func serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration) error {
	drained := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		drained <- srv.Shutdown(shutdownCtx)
	}()
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-drained; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// sweepSessions deletes expired sessions until ctx is done.
func sweepSessions(ctx context.Context, store *session.SQLiteStore, clock clockwork.Clock) {
	ticker := clock.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			n, err := store.DeleteExpired(ctx)
			if err != nil {
				slog.Error("session_sweep_failed", "error", err.Error())
				continue
			}
			if n > 0 {
				slog.Info("session_sweep", "deleted", n)
			}
		}
	}
}
