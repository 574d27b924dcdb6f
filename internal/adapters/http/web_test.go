package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"clubadmin/internal/adapters/clubapi"
	"clubadmin/internal/adapters/http/middleware"
	"clubadmin/internal/adapters/http/perf"
	"clubadmin/internal/adapters/storage"
	"clubadmin/internal/adapters/storage/session"
	"clubadmin/internal/config"
	"clubadmin/internal/domain/account"
)

// fakeReply is one canned club API answer.
type fakeReply struct {
	status int
	body   string
}

// fakeClub stands in for the club API. Replies are keyed by "METHOD /path";
// anything else answers 404.
type fakeClub struct {
	mu      sync.Mutex
	replies map[string]fakeReply
	calls   []string
	auth    []string
}

func (f *fakeClub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	_, _ = io.Copy(io.Discard, r.Body)

	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.auth = append(f.auth, r.Header.Get("Authorization"))
	rep, ok := f.replies[key]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Not Found"}`)
		return
	}
	status := rep.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, rep.body)
}

func (f *fakeClub) called(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == key {
			return true
		}
	}
	return false
}

func (f *fakeClub) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// testEnv is a full router over a fake club API and an in-memory session store.
type testEnv struct {
	club    *fakeClub
	api     *httptest.Server
	store   *session.SQLiteStore
	clock   *clockwork.FakeClock
	handler http.Handler
}

func newTestEnv(t *testing.T, replies map[string]fakeReply) *testEnv {
	t.Helper()
	club := &fakeClub{replies: replies}
	api := httptest.NewServer(club)
	t.Cleanup(api.Close)

	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	sealer, err := session.RandomSealer()
	if err != nil {
		t.Fatalf("RandomSealer: %v", err)
	}
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC))
	store := session.NewSQLiteStore(db, sealer, clock)

	cfg := config.Defaults()
	collector := perf.NewCollector(100)
	s := newServer(Deps{
		API:       clubapi.New(api.URL, clubapi.Options{Collector: collector}),
		Sessions:  store,
		DB:        db,
		Collector: collector,
		Clock:     clock,
		Config:    &cfg,
		Version:   "test",
	})
	noCSRF := func(h http.Handler) http.Handler { return h }
	limiter := middleware.NewRateLimiter(t.Context(), 1000, time.Minute)

	return &testEnv{
		club:    club,
		api:     api,
		store:   store,
		clock:   clock,
		handler: s.routes(noCSRF, limiter),
	}
}

// login opens a session for role directly in the store.
func (e *testEnv) login(t *testing.T, role account.Role) *http.Cookie {
	t.Helper()
	now := e.clock.Now()
	id, err := e.store.Create(context.Background(), session.Session{
		Identity: account.Identity{
			ID: "1", FirstName: "Ana", LastName: "Ruiz", Email: "ana@club.co", Role: role,
		},
		Token:     "tok-" + string(role),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookieName, Value: id}
}

// get issues a browser GET.
func (e *testEnv) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "text/html")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// getJSON issues an API-style GET.
func (e *testEnv) getJSON(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// post submits a browser form.
func (e *testEnv) post(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

const (
	playerJSON = `{"id":1,"firstName":"Luis","lastName":"Pérez","email":"luis@club.co","phone":"300","documentNumber":"CC1",
		"birthDate":"2005-03-01","position":"pivot","jerseyNumber":7,"height":185,"dominantHand":"left","category":"Juvenil",
		"joinDate":"2024-01-10","team":{"id":3,"name":"Senior A","category":"Masculino","division":"Primera"},"isActive":true}`
	coachJSON = `{"id":2,"firstName":"Marta","lastName":"Gómez","email":"marta@club.co","birthDate":"1980-05-05",
		"specialization":"Porteros","certificationLevel":"Nivel 2","hireDate":"2020-02-01","salary":3000000,
		"certifications":["IHF Level 2"],"biography":"Ex **portera** internacional.","isActive":true,
		"teamsAsHead":[{"id":3,"name":"Senior A","category":"Masculino"}]}`
	teamJSON = `{"id":3,"name":"Senior A","category":"Masculino","division":"Primera","foundedYear":1998,
		"primaryColor":"#1d4ed8","secondaryColor":"#ffffff","headCoach":` + coachJSON + `,"players":[` + playerJSON + `],"isActive":true}`
	otherTeamJSON = `{"id":4,"name":"Juvenil B","category":"Masculino","division":"Juvenil","foundedYear":2010,"isActive":true}`
	matchJSON     = `{"id":6,"homeTeam":` + teamJSON + `,"awayTeam":` + otherTeamJSON + `,"matchDate":"2025-06-10T18:00:00Z",
		"venue":"Coliseo","competition":"Liga","round":"J5","homeScore":28,"awayScore":25,"status":"finished",
		"statistics":{"homeShots":40,"awayShots":35},"notes":"Buen partido"}`
	trainingJSON = `{"id":4,"title":"Defensa 6-0","startTime":"2025-06-03T17:00:00Z","endTime":"2025-06-03T18:30:00Z",
		"location":"Coliseo","team":` + teamJSON + `,"coach":` + coachJSON + `,"trainingType":"Táctico",
		"objectives":"Cerrar el **centro**","attendees":[` + playerJSON + `],"status":"scheduled"}`
	paymentJSON = `{"id":8,"player":` + playerJSON + `,"amount":120000,"concept":"Mensualidad","dueDate":"2025-05-01",
		"status":"overdue","paymentMethod":"Efectivo"}`
	eventJSON = `{"id":5,"title":"Cena de gala","description":"Fin de **temporada**","eventType":"Social",
		"startDate":"2025-06-20T20:00:00Z","endDate":"2025-06-20T23:00:00Z","location":"Hotel","capacity":40,
		"participants":[` + playerJSON + `],"status":"upcoming","cost":50000}`
)

// clubFixtures answers every read the dashboard makes.
func clubFixtures() map[string]fakeReply {
	ok := func(body string) fakeReply { return fakeReply{status: http.StatusOK, body: body} }
	return map[string]fakeReply{
		"GET /players":              ok(`[` + playerJSON + `]`),
		"GET /players/1":            ok(playerJSON),
		"GET /players/1/statistics": ok(`{"totalGoals":31,"totalAssists":12,"matchesPlayed":14,"totalMinutes":700}`),
		"GET /coaches":              ok(`[` + coachJSON + `]`),
		"GET /coaches/2":            ok(coachJSON),
		"GET /coaches/2/statistics": ok(`{"teamsCount":1,"playersCount":16,"trainingsCount":40}`),
		"GET /teams":                ok(`[` + teamJSON + `,` + otherTeamJSON + `]`),
		"GET /teams/3":              ok(teamJSON),
		"GET /teams/3/statistics":   ok(`{"played":10,"won":7,"drawn":1,"lost":2,"goalsFor":280,"goalsAgainst":250}`),
		"GET /matches":              ok(`[` + matchJSON + `]`),
		"GET /matches/upcoming":     ok(`[` + matchJSON + `]`),
		"GET /matches/6":            ok(matchJSON),
		"GET /trainings":            ok(`[` + trainingJSON + `]`),
		"GET /trainings/4":          ok(trainingJSON),
		"GET /payments":             ok(`[` + paymentJSON + `]`),
		"GET /payments/8":           ok(paymentJSON),
		"GET /payments/overdue":     ok(`[` + paymentJSON + `]`),
		"GET /payments/player/1":    ok(`[` + paymentJSON + `]`),
		"GET /payments/statistics":  ok(`{"total":10,"paid":6,"pending":3,"overdue":1,"totalPaidAmount":720000,"totalPendingAmount":360000}`),
		"GET /events":               ok(`[` + eventJSON + `]`),
		"GET /events/upcoming":      ok(`[` + eventJSON + `]`),
		"GET /events/5":             ok(eventJSON),
	}
}

// withReplies returns the fixtures with overrides applied.
func withReplies(overrides map[string]fakeReply) map[string]fakeReply {
	out := clubFixtures()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
