package clubapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"clubadmin/internal/adapters/clubapi"
	"clubadmin/internal/adapters/http/perf"
	"clubadmin/internal/domain/account"
	"clubadmin/internal/domain/event"
	"clubadmin/internal/domain/payment"
	"clubadmin/internal/domain/registration"
	"clubadmin/internal/domain/training"
)

// recorded is one request seen by the fake API.
type recorded struct {
	Method string
	Path   string
	Auth   string
	ReqID  string
	Body   map[string]any
}

// fakeAPI is an httptest server that records requests and replies from a table.
type fakeAPI struct {
	mu       sync.Mutex
	requests []recorded
	replies  map[string]reply
}

type reply struct {
	status int
	body   string
}

func newFakeAPI(t *testing.T, replies map[string]reply) (*fakeAPI, *clubapi.Client, *perf.Collector) {
	t.Helper()
	f := &fakeAPI{replies: replies}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	collector := perf.NewCollector(100)
	return f, clubapi.New(srv.URL, clubapi.Options{Collector: collector}), collector
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	rec := recorded{
		Method: r.Method,
		Path:   r.URL.Path,
		Auth:   r.Header.Get("Authorization"),
		ReqID:  r.Header.Get("X-Request-ID"),
	}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &rec.Body)
	}
	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()

	rep, ok := f.replies[r.Method+" "+r.URL.Path]
	if !ok {
		rep = reply{status: http.StatusNotFound, body: `{"message":"Not Found"}`}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	_, _ = io.WriteString(w, rep.body)
}

func (f *fakeAPI) last(t *testing.T) recorded {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("no request reached the fake API")
	}
	return f.requests[len(f.requests)-1]
}

// TestClient_BearerOnlyWhenPresent verifies the Authorization header rule.
func TestClient_BearerOnlyWhenPresent(t *testing.T) {
	api, client, _ := newFakeAPI(t, map[string]reply{"GET /players": {200, `[]`}})

	if _, err := client.ListPlayers(context.Background()); err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	if got := api.last(t).Auth; got != "" {
		t.Errorf("Authorization = %q, want none without a token", got)
	}

	ctx := clubapi.WithToken(context.Background(), "tok-123")
	if _, err := client.ListPlayers(ctx); err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	if got := api.last(t).Auth; got != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", got)
	}
}

// TestClient_RequestID verifies the inbound request id is forwarded, or one is minted.
func TestClient_RequestID(t *testing.T) {
	api, client, _ := newFakeAPI(t, map[string]reply{"GET /teams": {200, `[]`}})

	ctx := clubapi.WithRequestID(context.Background(), "req-1")
	if _, err := client.ListTeams(ctx); err != nil {
		t.Fatalf("ListTeams: %v", err)
	}
	if got := api.last(t).ReqID; got != "req-1" {
		t.Errorf("X-Request-ID = %q, want req-1", got)
	}
	if _, err := client.ListTeams(context.Background()); err != nil {
		t.Fatalf("ListTeams: %v", err)
	}
	if got := api.last(t).ReqID; len(got) != 36 {
		t.Errorf("X-Request-ID = %q, want a minted uuid", got)
	}
}

// TestClient_APIError verifies non-2xx answers and message extraction.
func TestClient_APIError(t *testing.T) {
	_, client, _ := newFakeAPI(t, map[string]reply{
		"POST /coaches/with-user": {400, `{"statusCode":400,"message":["email must be valid","salary must be positive"]}`},
		"GET /players/9":          {404, `{"message":"Player not found"}`},
		"GET /payments":           {401, `{"message":"Unauthorized"}`},
		"GET /events":             {500, `oops`},
	})
	ctx := context.Background()

	_, err := client.CreateCoach(ctx, registration.Request[registration.CoachPayload]{Endpoint: registration.EndpointWithUser})
	var apiErr *clubapi.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
		t.Fatalf("err = %v, want *APIError 400", err)
	}
	if got := clubapi.ErrorMessage(err, "Error al crear entrenador"); got != "email must be valid, salary must be positive" {
		t.Errorf("ErrorMessage = %q", got)
	}

	_, err = client.GetPlayer(ctx, "9")
	if !clubapi.IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false", err)
	}
	if got := clubapi.ErrorMessage(err, "x"); got != "Player not found" {
		t.Errorf("ErrorMessage = %q, want server string verbatim", got)
	}

	_, err = client.ListPayments(ctx)
	if !clubapi.IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = false", err)
	}

	_, err = client.ListEvents(ctx)
	if got := clubapi.ErrorMessage(err, "Error al cargar eventos"); got != "Error al cargar eventos" {
		t.Errorf("ErrorMessage = %q, want fallback for a body without message", got)
	}
	if clubapi.IsTransport(err) {
		t.Error("a 500 answer is not a transport failure")
	}
}

// TestClient_ErrDecode verifies malformed 2xx bodies fail fast and return nothing.
func TestClient_ErrDecode(t *testing.T) {
	_, client, _ := newFakeAPI(t, map[string]reply{
		"GET /payments/statistics": {200, `{"total":"many","paid":9,"totalPaidAmount":80000}`},
		"GET /payments/overdue":    {200, `[{"id":1,"amount":"abc","concept":"Torneo","status":"overdue"}]`},
	})
	ctx := context.Background()

	stats, err := client.GetPaymentStatistics(ctx)
	if !errors.Is(err, clubapi.ErrDecode) {
		t.Errorf("statistics err = %v, want ErrDecode", err)
	}
	if diff := cmp.Diff(payment.Statistics{}, stats); diff != "" {
		t.Errorf("statistics not zero (-want +got):\n%s", diff)
	}

	overdue, err := client.ListOverduePayments(ctx)
	if !errors.Is(err, clubapi.ErrDecode) {
		t.Errorf("overdue err = %v, want ErrDecode", err)
	}
	if overdue != nil {
		t.Errorf("overdue = %+v, want nil", overdue)
	}
}

// TestClient_CreatePlayerEndpoint verifies the route follows the composed endpoint.
func TestClient_CreatePlayerEndpoint(t *testing.T) {
	api, client, _ := newFakeAPI(t, map[string]reply{
		"POST /players":           {201, `{"id":1}`},
		"POST /players/with-user": {201, `{"id":"2"}`},
	})
	ctx := context.Background()

	p, err := client.CreatePlayer(ctx, registration.Request[registration.PlayerPayload]{Endpoint: registration.EndpointStandard})
	if err != nil || p.ID != "1" {
		t.Fatalf("standard: id=%q err=%v", p.ID, err)
	}
	if got := api.last(t).Path; got != "/players" {
		t.Errorf("path = %q", got)
	}

	p, err = client.CreatePlayer(ctx, registration.Request[registration.PlayerPayload]{Endpoint: registration.EndpointWithUser})
	if err != nil || p.ID != "2" {
		t.Fatalf("with-user: id=%q err=%v", p.ID, err)
	}
	if got := api.last(t).Path; got != "/players/with-user" {
		t.Errorf("path = %q", got)
	}
}

// TestClient_MarkPaymentPaid verifies the mark-paid body.
func TestClient_MarkPaymentPaid(t *testing.T) {
	api, client, _ := newFakeAPI(t, map[string]reply{"PATCH /payments/5/mark-paid": {200, `{"id":5,"status":"paid"}`}})
	got, err := client.MarkPaymentPaid(context.Background(), "5", payment.NewMarkPaid("TX-9"))
	if err != nil {
		t.Fatalf("MarkPaymentPaid: %v", err)
	}
	if got.Status != payment.StatusPaid {
		t.Errorf("status = %q", got.Status)
	}
	if diff := cmp.Diff(map[string]any{"transactionReference": "TX-9"}, api.last(t).Body); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

// TestClient_Login verifies the login exchange.
func TestClient_Login(t *testing.T) {
	api, client, _ := newFakeAPI(t, map[string]reply{
		"POST /auth/login": {201, `{"access_token":"jwt","user":{"id":3,"firstName":"Ana","lastName":"Ruiz","email":"ana@club.co","role":"manager"}}`},
	})
	res, err := client.Login(context.Background(), account.Credentials{Email: "ana@club.co", Password: "secreto"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.AccessToken != "jwt" || res.User.Role != account.RoleManager || res.User.ID != "3" {
		t.Errorf("unexpected result %+v", res)
	}
	if diff := cmp.Diff(map[string]any{"email": "ana@club.co", "password": "secreto"}, api.last(t).Body); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

// TestClient_RecordsUpstreamTimings verifies calls land in the collector by route.
func TestClient_RecordsUpstreamTimings(t *testing.T) {
	_, client, collector := newFakeAPI(t, map[string]reply{"GET /matches/7": {200, `{"id":7}`}})
	if _, err := client.GetMatch(context.Background(), "7"); err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	snap := collector.Snapshot(time.Now().Add(-time.Minute), 10)
	if len(snap.SlowestUpstream) != 1 || snap.SlowestUpstream[0].Path != "GET /matches/:id" {
		t.Errorf("SlowestUpstream = %+v, want GET /matches/:id", snap.SlowestUpstream)
	}
}

// TestClient_TransportError verifies network failures are reported as such.
func TestClient_TransportError(t *testing.T) {
	client := clubapi.New("http://127.0.0.1:1", clubapi.Options{Timeout: time.Second})
	_, err := client.ListCoaches(context.Background())
	if err == nil || !clubapi.IsTransport(err) {
		t.Errorf("err = %v, want a transport error", err)
	}
}

// TestClient_UpdateRoutes verifies the PATCH routes for trainings, payments and events.
func TestClient_UpdateRoutes(t *testing.T) {
	api, client, _ := newFakeAPI(t, map[string]reply{
		"PATCH /trainings/4": {200, `{"id":4,"title":"Defensa"}`},
		"PATCH /payments/8":  {200, `{"id":8,"status":"pending"}`},
		"PATCH /events/5":    {200, `{"id":5,"title":"Cena"}`},
	})
	ctx := context.Background()

	tests := []struct {
		name  string
		call  func() error
		want  string
		field string
	}{
		{
			name: "training",
			call: func() error {
				_, err := client.UpdateTraining(ctx, "4", training.Payload{Title: "Defensa", TeamID: "3", CoachID: "2"})
				return err
			},
			want:  "PATCH /trainings/4",
			field: "title",
		},
		{
			name: "payment",
			call: func() error {
				_, err := client.UpdatePayment(ctx, "8", payment.Payload{PlayerID: "1", Concept: "Mensualidad"})
				return err
			},
			want:  "PATCH /payments/8",
			field: "concept",
		},
		{
			name: "event",
			call: func() error {
				_, err := client.UpdateEvent(ctx, "5", event.Payload{Title: "Cena", EventType: "Social"})
				return err
			},
			want:  "PATCH /events/5",
			field: "eventType",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatalf("update: %v", err)
			}
			got := api.last(t)
			if got.Method+" "+got.Path != tt.want {
				t.Errorf("request = %s %s, want %s", got.Method, got.Path, tt.want)
			}
			if _, ok := got.Body[tt.field]; !ok {
				t.Errorf("body has no %q: %v", tt.field, got.Body)
			}
		})
	}
}
