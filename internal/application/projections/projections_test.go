package projections

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"

	"clubadmin/internal/adapters/clubapi"
	"clubadmin/internal/application/listutil"
	"clubadmin/internal/domain/account"
	"clubadmin/internal/domain/coach"
	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/event"
	"clubadmin/internal/domain/match"
	"clubadmin/internal/domain/payment"
	"clubadmin/internal/domain/player"
	"clubadmin/internal/domain/team"
	"clubadmin/internal/domain/training"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) entity.Time { return entity.Time{Time: testNow.Add(d)} }

// fakeClub is an in-memory ClubReader. fail maps a method name to the error it returns.
type fakeClub struct {
	players   []player.Player
	coaches   []coach.Coach
	teams     []team.Team
	matches   []match.Match
	upcoming  []match.Match
	trainings []training.Training
	payments  []payment.Payment
	overdue   []payment.Payment
	stats     payment.Statistics
	events    []event.Event
	fail      map[string]error

	mu    sync.Mutex
	calls []string
}

func (f *fakeClub) hit(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.fail[name]
}

func (f *fakeClub) called(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}

var errNotFound = &clubapi.APIError{StatusCode: http.StatusNotFound}

func (f *fakeClub) ListPlayers(context.Context) ([]player.Player, error) {
	return f.players, f.hit("ListPlayers")
}
func (f *fakeClub) GetPlayer(_ context.Context, id entity.ID) (player.Player, error) {
	if err := f.hit("GetPlayer"); err != nil {
		return player.Player{}, err
	}
	for _, p := range f.players {
		if p.ID == id {
			return p, nil
		}
	}
	return player.Player{}, errNotFound
}
func (f *fakeClub) GetPlayerStatistics(context.Context, entity.ID) (player.Statistics, error) {
	return player.Statistics{TotalGoals: 12}, f.hit("GetPlayerStatistics")
}
func (f *fakeClub) ListCoaches(context.Context) ([]coach.Coach, error) {
	return f.coaches, f.hit("ListCoaches")
}
func (f *fakeClub) GetCoach(_ context.Context, id entity.ID) (coach.Coach, error) {
	return coach.Coach{ID: id}, f.hit("GetCoach")
}
func (f *fakeClub) GetCoachStatistics(context.Context, entity.ID) (coach.Statistics, error) {
	return coach.Statistics{TeamsCount: 2}, f.hit("GetCoachStatistics")
}
func (f *fakeClub) ListTeams(context.Context) ([]team.Team, error) {
	return f.teams, f.hit("ListTeams")
}
func (f *fakeClub) GetTeam(_ context.Context, id entity.ID) (team.Team, error) {
	if err := f.hit("GetTeam"); err != nil {
		return team.Team{}, err
	}
	for _, t := range f.teams {
		if t.ID == id {
			return t, nil
		}
	}
	return team.Team{}, errNotFound
}
func (f *fakeClub) GetTeamStatistics(context.Context, entity.ID) (team.Statistics, error) {
	return team.Statistics{Won: 3}, f.hit("GetTeamStatistics")
}
func (f *fakeClub) ListMatches(context.Context) ([]match.Match, error) {
	return f.matches, f.hit("ListMatches")
}
func (f *fakeClub) ListUpcomingMatches(context.Context) ([]match.Match, error) {
	return f.upcoming, f.hit("ListUpcomingMatches")
}
func (f *fakeClub) GetMatch(_ context.Context, id entity.ID) (match.Match, error) {
	return match.Match{ID: id}, f.hit("GetMatch")
}
func (f *fakeClub) ListTrainings(context.Context) ([]training.Training, error) {
	return f.trainings, f.hit("ListTrainings")
}
func (f *fakeClub) GetTraining(_ context.Context, id entity.ID) (training.Training, error) {
	if err := f.hit("GetTraining"); err != nil {
		return training.Training{}, err
	}
	for _, t := range f.trainings {
		if t.ID == id {
			return t, nil
		}
	}
	return training.Training{}, errNotFound
}
func (f *fakeClub) ListPayments(context.Context) ([]payment.Payment, error) {
	return f.payments, f.hit("ListPayments")
}
func (f *fakeClub) ListPaymentsByPlayer(context.Context, entity.ID) ([]payment.Payment, error) {
	return f.payments, f.hit("ListPaymentsByPlayer")
}
func (f *fakeClub) ListOverduePayments(context.Context) ([]payment.Payment, error) {
	return f.overdue, f.hit("ListOverduePayments")
}
func (f *fakeClub) GetPaymentStatistics(context.Context) (payment.Statistics, error) {
	return f.stats, f.hit("GetPaymentStatistics")
}
func (f *fakeClub) GetPayment(_ context.Context, id entity.ID) (payment.Payment, error) {
	if err := f.hit("GetPayment"); err != nil {
		return payment.Payment{}, err
	}
	for _, p := range append(f.payments, f.overdue...) {
		if p.ID == id {
			return p, nil
		}
	}
	return payment.Payment{}, errNotFound
}
func (f *fakeClub) ListEvents(context.Context) ([]event.Event, error) {
	return f.events, f.hit("ListEvents")
}
func (f *fakeClub) ListUpcomingEvents(context.Context) ([]event.Event, error) {
	return f.events[:1], f.hit("ListUpcomingEvents")
}
func (f *fakeClub) GetEvent(_ context.Context, id entity.ID) (event.Event, error) {
	if err := f.hit("GetEvent"); err != nil {
		return event.Event{}, err
	}
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return event.Event{}, errNotFound
}

var _ ClubReader = (*fakeClub)(nil)

func seededClub() *fakeClub {
	ana := player.Player{ID: "1", FirstName: "Ana", LastName: "Gil", Email: "ana@club.co", DocumentNumber: "111", IsActive: true}
	beto := player.Player{ID: "2", FirstName: "Beto", LastName: "Paz", Email: "beto@club.co", DocumentNumber: "222", IsActive: true}
	caro := player.Player{ID: "3", FirstName: "Caro", LastName: "Ruiz", Email: "caro@club.co", DocumentNumber: "333"}
	return &fakeClub{
		players: []player.Player{ana, beto, caro},
		coaches: []coach.Coach{{ID: "c1", FirstName: "Luis"}},
		teams:   []team.Team{{ID: "t1", Name: "Halcones", Players: []player.Player{ana}, IsActive: true}},
		upcoming: []match.Match{
			{ID: "m3", MatchDate: at(72 * time.Hour)},
			{ID: "m1", MatchDate: at(24 * time.Hour)},
			{ID: "m2", MatchDate: at(48 * time.Hour)},
		},
		trainings: []training.Training{{
			ID: "tr1", Title: "Táctica", StartTime: at(0), EndTime: at(95*time.Minute + 30*time.Second),
			Team: team.Team{Name: "Halcones", Players: []player.Player{ana, beto}}, Attendees: []player.Player{beto},
		}},
		payments: []payment.Payment{
			{ID: "p1", Player: ana, Concept: "Mensualidad", Status: payment.StatusPaid},
			{ID: "p2", Player: beto, Concept: "Uniforme", Status: payment.StatusPending},
		},
		overdue: []payment.Payment{
			{ID: "p3", Player: caro, Concept: "Torneo", Status: payment.StatusOverdue, DueDate: at(-5 * 24 * time.Hour)},
		},
		stats:  payment.Statistics{Total: 3, Paid: 1, TotalPaidAmount: 80000},
		events: []event.Event{{ID: "e1", Title: "Cena", Participants: []player.Player{beto}}, {ID: "e2", Title: "Viaje"}},
		fail:   map[string]error{},
	}
}

func q(search string) listutil.Query {
	return listutil.Query{Page: 1, PerPage: 20, Search: search}
}

// TestQueryDashboard_Admin verifies counts, sorted next matches and payments.
func TestQueryDashboard_Admin(t *testing.T) {
	club := seededClub()
	res, err := QueryDashboard(context.Background(), DashboardQuery{Identity: account.Identity{FirstName: "Ada", Role: account.RoleAdmin}},
		DashboardDeps{Gateway: club, Clock: clockwork.NewFakeClockAt(testNow)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PlayerCount != 3 || res.ActiveCount != 2 || res.CoachCount != 1 || res.TeamCount != 1 {
		t.Errorf("counts = %d/%d/%d/%d", res.PlayerCount, res.ActiveCount, res.CoachCount, res.TeamCount)
	}
	var ids []entity.ID
	for _, m := range res.NextMatches {
		ids = append(ids, m.ID)
	}
	if diff := cmp.Diff([]entity.ID{"m1", "m2", "m3"}, ids); diff != "" {
		t.Errorf("next matches mismatch (-want +got):\n%s", diff)
	}
	if res.Payments.TotalPaidAmount != 80000 || len(res.QuickActions) != 6 {
		t.Errorf("payments=%+v actions=%d", res.Payments, len(res.QuickActions))
	}
	if !res.Today.Equal(testNow) {
		t.Errorf("Today = %v", res.Today)
	}
}

// TestQueryDashboard_RoleGating verifies hidden regions are never fetched.
func TestQueryDashboard_RoleGating(t *testing.T) {
	club := seededClub()
	res, err := QueryDashboard(context.Background(), DashboardQuery{Identity: account.Identity{Role: account.RoleCoach}}, DashboardDeps{Gateway: club})
	if err != nil {
		t.Fatal(err)
	}
	if club.called("GetPaymentStatistics") || club.called("ListCoaches") {
		t.Errorf("coach fetched hidden regions: %v", club.calls)
	}
	if res.ShowPayments || len(res.QuickActions) != 0 {
		t.Errorf("coach result = %+v", res)
	}

	club = seededClub()
	if _, err := QueryDashboard(context.Background(), DashboardQuery{Identity: account.Identity{Role: account.RolePlayer}}, DashboardDeps{Gateway: club}); err != nil {
		t.Fatal(err)
	}
	if len(club.calls) != 0 {
		t.Errorf("player role made calls: %v", club.calls)
	}
}

// TestQueryDashboard_FailedRegion verifies one failed region does not fail the page.
func TestQueryDashboard_FailedRegion(t *testing.T) {
	club := seededClub()
	club.fail["GetPaymentStatistics"] = &clubapi.APIError{StatusCode: http.StatusInternalServerError}
	res, err := QueryDashboard(context.Background(), DashboardQuery{Identity: account.Identity{Role: account.RoleManager}}, DashboardDeps{Gateway: club})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"payments"}, res.FailedRegions); diff != "" {
		t.Errorf("FailedRegions mismatch (-want +got):\n%s", diff)
	}
	if res.PlayerCount != 3 {
		t.Errorf("other regions should load, PlayerCount = %d", res.PlayerCount)
	}
}

// TestQueryDashboard_FailedCountsStayZero verifies a failed count region shows nothing.
func TestQueryDashboard_FailedCountsStayZero(t *testing.T) {
	club := seededClub()
	club.fail["ListCoaches"] = errors.New("decode")
	res, err := QueryDashboard(context.Background(), DashboardQuery{Identity: account.Identity{Role: account.RoleAdmin}}, DashboardDeps{Gateway: club})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CoachCount != 0 || res.TeamCount != 1 {
		t.Errorf("coaches=%d teams=%d", res.CoachCount, res.TeamCount)
	}
}

// TestQueryDashboard_Unauthorized verifies a 401 fails the whole page.
func TestQueryDashboard_Unauthorized(t *testing.T) {
	club := seededClub()
	club.fail["ListTeams"] = &clubapi.APIError{StatusCode: http.StatusUnauthorized}
	_, err := QueryDashboard(context.Background(), DashboardQuery{Identity: account.Identity{Role: account.RoleAdmin}}, DashboardDeps{Gateway: club})
	if !clubapi.IsUnauthorized(err) {
		t.Errorf("err = %v, want 401", err)
	}
}

// TestQueryPlayerList verifies search, counters and paging.
func TestQueryPlayerList(t *testing.T) {
	club := seededClub()
	tests := []struct {
		search string
		want   []entity.ID
	}{
		{"", []entity.ID{"1", "2", "3"}},
		{"ana", []entity.ID{"1"}},
		{"BETO@", []entity.ID{"2"}},
		{"333", []entity.ID{"3"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			res, err := QueryPlayerList(context.Background(), q(tt.search), club)
			if err != nil {
				t.Fatal(err)
			}
			var got []entity.ID
			for _, p := range res.Players {
				got = append(got, p.ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("players mismatch (-want +got):\n%s", diff)
			}
			if res.Total != 3 || res.Active != 2 || res.Inactive != 1 {
				t.Errorf("counters = %d/%d/%d", res.Total, res.Active, res.Inactive)
			}
		})
	}

	res, _ := QueryPlayerList(context.Background(), listutil.Query{Page: 2, PerPage: 2}, club)
	if len(res.Players) != 1 || res.Page.TotalPages != 2 {
		t.Errorf("page 2 = %d rows of %d pages", len(res.Players), res.Page.TotalPages)
	}
}

// TestQueryMatchList_Tabs verifies the upcoming tab uses its own endpoint.
func TestQueryMatchList_Tabs(t *testing.T) {
	club := seededClub()
	club.matches = []match.Match{{ID: "old"}}
	res, err := QueryMatchList(context.Background(), listutil.Query{Page: 1, PerPage: 20, Tab: TabUpcoming}, club)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Matches) != 3 || club.called("ListMatches") {
		t.Errorf("upcoming = %d, calls = %v", len(res.Matches), club.calls)
	}
	res, _ = QueryMatchList(context.Background(), listutil.Query{Page: 1, PerPage: 20, Tab: TabAll}, club)
	if len(res.Matches) != 1 {
		t.Errorf("all = %d", len(res.Matches))
	}
}

// TestQueryEventList_Tabs verifies both event tabs.
func TestQueryEventList_Tabs(t *testing.T) {
	club := seededClub()
	all, _ := QueryEventList(context.Background(), listutil.Query{Page: 1, PerPage: 20, Tab: TabAll}, club)
	up, _ := QueryEventList(context.Background(), listutil.Query{Page: 1, PerPage: 20, Tab: TabUpcoming}, club)
	if len(all.Events) != 2 || len(up.Events) != 1 {
		t.Errorf("all=%d upcoming=%d", len(all.Events), len(up.Events))
	}
}

// TestQueryCoachList_Search verifies search ignores case and accents.
func TestQueryCoachList_Search(t *testing.T) {
	club := seededClub()
	club.coaches = []coach.Coach{
		{ID: "c1", FirstName: "Luis", LastName: "Peña", Specialization: "Porteros", IsActive: true},
		{ID: "c2", FirstName: "Marta", LastName: "Gómez", Specialization: "Preparación física"},
	}
	tests := []struct {
		search string
		want   []entity.ID
	}{
		{"", []entity.ID{"c1", "c2"}},
		{"gomez", []entity.ID{"c2"}},
		{"PENA", []entity.ID{"c1"}},
		{"fisica", []entity.ID{"c2"}},
		{"tenis", nil},
	}
	for _, tt := range tests {
		res, err := QueryCoachList(context.Background(), q(tt.search), club)
		if err != nil {
			t.Fatalf("search %q: %v", tt.search, err)
		}
		var ids []entity.ID
		for _, c := range res.Coaches {
			ids = append(ids, c.ID)
		}
		if diff := cmp.Diff(tt.want, ids); diff != "" {
			t.Errorf("search %q mismatch (-want +got):\n%s", tt.search, diff)
		}
		if res.Total != 2 || res.Active != 1 {
			t.Errorf("search %q: total=%d active=%d", tt.search, res.Total, res.Active)
		}
	}
}

// TestQueryTrainingList_Duration verifies durations are whole minutes.
func TestQueryTrainingList_Duration(t *testing.T) {
	res, err := QueryTrainingList(context.Background(), q(""), seededClub())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Trainings) != 1 || res.Trainings[0].Minutes != 95 {
		t.Errorf("rows = %+v", res.Trainings)
	}
}

// TestQueryPaymentOverview verifies stats, search and overdue days.
func TestQueryPaymentOverview(t *testing.T) {
	club := seededClub()
	res, err := QueryPaymentOverview(context.Background(), q("uniforme"), PaymentOverviewDeps{Gateway: club, Clock: clockwork.NewFakeClockAt(testNow)})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Payments) != 1 || res.Payments[0].ID != "p2" {
		t.Errorf("search hits = %+v", res.Payments)
	}
	if res.Stats.Total != 3 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if len(res.Overdue) != 1 || res.Overdue[0].Days != 5 {
		t.Errorf("overdue = %+v", res.Overdue)
	}
}

// TestQueryPaymentOverview_SecondaryFailures verifies failed secondary regions render empty.
func TestQueryPaymentOverview_SecondaryFailures(t *testing.T) {
	club := seededClub()
	club.fail["GetPaymentStatistics"] = errors.New("timeout")
	club.fail["ListOverduePayments"] = errors.New("timeout")
	res, err := QueryPaymentOverview(context.Background(), q(""), PaymentOverviewDeps{Gateway: club})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Payments) != 2 || len(res.FailedRegions) != 2 || res.Overdue != nil {
		t.Errorf("res = %+v", res)
	}
	// The fake hands back its data alongside the error; none of it may leak.
	if diff := cmp.Diff(payment.Statistics{}, res.Stats); diff != "" {
		t.Errorf("failed statistics region not empty (-want +got):\n%s", diff)
	}

	club.fail["ListPayments"] = errors.New("down")
	if _, err := QueryPaymentOverview(context.Background(), q(""), PaymentOverviewDeps{Gateway: club}); err == nil {
		t.Error("primary failure must fail the page")
	}
}

// TestQueryPlayerDetail verifies soft statistics and hard 404s.
func TestQueryPlayerDetail(t *testing.T) {
	club := seededClub()
	club.fail["GetPlayerStatistics"] = &clubapi.APIError{StatusCode: http.StatusInternalServerError}
	res, err := QueryPlayerDetail(context.Background(), PlayerDetailQuery{ID: "1", IncludePayments: true}, PlayerDetailDeps{Players: club, Payments: club})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Player.FirstName != "Ana" || res.Stats != nil || len(res.Payments) != 2 {
		t.Errorf("res = %+v", res)
	}

	_, err = QueryPlayerDetail(context.Background(), PlayerDetailQuery{ID: "404"}, PlayerDetailDeps{Players: club})
	if !clubapi.IsNotFound(err) {
		t.Errorf("err = %v, want 404", err)
	}
}

// TestQueryPlayerDetail_PaymentsGated verifies payments are skipped when not allowed.
func TestQueryPlayerDetail_PaymentsGated(t *testing.T) {
	club := seededClub()
	res, err := QueryPlayerDetail(context.Background(), PlayerDetailQuery{ID: "2"}, PlayerDetailDeps{Players: club, Payments: club})
	if err != nil {
		t.Fatal(err)
	}
	if club.called("ListPaymentsByPlayer") || res.Stats == nil || res.Stats.TotalGoals != 12 {
		t.Errorf("calls = %v, stats = %v", club.calls, res.Stats)
	}
}

// TestQueryTeamDetail verifies roster candidates exclude current players.
func TestQueryTeamDetail(t *testing.T) {
	res, err := QueryTeamDetail(context.Background(), "t1", TeamDetailDeps{Teams: seededClub(), Players: seededClub()})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Candidates) != 2 || res.Stats == nil || res.Stats.Won != 3 {
		t.Errorf("res = %+v", res)
	}
}

// TestQueryTrainingDetail verifies the attendance checklist.
func TestQueryTrainingDetail(t *testing.T) {
	club := seededClub()
	res, err := QueryTrainingDetail(context.Background(), "tr1", TrainingDetailDeps{Trainings: club, Players: club})
	if err != nil {
		t.Fatal(err)
	}
	want := []AttendanceRow{{Player: club.players[0]}, {Player: club.players[1], Attended: true}}
	if diff := cmp.Diff(want, res.Checklist); diff != "" {
		t.Errorf("checklist mismatch (-want +got):\n%s", diff)
	}
	if res.Minutes != 95 {
		t.Errorf("Minutes = %d", res.Minutes)
	}
}

// TestQueryPaymentDetail verifies overdue days on a single payment.
func TestQueryPaymentDetail(t *testing.T) {
	res, err := QueryPaymentDetail(context.Background(), "p3", PaymentDetailDeps{Gateway: seededClub(), Clock: clockwork.NewFakeClockAt(testNow)})
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsOverdue || res.OverdueDays != 5 {
		t.Errorf("res = %+v", res)
	}
}

// TestQueryEventDetail verifies participants are not offered again.
func TestQueryEventDetail(t *testing.T) {
	club := seededClub()
	res, err := QueryEventDetail(context.Background(), "e1", EventDetailDeps{Events: club, Players: club})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].ID != "1" || res.Limited {
		t.Errorf("res = %+v", res)
	}
}

// TestQueryFormOptions verifies only requested lists load.
func TestQueryFormOptions(t *testing.T) {
	club := seededClub()
	opts, err := QueryFormOptions(context.Background(), FormOptionsQuery{Teams: true, Players: true},
		FormOptionsDeps{Teams: club, Coaches: club, Players: club})
	if err != nil {
		t.Fatal(err)
	}
	if len(opts.Teams) != 1 || len(opts.Players) != 2 || opts.Coaches != nil {
		t.Errorf("opts = %+v", opts)
	}
	if club.called("ListCoaches") {
		t.Error("coaches were not requested")
	}
}
