package event_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/event"
	"clubadmin/internal/domain/player"
)

// TestForm_Compose tests event payload validation.
func TestForm_Compose(t *testing.T) {
	base := event.Form{
		Title: "Cena de fin de temporada", EventType: "Social",
		StartDate: "2025-12-12T20:00", EndDate: "2025-12-12T23:00", Location: "Sede",
	}

	tests := []struct {
		name    string
		mutate  func(*event.Form)
		wantErr error
	}{
		{"valid minimal", func(*event.Form) {}, nil},
		{"blank title", func(f *event.Form) { f.Title = " " }, event.ErrEmptyTitle},
		{"missing end", func(f *event.Form) { f.EndDate = "" }, event.ErrMissingWindow},
		{"inverted window", func(f *event.Form) { f.EndDate = "2025-12-11T20:00" }, event.ErrEndBeforeStart},
		{"zero capacity", func(f *event.Form) { f.Capacity = "0" }, event.ErrInvalidCapacity},
		{"negative cost", func(f *event.Form) { f.Cost = "-1" }, event.ErrInvalidCost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base
			tt.mutate(&f)
			_, err := f.Compose()
			if err != tt.wantErr {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestForm_Compose_OptionalNumbers tests that blank capacity and cost are null.
func TestForm_Compose_OptionalNumbers(t *testing.T) {
	f := event.Form{Title: "Viaje", StartDate: "2025-12-12", EndDate: "2025-12-14"}
	p, err := f.Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if p.Capacity != nil || p.Cost != nil || p.Requirements != nil {
		t.Errorf("blank optionals should be nil, got %+v", p)
	}

	f.Capacity, f.Cost = "30", "150000"
	p, err = f.Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if *p.Capacity != 30 || *p.Cost != 150000 {
		t.Errorf("capacity=%d cost=%v", *p.Capacity, *p.Cost)
	}
}

// TestEvent_SpotsLeft tests remaining capacity.
func TestEvent_SpotsLeft(t *testing.T) {
	capacity := 2
	e := event.Event{Capacity: &capacity, Participants: []player.Player{{ID: "1"}}}
	if left, ok := e.SpotsLeft(); !ok || left != 1 {
		t.Errorf("SpotsLeft = (%d, %v), want (1, true)", left, ok)
	}
	if _, ok := (event.Event{}).SpotsLeft(); ok {
		t.Error("unlimited event should report ok=false")
	}
}

// TestNewParticipants tests participant selection.
func TestNewParticipants(t *testing.T) {
	got, err := event.NewParticipants([]string{"3", "", "7"})
	if err != nil {
		t.Fatalf("NewParticipants: %v", err)
	}
	if diff := cmp.Diff([]entity.ID{"3", "7"}, got.PlayerIDs); diff != "" {
		t.Errorf("PlayerIDs mismatch (-want +got):\n%s", diff)
	}
	if _, err := event.NewParticipants([]string{""}); err != event.ErrNoParticipants {
		t.Errorf("err = %v, want ErrNoParticipants", err)
	}
}
