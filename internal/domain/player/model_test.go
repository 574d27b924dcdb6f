package player_test

import (
	"encoding/json"
	"testing"

	"clubadmin/internal/domain/player"
)

// TestPosition_IsValid tests the closed set of positions.
func TestPosition_IsValid(t *testing.T) {
	for _, p := range player.Positions {
		if !p.IsValid() {
			t.Errorf("%s should be valid", p)
		}
	}
	if player.Position("striker").IsValid() {
		t.Error("striker is not a handball position")
	}
	if len(player.Positions) != 7 {
		t.Errorf("len(Positions) = %d, want 7", len(player.Positions))
	}
}

// TestPlayer_Matches tests client-side search.
func TestPlayer_Matches(t *testing.T) {
	p := player.Player{FirstName: "Lucía", LastName: "Gómez", Email: "lucia@club.co", DocumentNumber: "1020304050"}
	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"lucía", true},
		{"GÓMEZ", true},
		{"gomez", true},
		{"lucia gomez", true},
		{"lucia@", true},
		{"102030", true},
		{"pedro", false},
	}
	for _, tt := range tests {
		if got := p.Matches(tt.query); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

// TestPlayer_Decode verifies a realistic API payload decodes.
func TestPlayer_Decode(t *testing.T) {
	raw := `{"id":3,"firstName":"Ana","lastName":"Ríos","birthDate":"2008-05-02","position":"pivot",
		"jerseyNumber":9,"height":null,"team":{"id":"t1","name":"Juvenil A"},"isActive":true,
		"createdAt":"2025-01-10T12:00:00Z","updatedAt":"2025-01-11T12:00:00Z"}`
	var p player.Player
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.ID != "3" || p.Position != player.PositionPivot || *p.JerseyNumber != 9 {
		t.Errorf("unexpected player: %+v", p)
	}
	if p.Height != nil {
		t.Errorf("Height = %v, want nil", *p.Height)
	}
	if p.Team == nil || p.Team.Name != "Juvenil A" {
		t.Errorf("Team = %+v", p.Team)
	}
	if p.CreatedAt.IsZero() {
		t.Error("CreatedAt not decoded")
	}
}

// TestCountActive tests the active/inactive counters.
func TestCountActive(t *testing.T) {
	a, i := player.CountActive([]player.Player{{IsActive: true}, {IsActive: false}, {IsActive: true}})
	if a != 2 || i != 1 {
		t.Errorf("CountActive = %d,%d want 2,1", a, i)
	}
}
