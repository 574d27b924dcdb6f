package match_test

import (
	"testing"

	"clubadmin/internal/domain/match"
)

// TestForm_Compose tests match payload construction and validation.
func TestForm_Compose(t *testing.T) {
	tests := []struct {
		name    string
		form    match.Form
		wantErr error
	}{
		{
			name: "valid",
			form: match.Form{HomeTeamID: "1", AwayTeamID: "2", MatchDate: "2025-11-02T18:00", Venue: "Coliseo", Competition: "Liga"},
		},
		{name: "missing teams", form: match.Form{HomeTeamID: "1", MatchDate: "2025-11-02T18:00"}, wantErr: match.ErrMissingTeams},
		{name: "same teams", form: match.Form{HomeTeamID: "1", AwayTeamID: "1", MatchDate: "2025-11-02T18:00"}, wantErr: match.ErrSameTeams},
		{name: "missing date", form: match.Form{HomeTeamID: "1", AwayTeamID: "2"}, wantErr: match.ErrMissingDate},
		{name: "bad status", form: match.Form{HomeTeamID: "1", AwayTeamID: "2", MatchDate: "2025-11-02", Status: "abandoned"}, wantErr: match.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.form.Compose()
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil {
				if p.Round != nil || p.Notes != nil {
					t.Errorf("empty optional text should be nil")
				}
				if p.MatchDate != "2025-11-02T18:00:00Z" {
					t.Errorf("MatchDate = %q", p.MatchDate)
				}
			}
		})
	}
}

// TestParseScore tests score parsing.
func TestParseScore(t *testing.T) {
	s, err := match.ParseScore("28", " 25 ")
	if err != nil || s.HomeScore != 28 || s.AwayScore != 25 {
		t.Errorf("ParseScore = %+v, %v", s, err)
	}
	for _, bad := range [][2]string{{"", "1"}, {"-1", "3"}, {"3", "x"}} {
		if _, err := match.ParseScore(bad[0], bad[1]); err != match.ErrInvalidScore {
			t.Errorf("ParseScore(%q,%q) err = %v", bad[0], bad[1], err)
		}
	}
}

// TestStatus_Label tests badge labels including unknown fallthrough.
func TestStatus_Label(t *testing.T) {
	if match.StatusInProgress.Label() != "En Juego" {
		t.Errorf("label = %q", match.StatusInProgress.Label())
	}
	if match.Status("abandoned").Label() != "abandoned" {
		t.Error("unknown status should render raw")
	}
	if match.Status("abandoned").Color() != "gray" {
		t.Error("unknown status should be gray")
	}
}
