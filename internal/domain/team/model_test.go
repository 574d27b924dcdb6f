package team_test

import (
	"encoding/json"
	"testing"

	"clubadmin/internal/domain/team"
)

// TestForm_Compose tests team payload construction.
func TestForm_Compose(t *testing.T) {
	f := team.Form{
		Name: "Senior A", Category: "Masculino", Division: "Primera",
		FoundedYear: "1998", PrimaryColor: "#000000", SecondaryColor: "#FFFFFF",
	}
	p, err := f.Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if p.FoundedYear != 1998 {
		t.Errorf("FoundedYear = %d", p.FoundedYear)
	}
	body, _ := json.Marshal(p)
	var m map[string]any
	_ = json.Unmarshal(body, &m)
	if v, ok := m["headCoachId"]; !ok || v != nil {
		t.Errorf("headCoachId = %v (present %v), want explicit null", v, ok)
	}

	f.HeadCoachID = "12"
	p, _ = f.Compose()
	if p.HeadCoachID == nil || *p.HeadCoachID != "12" {
		t.Errorf("HeadCoachID = %v", p.HeadCoachID)
	}
}

// TestForm_Compose_Errors tests local validation.
func TestForm_Compose_Errors(t *testing.T) {
	if _, err := (team.Form{FoundedYear: "2000"}).Compose(); err != team.ErrEmptyName {
		t.Errorf("err = %v, want ErrEmptyName", err)
	}
	if _, err := (team.Form{Name: "A", FoundedYear: "two thousand"}).Compose(); err != team.ErrInvalidFoundedYear {
		t.Errorf("err = %v, want ErrInvalidFoundedYear", err)
	}
}
