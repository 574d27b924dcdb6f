package account_test

import (
	"testing"

	"clubadmin/internal/domain/account"
)

func navHrefs(r account.Role) []string {
	var out []string
	for _, e := range account.NavigationFor(r) {
		out = append(out, e.Href)
	}
	return out
}

// TestNavigationFor tests the sidebar filtering per role.
func TestNavigationFor(t *testing.T) {
	tests := []struct {
		role account.Role
		want []string
	}{
		{account.RoleAdmin, []string{"/dashboard", "/players", "/coaches", "/teams", "/matches", "/trainings", "/payments", "/events", "/settings"}},
		{account.RoleManager, []string{"/dashboard", "/players", "/coaches", "/teams", "/matches", "/trainings", "/payments", "/events"}},
		{account.RoleCoach, []string{"/dashboard", "/players", "/teams", "/matches", "/trainings", "/events"}},
		{account.RolePlayer, []string{"/dashboard"}},
		{account.RoleUnknown, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			got := navHrefs(tt.role)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestQuickActionsFor tests that only admin and manager get shortcuts.
func TestQuickActionsFor(t *testing.T) {
	if n := len(account.QuickActionsFor(account.RoleAdmin)); n != 6 {
		t.Errorf("admin quick actions = %d, want 6", n)
	}
	if n := len(account.QuickActionsFor(account.RoleManager)); n != 6 {
		t.Errorf("manager quick actions = %d, want 6", n)
	}
	if n := len(account.QuickActionsFor(account.RoleCoach)); n != 0 {
		t.Errorf("coach quick actions = %d, want 0", n)
	}
	if account.RoleCoach.Can(account.NavPayments) {
		t.Error("coach must not see payments")
	}
}

// TestCapabilityTable_CoversEveryEntry verifies every nav entry and quick action is reachable by some role.
func TestCapabilityTable_CoversEveryEntry(t *testing.T) {
	reachable := func(c account.Capability) bool {
		for _, r := range account.ValidRoles {
			if r.Can(c) {
				return true
			}
		}
		return false
	}
	for _, e := range account.Navigation {
		if !reachable(e.Capability) {
			t.Errorf("nav entry %s unreachable", e.Href)
		}
	}
	for _, a := range account.QuickActions {
		if !reachable(a.Capability) {
			t.Errorf("quick action %s unreachable", a.Href)
		}
	}
}
