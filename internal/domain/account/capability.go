package account

// Capability is a navigation entry or quick action that can be shown to a role.
type Capability string

// Navigation capabilities
const (
	NavDashboard Capability = "nav_dashboard"
	NavPlayers   Capability = "nav_players"
	NavCoaches   Capability = "nav_coaches"
	NavTeams     Capability = "nav_teams"
	NavMatches   Capability = "nav_matches"
	NavTrainings Capability = "nav_trainings"
	NavPayments  Capability = "nav_payments"
	NavEvents    Capability = "nav_events"
	NavSettings  Capability = "nav_settings"
)

// Quick action capabilities
const (
	ActionNewPlayer       Capability = "action_new_player"
	ActionNewCoach        Capability = "action_new_coach"
	ActionNewTeam         Capability = "action_new_team"
	ActionNewMatch        Capability = "action_new_match"
	ActionRegisterPayment Capability = "action_register_payment"
	ActionNewEvent        Capability = "action_new_event"
)

var quickActions = []Capability{
	ActionNewPlayer, ActionNewCoach, ActionNewTeam,
	ActionNewMatch, ActionRegisterPayment, ActionNewEvent,
}

// Capabilities returns what the role may see, in menu order.
func (r Role) Capabilities() []Capability {
	switch r {
	case RoleAdmin:
		caps := []Capability{
			NavDashboard, NavPlayers, NavCoaches, NavTeams, NavMatches,
			NavTrainings, NavPayments, NavEvents, NavSettings,
		}
		return append(caps, quickActions...)
	case RoleManager:
		caps := []Capability{
			NavDashboard, NavPlayers, NavCoaches, NavTeams, NavMatches,
			NavTrainings, NavPayments, NavEvents,
		}
		return append(caps, quickActions...)
	case RoleCoach:
		return []Capability{
			NavDashboard, NavPlayers, NavTeams, NavMatches, NavTrainings, NavEvents,
		}
	case RolePlayer:
		return []Capability{NavDashboard}
	case RoleUnknown:
		return nil
	}
	return nil
}

// Can reports whether the role has the capability.
// INVARIANT: Role is not mutated
func (r Role) Can(c Capability) bool {
	for _, have := range r.Capabilities() {
		if have == c {
			return true
		}
	}
	return false
}

// NavEntry is one sidebar link.
type NavEntry struct {
	Capability Capability
	Label      string
	Href       string
	Icon       string
}

// QuickAction is one dashboard shortcut.
type QuickAction struct {
	Capability Capability
	Label      string
	Href       string
}

// Navigation is the full sidebar in display order.
var Navigation = []NavEntry{
	{NavDashboard, "Dashboard", "/dashboard", "dashboard"},
	{NavPlayers, "Jugadores", "/players", "users"},
	{NavCoaches, "Entrenadores", "/coaches", "user-cog"},
	{NavTeams, "Equipos", "/teams", "shield"},
	{NavMatches, "Partidos", "/matches", "trophy"},
	{NavTrainings, "Entrenamientos", "/trainings", "dumbbell"},
	{NavPayments, "Pagos", "/payments", "dollar"},
	{NavEvents, "Eventos", "/events", "party"},
	{NavSettings, "Configuración", "/settings", "settings"},
}

// QuickActions are the dashboard shortcuts in display order.
var QuickActions = []QuickAction{
	{ActionNewPlayer, "Nuevo Jugador", "/players/new"},
	{ActionNewCoach, "Nuevo Entrenador", "/coaches/new"},
	{ActionNewTeam, "Nuevo Equipo", "/teams/new"},
	{ActionNewMatch, "Nuevo Partido", "/matches/new"},
	{ActionRegisterPayment, "Registrar Pago", "/payments/new"},
	{ActionNewEvent, "Nuevo Evento", "/events/new"},
}

// NavigationFor filters the sidebar for a role.
func NavigationFor(r Role) []NavEntry {
	var out []NavEntry
	for _, e := range Navigation {
		if r.Can(e.Capability) {
			out = append(out, e)
		}
	}
	return out
}

// QuickActionsFor filters the dashboard shortcuts for a role.
func QuickActionsFor(r Role) []QuickAction {
	var out []QuickAction
	for _, a := range QuickActions {
		if r.Can(a.Capability) {
			out = append(out, a)
		}
	}
	return out
}
