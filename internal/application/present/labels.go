package present

import (
	"clubadmin/internal/domain/player"
)

// PositionLabel returns the Spanish name of a playing position.
func PositionLabel(p player.Position) string {
	switch p {
	case player.PositionGoalkeeper:
		return "Portero"
	case player.PositionLeftWing:
		return "Extremo Izquierdo"
	case player.PositionLeftBack:
		return "Lateral Izquierdo"
	case player.PositionCenterBack:
		return "Central"
	case player.PositionRightBack:
		return "Lateral Derecho"
	case player.PositionRightWing:
		return "Extremo Derecho"
	case player.PositionPivot:
		return "Pivote"
	}
	return string(p)
}

// HandLabel returns the Spanish name of a dominant hand.
func HandLabel(h player.Hand) string {
	switch h {
	case player.HandLeft:
		return "Zurdo"
	case player.HandRight:
		return "Diestro"
	}
	return "-"
}

// ActiveLabel renders an active flag as a badge text.
func ActiveLabel(active bool) string {
	if active {
		return "Activo"
	}
	return "Inactivo"
}
