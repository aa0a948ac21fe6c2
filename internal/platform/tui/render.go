package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/autotheft/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorGrass:    lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	core.ColorRoad:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorBuilding: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorVehicle:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorOccupied: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorPlayer:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorTarget:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorTracer:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	core.ColorHUD:      lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorAlert:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	core.ColorDim:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
