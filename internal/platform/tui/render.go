package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Gcxe/endless-runner-web/internal/core"
)

// colorStyles maps core.Color values to lipgloss styles, indexed by the
// color constant.
var colorStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, core.ColorGray+1)
	styles[core.ColorDefault] = lipgloss.NewStyle()

	ansi := map[core.Color]string{
		core.ColorRed:           "1",
		core.ColorGreen:         "2",
		core.ColorYellow:        "3",
		core.ColorBlue:          "4",
		core.ColorMagenta:       "5",
		core.ColorCyan:          "6",
		core.ColorWhite:         "7",
		core.ColorBrightRed:     "9",
		core.ColorBrightGreen:   "10",
		core.ColorBrightYellow:  "11",
		core.ColorBrightBlue:    "12",
		core.ColorBrightMagenta: "13",
		core.ColorBrightCyan:    "14",
		core.ColorBrightWhite:   "15",
		core.ColorOrange:        "208",
		core.ColorGray:          "245",
	}
	for c, code := range ansi {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return styles
}()

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells sharing a color are styled as one run to keep the ANSI
// overhead down at 60 fps.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			runColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != runColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style := colorStyles[core.ColorDefault]
			if int(runColor) < len(colorStyles) {
				style = colorStyles[runColor]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
