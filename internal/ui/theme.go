package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                 string
	Title, Muted, Accent, Success, Error lipgloss.Style
	Price, Selected                      lipgloss.Style
	Border                               lipgloss.Border
	BorderColor, HighlightColor          lipgloss.TerminalColor
	SymOK, SymFail, SymStar, SymPet      string
	SymCursor                            string
}

var current = themeFor("classic")

// SetTheme switches the palette. Unknown names get the classic theme.
func SetTheme(name string) { current = themeFor(name) }

// Current exposes what renderers need.
func Current() Theme { return current }

// DisableColor forces plain output regardless of the terminal.
func DisableColor() { lipgloss.SetColorProfile(termenv.Ascii) }

func themeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:           "neon",
			Title:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:          lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:         lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:          lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Price:          lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			Selected:       lipgloss.NewStyle().Bold(true).Reverse(true),
			Border:         lipgloss.RoundedBorder(),
			BorderColor:    lipgloss.Color("8"),
			HighlightColor: lipgloss.Color("13"),
			SymOK:          "✔", SymFail: "✖", SymStar: "★", SymPet: "🐾",
			SymCursor: "▶",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Name:  "mono",
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain, Price: plain,
			Selected:       plain.Reverse(true),
			Border:         lipgloss.ASCIIBorder(),
			BorderColor:    lipgloss.NoColor{},
			HighlightColor: lipgloss.NoColor{},
			SymOK:          "ok", SymFail: "x", SymStar: "*", SymPet: "pet",
			SymCursor: ">",
		}
	default: // classic
		return Theme{
			Name:           "classic",
			Title:          lipgloss.NewStyle().Bold(true),
			Muted:          lipgloss.NewStyle().Faint(true),
			Accent:         lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:          lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Price:          lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
			Selected:       lipgloss.NewStyle().Bold(true).Reverse(true),
			Border:         lipgloss.RoundedBorder(),
			BorderColor:    lipgloss.Color("8"),
			HighlightColor: lipgloss.Color("204"),
			SymOK:          "✔", SymFail: "✖", SymStar: "★", SymPet: "🐾",
			SymCursor: ">",
		}
	}
}
