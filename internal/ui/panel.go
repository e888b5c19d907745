package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymOK+" "+msg))
}

func Fail(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}

// PanelString frames lines in a box using the current theme.
func PanelString(lines []string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Panel draws a framed box to w.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, PanelString(lines))
}
