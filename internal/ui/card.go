package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheusbarney/ess-hotel-project/internal/listing"
)

const minCardWidth = 24

// RenderCard draws one listing card, width columns wide including the border.
// Highlighted cards get the accent border and a star next to the title; the
// selected card is marked with the theme's cursor.
func RenderCard(c listing.Card, width int, selected bool) string {
	t := Current()
	if width < minCardWidth {
		width = minCardWidth
	}
	inner := width - 4 // border + padding

	title := c.Title
	if c.Highlighted {
		title = t.SymStar + " " + title
	}
	titleStyle := t.Title
	if selected {
		title = t.SymCursor + " " + title
		titleStyle = t.Selected
	}

	var meta []string
	if c.ReservationType != "" {
		meta = append(meta, c.ReservationType)
	}
	if c.State != "" {
		meta = append(meta, c.State)
	}

	priceLine := t.Price.Render(c.Price)
	if c.PetFriendly {
		priceLine += "  " + t.Success.Render(t.SymPet+" pet friendly")
	}
	if c.Rating > 0 {
		priceLine += "  " + t.Accent.Render(fmt.Sprintf("%s %.1f", t.SymStar, c.Rating))
	}

	lines := []string{titleStyle.Render(title)}
	if len(meta) > 0 {
		lines = append(lines, t.Muted.Render(strings.Join(meta, " · ")))
	}
	lines = append(lines, priceLine)
	if c.Description != "" {
		lines = append(lines, lipgloss.NewStyle().Width(inner).Render(c.Description))
	}
	lines = append(lines, t.Muted.Render(c.ImageURL))

	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Width(width - 2)
	if c.Highlighted {
		border = border.BorderForeground(t.HighlightColor)
	}
	if selected {
		border = border.BorderStyle(lipgloss.ThickBorder())
		if t.Name == "mono" {
			border = border.BorderStyle(lipgloss.DoubleBorder())
		}
	}
	return border.Render(strings.Join(lines, "\n"))
}

// RenderCards stacks the cards vertically and returns the first line of each
// card within the result, so callers can scroll to a given card.
func RenderCards(cards []listing.Card, width, selected int) (string, []int) {
	var b strings.Builder
	offsets := make([]int, len(cards))
	line := 0
	for i, c := range cards {
		offsets[i] = line
		s := RenderCard(c, width, i == selected)
		b.WriteString(s)
		b.WriteString("\n")
		line += lipgloss.Height(s)
	}
	return b.String(), offsets
}
