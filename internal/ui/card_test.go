package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusbarney/ess-hotel-project/internal/listing"
)

func init() { DisableColor() }

func sampleCard() listing.Card {
	return listing.Card{
		Key:             "Casa de Praia",
		Title:           "Casa de Praia",
		Description:     "Pé na areia, varanda com rede.",
		State:           "PE",
		ReservationType: "Casa",
		Price:           "R$ 450",
		PetFriendly:     true,
		Highlighted:     true,
		ImageURL:        "/path/to/image/praia.jpg",
		Rating:          4.8,
	}
}

func TestRenderCardShowsEveryField(t *testing.T) {
	SetTheme("classic")
	out := RenderCard(sampleCard(), 60, false)

	for _, want := range []string{
		"★ Casa de Praia",
		"Casa · PE",
		"R$ 450",
		"pet friendly",
		"4.8",
		"Pé na areia",
		"/path/to/image/praia.jpg",
	} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 60, lipgloss.Width(out))
}

func TestRenderCardPlainListing(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	c := sampleCard()
	c.Highlighted, c.PetFriendly, c.Rating, c.State = false, false, 0, ""

	out := RenderCard(c, 40, false)
	assert.NotContains(t, out, "*")
	assert.NotContains(t, out, "pet")
	assert.Contains(t, out, "Casa de Praia")
	assert.True(t, strings.HasPrefix(out, "+"), "mono theme uses ascii borders")
}

func TestRenderCardMarksSelection(t *testing.T) {
	SetTheme("classic")
	assert.Contains(t, RenderCard(sampleCard(), 60, true), "> ★ Casa de Praia")
	assert.NotContains(t, RenderCard(sampleCard(), 60, false), "> ")

	SetTheme("mono")
	defer SetTheme("classic")
	out := RenderCard(sampleCard(), 60, true)
	assert.Contains(t, out, "> * Casa de Praia")
	assert.True(t, strings.HasPrefix(out, "╔"), "mono selection uses the double border")
}

func TestRenderCardsOffsets(t *testing.T) {
	SetTheme("classic")
	cards := []listing.Card{sampleCard(), sampleCard(), sampleCard()}
	cards[1].Description = ""

	out, offsets := RenderCards(cards, 50, 1)
	require.Len(t, offsets, 3)
	assert.Equal(t, 0, offsets[0])

	first := lipgloss.Height(RenderCard(cards[0], 50, false))
	second := lipgloss.Height(RenderCard(cards[1], 50, true))
	assert.Equal(t, first, offsets[1])
	assert.Equal(t, first+second, offsets[2])
	assert.Equal(t, 3, strings.Count(out, "Casa de Praia"))
}

func TestFailAndOK(t *testing.T) {
	SetTheme("classic")
	var buf bytes.Buffer
	OK(&buf, "done")
	Fail(&buf, "broken")
	assert.Equal(t, "✔ done\n✖ broken\n", buf.String())
}
