package listing

import (
	"fmt"
	"strconv"
	"strings"
)

// CurrencyPrefix is prepended to every displayed price.
const CurrencyPrefix = "R$ "

// Card is the flat set of fields a card renderer needs for one listing.
type Card struct {
	Key             string
	Title           string
	Description     string
	State           string
	ReservationType string
	Price           string
	PetFriendly     bool
	Highlighted     bool
	ImageURL        string
	Rating          float64
}

// CardOptions resolves image identifiers to display URLs.
type CardOptions struct {
	ImageBasePath    string
	PlaceholderImage string
}

// Region returns the last comma-separated part of an address (the state).
func Region(address string) string {
	if address == "" {
		return ""
	}
	parts := strings.Split(address, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}

// FormatPrice renders a price with the currency prefix and no trailing zeros.
func FormatPrice(price float64) string {
	return CurrencyPrefix + strconv.FormatFloat(price, 'f', -1, 64)
}

// ImageURL joins the base path with the first image, or returns placeholder
// when there is no usable first image.
func ImageURL(images []string, basePath, placeholder string) string {
	if len(images) == 0 || strings.TrimSpace(images[0]) == "" {
		return placeholder
	}
	return basePath + images[0]
}

// Keys derives a unique, stable identity for each listing. The service has no
// record id: the title is used first, then title plus address, then the first
// free #n suffix.
func Keys(listings []Listing) []string {
	titles := make(map[string]int, len(listings))
	for _, l := range listings {
		titles[l.Title]++
	}
	bases := make([]string, len(listings))
	for i, l := range listings {
		bases[i] = l.Title
		if titles[l.Title] > 1 {
			bases[i] = l.Title + " | " + l.Address
		}
	}

	// First occurrences keep their base; later ones take the first free #n.
	keys := make([]string, len(listings))
	done := make([]bool, len(listings))
	used := make(map[string]bool, len(listings))
	for i, base := range bases {
		if !used[base] {
			used[base] = true
			keys[i], done[i] = base, true
		}
	}
	for i, base := range bases {
		if done[i] {
			continue
		}
		k := base
		for n := 2; used[k]; n++ {
			k = fmt.Sprintf("%s #%d", base, n)
		}
		used[k] = true
		keys[i] = k
	}
	return keys
}

// NewCard maps a listing onto the card display contract.
func NewCard(l Listing, key string, opt CardOptions) Card {
	return Card{
		Key:             key,
		Title:           l.Title,
		Description:     l.Description,
		State:           Region(l.Address),
		ReservationType: l.ReservationType,
		Price:           FormatPrice(l.Price),
		PetFriendly:     l.PetFriendly,
		Highlighted:     l.Highlighted,
		ImageURL:        ImageURL(l.Images, opt.ImageBasePath, opt.PlaceholderImage),
		Rating:          l.AverageRating,
	}
}

// Cards maps a whole collection, one card per listing, in order.
func Cards(listings []Listing, opt CardOptions) []Card {
	keys := Keys(listings)
	out := make([]Card, 0, len(listings))
	for i, l := range listings {
		out = append(out, NewCard(l, keys[i], opt))
	}
	return out
}
