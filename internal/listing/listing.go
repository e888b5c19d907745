package listing

import "strings"

// Listing is one search result as the listings service returns it.
type Listing struct {
	Title           string   `json:"titulo"`
	Description     string   `json:"descricao"`
	Address         string   `json:"endereco"`
	ReservationType string   `json:"tipo"`
	Price           float64  `json:"preco"`
	PetFriendly     bool     `json:"petfriendly"`
	Highlighted     bool     `json:"destacado"`
	Images          []string `json:"imagens"`
	AverageRating   float64  `json:"avalMedia,omitempty"`
}

// Review is a single score left for the address of a listing.
type Review struct {
	Address string  `json:"endereco"`
	Score   float64 `json:"nota"`
}

// Slug is the identifier the service uses for a listing in its paths.
func Slug(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}

// AverageScore returns the mean score, or 0 for no reviews.
func AverageScore(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Score
	}
	return sum / float64(len(reviews))
}
