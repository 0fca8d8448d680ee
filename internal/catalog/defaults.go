package catalog

import "github.com/arminveh/cinema-box-office/internal/model"

// Defaults returns the built-in catalog used when no config file is
// supplied: one hall of each type, a small movie list and the
// concession menu.  Handy for local runs and tests.
func Defaults() *Catalog {
	c, err := New(
		[]model.Hall{
			{ID: 1, Type: model.HallStandard},
			{ID: 2, Type: model.HallPremium},
			{ID: 3, Type: model.HallLounge},
		},
		[]model.Movie{
			{ID: 1, Title: "The Last Reel", Genre: "Drama", DurationMin: 128, Rating: "PG-13"},
			{ID: 2, Title: "Midnight Circuit", Genre: "Thriller", DurationMin: 104, Rating: "R"},
			{ID: 3, Title: "Paper Planets", Genre: "Animation", DurationMin: 92, Rating: "G"},
		},
		[]model.FoodItem{
			{ID: 1, Name: "Popcorn (large)", PriceCents: 650},
			{ID: 2, Name: "Popcorn (small)", PriceCents: 450},
			{ID: 3, Name: "Soda", PriceCents: 350},
			{ID: 4, Name: "Nachos", PriceCents: 550},
			{ID: 5, Name: "Candy", PriceCents: 300},
		},
	)
	if err != nil {
		// The built-in records are valid by construction.
		panic(err)
	}
	return c
}
