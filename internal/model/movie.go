package model

// Movie is a catalog entry for a film that can be scheduled into a
// hall.  The catalog loads movies at startup together with the halls
// and never mutates them afterwards.
//
// Fields:
//  ID          - identifier, unique across the catalog.
//  Title       - display title.
//  Genre       - free-form genre label.
//  DurationMin - running time in minutes.
//  Rating      - age rating tag, e.g. "PG-13".
type Movie struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	DurationMin uint32 `json:"duration_min"`
	Rating      string `json:"rating"`
}
