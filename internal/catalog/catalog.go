// Package catalog holds the static configuration of the cinema: the
// halls with their seat grids, the movie list and the daily time-slot
// schedule.  Everything here is loaded once at startup and read-only
// afterwards, so the catalog needs no locking.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/arminveh/cinema-box-office/internal/model"
)

// ErrHallNotFound is returned when a hall lookup fails.
var ErrHallNotFound = errors.New("hall not found")

// ErrMovieNotFound is returned when a movie lookup fails.
var ErrMovieNotFound = errors.New("movie not found")

// Catalog provides lookups over the loaded halls and movies and
// validates seat addresses against hall grids.
type Catalog struct {
	halls    map[uint64]*model.Hall
	byType   map[model.HallType][]*model.Hall
	hallList []*model.Hall
	movies   map[uint64]*model.Movie
	movieLst []*model.Movie
	menu     []model.FoodItem
}

// configFile mirrors the on-disk JSON layout consumed by LoadFile.
type configFile struct {
	Halls  []model.Hall     `json:"halls"`
	Movies []model.Movie    `json:"movies"`
	Menu   []model.FoodItem `json:"menu"`
}

// New builds a catalog from hall, movie and menu records.  Halls with a zero
// grid dimension fall back to their type's default layout.  It fails
// when a hall id or movie id repeats, when a hall type is unknown, or
// when a grid needs more than 26 rows (rows are letters A..Z).
func New(halls []model.Hall, movies []model.Movie, menu []model.FoodItem) (*Catalog, error) {
	c := &Catalog{
		halls:  make(map[uint64]*model.Hall, len(halls)),
		byType: make(map[model.HallType][]*model.Hall),
		movies: make(map[uint64]*model.Movie, len(movies)),
	}
	for i := range halls {
		h := halls[i]
		if !h.Type.Valid() {
			return nil, fmt.Errorf("hall %d: unknown type %q", h.ID, h.Type)
		}
		if h.Rows == 0 || h.Cols == 0 {
			h.Rows, h.Cols = h.Type.DefaultGrid()
		}
		if h.Rows > 26 {
			return nil, fmt.Errorf("hall %d: %d rows exceeds the A-Z row range", h.ID, h.Rows)
		}
		if _, dup := c.halls[h.ID]; dup {
			return nil, fmt.Errorf("duplicate hall id %d", h.ID)
		}
		hc := h
		c.halls[h.ID] = &hc
		c.byType[h.Type] = append(c.byType[h.Type], &hc)
		c.hallList = append(c.hallList, &hc)
	}
	for i := range movies {
		m := movies[i]
		if _, dup := c.movies[m.ID]; dup {
			return nil, fmt.Errorf("duplicate movie id %d", m.ID)
		}
		mc := m
		c.movies[m.ID] = &mc
		c.movieLst = append(c.movieLst, &mc)
	}
	c.menu = append(c.menu, menu...)
	return c, nil
}

// LoadFile reads a catalog config file (JSON with "halls" and "movies"
// arrays) and builds the catalog from it.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog config: %w", err)
	}
	var cf configFile
	if err := json.Unmarshal(raw, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog config: %w", err)
	}
	return New(cf.Halls, cf.Movies, cf.Menu)
}

// HallByID returns the hall with the given id or ErrHallNotFound.
func (c *Catalog) HallByID(id uint64) (*model.Hall, error) {
	h, ok := c.halls[id]
	if !ok {
		return nil, ErrHallNotFound
	}
	return h, nil
}

// HallsByType returns every hall of the given type.  An unknown type
// yields an empty slice, never an error.
func (c *Catalog) HallsByType(t model.HallType) []*model.Hall {
	hs := c.byType[t]
	out := make([]*model.Hall, len(hs))
	copy(out, hs)
	return out
}

// Halls returns all halls in load order.
func (c *Catalog) Halls() []*model.Hall {
	out := make([]*model.Hall, len(c.hallList))
	copy(out, c.hallList)
	return out
}

// IsInGrid reports whether the address falls inside the hall's seat
// grid: row within the first h.Rows letters from 'A', column between 1
// and h.Cols inclusive.
func (c *Catalog) IsInGrid(h *model.Hall, a model.SeatAddress) bool {
	if a.Row < 'A' || uint32(a.Row-'A') >= h.Rows {
		return false
	}
	return a.Col >= 1 && a.Col <= h.Cols
}

// MovieByID returns the movie with the given id or ErrMovieNotFound.
func (c *Catalog) MovieByID(id uint64) (*model.Movie, error) {
	m, ok := c.movies[id]
	if !ok {
		return nil, ErrMovieNotFound
	}
	return m, nil
}

// Movies returns all movies in load order.
func (c *Catalog) Movies() []*model.Movie {
	out := make([]*model.Movie, len(c.movieLst))
	copy(out, c.movieLst)
	return out
}

// Menu returns the concession menu in load order.
func (c *Catalog) Menu() []model.FoodItem {
	out := make([]model.FoodItem, len(c.menu))
	copy(out, c.menu)
	return out
}

// MenuItem returns the menu entry with the given id, or false when no
// such item exists.
func (c *Catalog) MenuItem(id uint64) (model.FoodItem, bool) {
	for _, it := range c.menu {
		if it.ID == id {
			return it, true
		}
	}
	return model.FoodItem{}, false
}
