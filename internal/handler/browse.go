// This file defines the public browsing API: movies, halls and
// showtimes.  No authentication is applied; responses contain only
// catalog data, never reservation state (that is the seat map's job).
package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arminveh/cinema-box-office/internal/catalog"
	"github.com/arminveh/cinema-box-office/internal/model"
)

// hallTypeOf normalises a query value to the HallType enum form.
func hallTypeOf(s string) model.HallType {
	return model.HallType(strings.ToUpper(strings.TrimSpace(s)))
}

// BrowseHandler serves read-only catalog lookups.
type BrowseHandler struct {
	Catalog *catalog.Catalog
}

// NewBrowseHandler constructs a BrowseHandler.
func NewBrowseHandler(cat *catalog.Catalog) *BrowseHandler {
	if cat == nil {
		panic("nil catalog passed to NewBrowseHandler")
	}
	return &BrowseHandler{Catalog: cat}
}

// GetMovies handles GET /v1/movies and returns the full movie list.
func (h *BrowseHandler) GetMovies(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Catalog.Movies()})
}

// GetHalls handles GET /v1/halls.  The optional ?type= query filters
// by hall type; an unknown type yields an empty list, not an error.
func (h *BrowseHandler) GetHalls(c echo.Context) error {
	if t := c.QueryParam("type"); t != "" {
		return c.JSON(http.StatusOK, echo.Map{"items": h.Catalog.HallsByType(hallTypeOf(t))})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": h.Catalog.Halls()})
}

// showtimeView is one scheduled screening in list responses.
type showtimeView struct {
	Date       string `json:"date"`
	Slot       string `json:"slot"`
	MovieID    uint64 `json:"movie_id"`
	MovieTitle string `json:"movie_title,omitempty"`
}

// GetShowtimes handles GET /v1/halls/:id/showtimes?date=YYYY-MM-DD and
// enumerates the hall's screenings for that date, one per time slot.
func (h *BrowseHandler) GetShowtimes(c echo.Context) error {
	hallID, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	date := c.QueryParam("date")
	shows, err := h.Catalog.Showtimes(hallID, date)
	if err != nil {
		if err == catalog.ErrHallNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	items := make([]showtimeView, 0, len(shows))
	for _, st := range shows {
		v := showtimeView{Date: st.Key.Date, Slot: st.Key.Slot, MovieID: st.MovieID}
		if m, err := h.Catalog.MovieByID(st.MovieID); err == nil {
			v.MovieTitle = m.Title
		}
		items = append(items, v)
	}
	return c.JSON(http.StatusOK, echo.Map{"hall_id": hallID, "date": date, "items": items})
}
