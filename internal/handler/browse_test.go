package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arminveh/cinema-box-office/internal/catalog"
)

func TestGetMovies(t *testing.T) {
	e := echo.New()
	h := NewBrowseHandler(catalog.Defaults())
	req := httptest.NewRequest(http.MethodGet, "/v1/movies", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.GetMovies(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["items"], 3)
}

func TestGetHallsFilterByType(t *testing.T) {
	e := echo.New()
	h := NewBrowseHandler(catalog.Defaults())

	req := httptest.NewRequest(http.MethodGet, "/v1/halls?type=premium", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.GetHalls(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["items"], 1, "lowercase filter matches")

	req = httptest.NewRequest(http.MethodGet, "/v1/halls?type=IMAX", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, h.GetHalls(e.NewContext(req, rec)))
	assert.Len(t, decode(t, rec)["items"], 0)

	req = httptest.NewRequest(http.MethodGet, "/v1/halls", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, h.GetHalls(e.NewContext(req, rec)))
	assert.Len(t, decode(t, rec)["items"], 3)
}

func TestGetShowtimes(t *testing.T) {
	e := echo.New()
	h := NewBrowseHandler(catalog.Defaults())

	req := httptest.NewRequest(http.MethodGet, "/v1/halls/1/showtimes?date=2026-09-01", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/halls/:id/showtimes")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.GetShowtimes(c))
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)
	items := got["items"].([]any)
	require.Len(t, items, len(catalog.TimeSlots))
	first := items[0].(map[string]any)
	assert.Equal(t, "10:00 AM", first["slot"])
	assert.NotEmpty(t, first["movie_title"])

	// Unknown hall is a 404.
	rec2 := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/halls/42/showtimes?date=2026-09-01", nil), rec2)
	c.SetPath("/v1/halls/:id/showtimes")
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.GetShowtimes(c))
	assert.Equal(t, http.StatusNotFound, rec2.Code)
}
