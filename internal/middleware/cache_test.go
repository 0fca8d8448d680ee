package middleware

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arminveh/cinema-box-office/internal/config"
)

func cacheKey(prefix, path, query string) string {
	sum := sha1.Sum([]byte(path + "?" + query))
	return fmt.Sprintf("%s:%x", prefix, sum)
}

func TestCacheGETPassThroughWhenDisabled(t *testing.T) {
	e := echo.New()
	calls := 0
	h := CacheGET(config.CacheConfig{Enabled: false}, nil)(func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, "live")
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/movies", nil), rec)))
		assert.Equal(t, "live", rec.Body.String())
	}
	assert.Equal(t, 2, calls)
}

func TestCacheGETHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cfg := config.CacheConfig{Enabled: true, TTL: 30 * time.Second, Prefix: "cache"}

	stored, err := json.Marshal(cachedResponse{
		Status:      http.StatusOK,
		ContentType: echo.MIMEApplicationJSON,
		Body:        []byte(`{"items":[]}`),
	})
	require.NoError(t, err)
	mock.ExpectGet(cacheKey("cache", "/v1/movies", "")).SetVal(string(stored))

	e := echo.New()
	handlerRan := false
	h := CacheGET(cfg, rdb)(func(c echo.Context) error {
		handlerRan = true
		return c.String(http.StatusOK, "live")
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/movies", nil), rec)
	c.SetPath("/v1/movies")
	require.NoError(t, h(c))

	assert.False(t, handlerRan, "a hit never reaches the handler")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheGETMissStoresResponse(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cfg := config.CacheConfig{Enabled: true, TTL: 30 * time.Second, Prefix: "cache"}
	key := cacheKey("cache", "/v1/movies", "")

	mock.ExpectGet(key).RedisNil()
	mock.Regexp().ExpectSetEx(key, `.*`, cfg.TTL).SetVal("OK")

	e := echo.New()
	h := CacheGET(cfg, rdb)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"items": []string{}})
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/movies", nil), rec)
	c.SetPath("/v1/movies")
	require.NoError(t, h(c))

	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheGETFailsOpenOnRedisError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cfg := config.CacheConfig{Enabled: true, TTL: 30 * time.Second, Prefix: "cache"}
	key := cacheKey("cache", "/v1/movies", "")

	mock.ExpectGet(key).SetErr(assert.AnError)
	mock.Regexp().ExpectSetEx(key, `.*`, cfg.TTL).SetErr(assert.AnError)

	e := echo.New()
	h := CacheGET(cfg, rdb)(func(c echo.Context) error {
		return c.String(http.StatusOK, "live")
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/movies", nil), rec)
	c.SetPath("/v1/movies")
	require.NoError(t, h(c))
	assert.Equal(t, "live", rec.Body.String(), "cache errors never break the request")
}
