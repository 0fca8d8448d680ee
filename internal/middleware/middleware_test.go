package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arminveh/cinema-box-office/internal/config"
	"github.com/arminveh/cinema-box-office/internal/utils"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestJWTAuth(t *testing.T) {
	const secret = "test-secret"
	e := echo.New()
	h := JWTAuth(secret)(okHandler)

	run := func(authorization string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, run("").Code)
	assert.Equal(t, http.StatusUnauthorized, run("Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, run("Bearer not-a-jwt").Code)

	// A token signed with a different secret is rejected.
	bad, err := utils.NewAccessToken("other-secret", 7, "CUSTOMER", 15)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, run("Bearer "+bad.Token).Code)

	// An expired token is rejected.
	expired, err := utils.NewAccessToken(secret, 7, "CUSTOMER", -5)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, run("Bearer "+expired.Token).Code)

	good, err := utils.NewAccessToken(secret, 7, "CUSTOMER", 15)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, run("Bearer "+good.Token).Code)
}

func TestJWTAuthStoresClaims(t *testing.T) {
	const secret = "test-secret"
	e := echo.New()

	var gotUser any
	var gotRole any
	h := JWTAuth(secret)(func(c echo.Context) error {
		gotUser = c.Get("user_id")
		gotRole = c.Get("role")
		return c.NoContent(http.StatusOK)
	})

	tok, err := utils.NewAccessToken(secret, 42, "ADMIN", 15)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))

	assert.Equal(t, float64(42), gotUser, "JSON claims decode numbers as float64")
	assert.Equal(t, "ADMIN", gotRole)
}

func TestRateLimitDisabledIsPassThrough(t *testing.T) {
	e := echo.New()
	h := RateLimit(config.RateLimitConfig{Enabled: false}, nil)(okHandler)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	h := RequireRole("ADMIN")(okHandler)

	run := func(role any) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		require.NoError(t, h(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run("ADMIN").Code)
	assert.Equal(t, http.StatusForbidden, run("CUSTOMER").Code)
	assert.Equal(t, http.StatusForbidden, run(nil).Code, "missing role claim")
	assert.Equal(t, http.StatusForbidden, run(13).Code, "non-string role claim")
}
