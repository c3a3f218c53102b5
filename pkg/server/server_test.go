package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shishobooks/locallibrary/pkg/config"
	"github.com/shishobooks/locallibrary/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := config.NewForTest()
	cfg.ServerPort = 4321

	srv, err := New(cfg, testutils.NewDB(t))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4321", srv.Addr)
}

func TestRoutes(t *testing.T) {
	cfg := config.NewForTest()
	e, err := newEcho(cfg, testutils.NewDB(t))
	require.NoError(t, err)

	t.Run("root redirects to the catalog", func(tt *testing.T) {
		rr := testutils.Get(e, "/")
		assert.Equal(tt, http.StatusFound, rr.Code)
		assert.Equal(tt, "/catalog", rr.Header().Get(echo.HeaderLocation))
	})

	t.Run("catalog home renders", func(tt *testing.T) {
		rr := testutils.Get(e, "/catalog")
		assert.Equal(tt, http.StatusOK, rr.Code)
		assert.Contains(tt, rr.Body.String(), "Local Library Home")
		assert.Equal(tt, "nosniff", rr.Header().Get(echo.HeaderXContentTypeOptions))
	})

	t.Run("unknown route renders the error page", func(tt *testing.T) {
		rr := testutils.Get(e, "/nope")
		assert.Equal(tt, http.StatusNotFound, rr.Code)
		assert.Contains(tt, rr.Body.String(), "Page not found.")
	})

	t.Run("errors honor json accept", func(tt *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
		rr := httptest.NewRecorder()
		e.ServeHTTP(rr, req)
		assert.Equal(tt, http.StatusNotFound, rr.Code)
		assert.Contains(tt, rr.Body.String(), `"code":"not_found"`)
	})

	t.Run("health", func(tt *testing.T) {
		rr := testutils.Get(e, "/health")
		assert.Equal(tt, http.StatusOK, rr.Code)
	})
}
