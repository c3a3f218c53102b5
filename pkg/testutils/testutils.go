// Package testutils builds the fixtures controller tests share: an in-memory
// database with every migration applied and an echo instance configured the
// way the server configures it.
package testutils

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shishobooks/locallibrary/pkg/binder"
	"github.com/shishobooks/locallibrary/pkg/errcodes"
	"github.com/shishobooks/locallibrary/pkg/migrations"
	"github.com/shishobooks/locallibrary/pkg/views"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// NewDB opens a private in-memory database. A single connection keeps every
// query on the same in-memory instance.
func NewDB(t testing.TB) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// NewEcho returns an echo instance with the binder, renderer and error
// handler installed. Routes are left to the caller.
func NewEcho(t testing.TB) *echo.Echo {
	t.Helper()

	e := echo.New()

	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b

	r, err := views.New()
	require.NoError(t, err)
	e.Renderer = r

	e.HTTPErrorHandler = errcodes.NewHandler(true).Handle

	return e
}

// Get performs a GET request against e.
func Get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

// PostForm submits form as application/x-www-form-urlencoded. A nil form
// still sends a non-empty body, the way a browser submits a form with only a
// button.
func PostForm(e *echo.Echo, target string, form url.Values) *httptest.ResponseRecorder {
	body := form.Encode()
	if body == "" {
		body = "submit="
	}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}
