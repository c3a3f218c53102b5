package bookinstances

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shishobooks/locallibrary/pkg/models"
	"github.com/shishobooks/locallibrary/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func setupTest(t *testing.T) (*echo.Echo, *bun.DB, *Service) {
	t.Helper()
	db := testutils.NewDB(t)
	e := testutils.NewEcho(t)
	RegisterRoutes(e.Group("/catalog"), db)
	return e, db, NewService(db)
}

func TestHandlers_CreateBookInstance(t *testing.T) {
	t.Parallel()
	e, db, svc := setupTest(t)
	ctx := context.Background()
	book := insertBook(t, db, "Dune")

	rr := testutils.Get(e, "/catalog/bookinstance/create?book="+book.ID)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `<option value="`+book.ID+`" selected>Dune</option>`)
	assert.Contains(t, rr.Body.String(), `<option value="Maintenance" selected>`)

	rr = testutils.PostForm(e, "/catalog/bookinstance/create", url.Values{
		"book":     {book.ID},
		"imprint":  {"Chilton, 1965"},
		"status":   {"Loaned"},
		"due_back": {"2026-11-01"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	instances, err := svc.ListBookInstances(ctx, ListBookInstancesOptions{})
	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Equal(t, instances[0].URL(), rr.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "Nov 1st, 2026", instances[0].DueBackFormatted())

	rr = testutils.Get(e, instances[0].URL())
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Copy: Dune")
	assert.Contains(t, rr.Body.String(), "Nov 1st, 2026")
}

func TestHandlers_CreateBookInstance_Invalid(t *testing.T) {
	t.Parallel()
	e, _, svc := setupTest(t)

	rr := testutils.PostForm(e, "/catalog/bookinstance/create", url.Values{
		"book":     {models.NewID()},
		"imprint":  {""},
		"status":   {"Lost"},
		"due_back": {"someday"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "&#34;imprint&#34; is required")
	assert.Contains(t, body, "&#34;status&#34; must be one of the following")
	assert.Contains(t, body, "&#34;due_back&#34; should be a valid date")
	assert.Contains(t, body, "&#34;book&#34; must be an existing book")

	count, err := svc.CountBookInstances(context.Background(), ListBookInstancesOptions{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestHandlers_UpdateBookInstance(t *testing.T) {
	t.Parallel()
	e, db, svc := setupTest(t)
	ctx := context.Background()
	book := insertBook(t, db, "Dune")

	instance := &models.BookInstance{BookID: book.ID, Imprint: "Chilton, 1965"}
	require.NoError(t, svc.CreateBookInstance(ctx, instance))

	rr := testutils.Get(e, instance.URL()+"/update")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="Chilton, 1965"`)

	rr = testutils.PostForm(e, instance.URL()+"/update", url.Values{
		"book":    {book.ID},
		"imprint": {"Chilton, 1965 (2nd)"},
		"status":  {"Available"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	got, err := svc.RetrieveBookInstance(ctx, instance.ID)
	require.NoError(t, err)
	assert.Equal(t, instance.ID, got.ID)
	assert.Equal(t, "Chilton, 1965 (2nd)", got.Imprint)
	assert.Equal(t, models.BookInstanceStatusAvailable, got.Status)
}

func TestHandlers_ListBookInstances(t *testing.T) {
	t.Parallel()
	e, db, svc := setupTest(t)
	ctx := context.Background()
	book := insertBook(t, db, "Dune")

	require.NoError(t, svc.CreateBookInstance(ctx, &models.BookInstance{BookID: book.ID, Imprint: "First", Status: models.BookInstanceStatusAvailable}))
	require.NoError(t, svc.CreateBookInstance(ctx, &models.BookInstance{BookID: book.ID, Imprint: "Second", Status: models.BookInstanceStatusLoaned}))

	rr := testutils.Get(e, "/catalog/bookinstances")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "First")
	assert.Contains(t, rr.Body.String(), "Second")

	rr = testutils.Get(e, "/catalog/bookinstances?status=Available")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "First")
	assert.NotContains(t, rr.Body.String(), "Second")

	rr = testutils.Get(e, "/catalog/bookinstances?status=Lost")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestHandlers_DeleteBookInstance(t *testing.T) {
	t.Parallel()
	e, db, svc := setupTest(t)
	ctx := context.Background()
	book := insertBook(t, db, "Dune")

	instance := &models.BookInstance{BookID: book.ID, Imprint: "Chilton, 1965"}
	require.NoError(t, svc.CreateBookInstance(ctx, instance))

	rr := testutils.Get(e, instance.URL()+"/delete")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Do you really want to delete this copy?")

	rr = testutils.PostForm(e, instance.URL()+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, listURL, rr.Header().Get(echo.HeaderLocation))

	rr = testutils.PostForm(e, instance.URL()+"/delete", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, listURL, rr.Header().Get(echo.HeaderLocation))

	rr = testutils.Get(e, instance.URL())
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
