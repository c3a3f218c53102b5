package genres

import (
	"context"
	"net/http"
	"net/url"
	"strings"
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

func TestHandlers_CreateGenre(t *testing.T) {
	t.Parallel()
	e, _, svc := setupTest(t)
	ctx := context.Background()

	rr := testutils.PostForm(e, "/catalog/genre/create", url.Values{"name": {"  Sci & Fi  "}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	genres, err := svc.ListGenres(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "Sci &amp; Fi", genres[0].Name)
	assert.Equal(t, genres[0].URL(), rr.Header().Get(echo.HeaderLocation))

	rr = testutils.Get(e, genres[0].URL())
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Genre: Sci &amp; Fi")
}

func TestHandlers_CreateGenre_Duplicate(t *testing.T) {
	t.Parallel()
	e, _, svc := setupTest(t)
	ctx := context.Background()

	existing := &models.Genre{Name: "Fantasy"}
	require.NoError(t, svc.CreateGenre(ctx, existing))

	rr := testutils.PostForm(e, "/catalog/genre/create", url.Values{"name": {"Fantasy"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, existing.URL(), rr.Header().Get(echo.HeaderLocation))

	count, err := svc.CountGenres(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandlers_CreateGenre_Invalid(t *testing.T) {
	t.Parallel()
	e, _, svc := setupTest(t)

	rr := testutils.PostForm(e, "/catalog/genre/create", url.Values{"name": {"   "}})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), `&#34;name&#34; is required`)

	count, err := svc.CountGenres(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestHandlers_RetrieveGenre_NotFound(t *testing.T) {
	t.Parallel()
	e, _, _ := setupTest(t)

	rr := testutils.Get(e, "/catalog/genre/"+models.NewID())
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Genre not found.")
}

func TestHandlers_UpdateGenre(t *testing.T) {
	t.Parallel()
	e, _, svc := setupTest(t)
	ctx := context.Background()

	genre := &models.Genre{Name: "Poetyr"}
	require.NoError(t, svc.CreateGenre(ctx, genre))

	rr := testutils.Get(e, genre.URL()+"/update")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="Poetyr"`)

	rr = testutils.PostForm(e, genre.URL()+"/update", url.Values{"name": {"Poetry"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, genre.URL(), rr.Header().Get(echo.HeaderLocation))

	got, err := svc.RetrieveGenre(ctx, RetrieveGenreOptions{ID: &genre.ID})
	require.NoError(t, err)
	assert.Equal(t, "Poetry", got.Name)
}

func TestHandlers_DeleteGenre(t *testing.T) {
	t.Parallel()

	t.Run("blocked by books", func(tt *testing.T) {
		e, db, svc := setupTest(tt)
		ctx := context.Background()

		genre := &models.Genre{Name: "Fantasy"}
		require.NoError(tt, svc.CreateGenre(ctx, genre))
		insertBook(tt, db, "The Hobbit", genre)

		rr := testutils.PostForm(e, genre.URL()+"/delete", nil)
		require.Equal(tt, http.StatusOK, rr.Code)
		assert.Contains(tt, rr.Body.String(), "The Hobbit")
		assert.Contains(tt, rr.Body.String(), "Delete the following books")

		_, err := svc.RetrieveGenre(ctx, RetrieveGenreOptions{ID: &genre.ID})
		assert.NoError(tt, err)
	})

	t.Run("allowed", func(tt *testing.T) {
		e, _, svc := setupTest(tt)
		ctx := context.Background()

		genre := &models.Genre{Name: "Poetry"}
		require.NoError(tt, svc.CreateGenre(ctx, genre))

		rr := testutils.Get(e, genre.URL()+"/delete")
		require.Equal(tt, http.StatusOK, rr.Code)
		assert.Contains(tt, rr.Body.String(), "Do you really want to delete this genre?")

		rr = testutils.PostForm(e, genre.URL()+"/delete", nil)
		require.Equal(tt, http.StatusSeeOther, rr.Code)
		assert.Equal(tt, listURL, rr.Header().Get(echo.HeaderLocation))

		count, err := svc.CountGenres(ctx)
		require.NoError(tt, err)
		assert.Zero(tt, count)
	})

	t.Run("missing redirects to list", func(tt *testing.T) {
		e, _, _ := setupTest(tt)

		rr := testutils.Get(e, "/catalog/genre/"+models.NewID()+"/delete")
		assert.Equal(tt, http.StatusFound, rr.Code)
		assert.Equal(tt, listURL, rr.Header().Get(echo.HeaderLocation))

		rr = testutils.PostForm(e, "/catalog/genre/"+models.NewID()+"/delete", nil)
		assert.Equal(tt, http.StatusSeeOther, rr.Code)
		assert.Equal(tt, listURL, rr.Header().Get(echo.HeaderLocation))
	})
}

func TestHandlers_ListGenres(t *testing.T) {
	t.Parallel()
	e, _, svc := setupTest(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateGenre(ctx, &models.Genre{Name: "Poetry"}))
	require.NoError(t, svc.CreateGenre(ctx, &models.Genre{Name: "Fantasy"}))

	rr := testutils.Get(e, "/catalog/genres")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Less(t, strings.Index(body, "Fantasy"), strings.Index(body, "Poetry"))
}
