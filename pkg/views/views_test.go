package views

import (
	"bytes"
	"testing"

	"github.com/shishobooks/locallibrary/pkg/errcodes"
	"github.com/shishobooks/locallibrary/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ParsesEveryView(t *testing.T) {
	t.Parallel()
	r, err := New()
	require.NoError(t, err)

	for _, name := range []string{
		"index", "error",
		"author_list", "author_detail", "author_form", "author_delete",
		"book_list", "book_detail", "book_form", "book_delete",
		"genre_list", "genre_detail", "genre_form", "genre_delete",
		"bookinstance_list", "bookinstance_detail", "bookinstance_form", "bookinstance_delete",
	} {
		assert.True(t, r.Has(name), name)
	}
	assert.False(t, r.Has("layout"))
}

func TestRender_EscapesStoredTextOnce(t *testing.T) {
	t.Parallel()
	r, err := New()
	require.NoError(t, err)

	data := struct {
		Title  string
		Genres []*models.Genre
	}{
		Title:  "Genre List",
		Genres: []*models.Genre{{ID: "g1", Name: "Sci &amp; Fi"}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "genre_list", data, nil))
	assert.Contains(t, buf.String(), `<a href="/catalog/genre/g1">Sci &amp; Fi</a>`)
	assert.NotContains(t, buf.String(), "&amp;amp;")
}

func TestRender_ErrorPage(t *testing.T) {
	t.Parallel()
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	page := errcodes.ErrorPage{Title: "Not Found", StatusCode: 404, Code: "not_found", Message: "Author not found."}
	require.NoError(t, r.Render(&buf, errcodes.ErrorView, page, nil))
	assert.Contains(t, buf.String(), "Author not found.")
	assert.Contains(t, buf.String(), "404")
	assert.NotContains(t, buf.String(), "<pre>")
}

func TestRender_UnknownView(t *testing.T) {
	t.Parallel()
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, "nope", nil, nil)
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestFieldError(t *testing.T) {
	t.Parallel()
	fields := []errcodes.FieldError{{Field: "name", Message: `"name" is required`}}
	assert.Equal(t, `"name" is required`, fieldError(fields, "name"))
	assert.Equal(t, "", fieldError(fields, "other"))
	assert.True(t, contains([]string{"a", "b"}, "b"))
	assert.False(t, contains(nil, "b"))
}
