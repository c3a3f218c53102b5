package authors

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shishobooks/locallibrary/pkg/deletion"
	"github.com/shishobooks/locallibrary/pkg/errcodes"
	"github.com/shishobooks/locallibrary/pkg/models"
	"github.com/shishobooks/locallibrary/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func insertBook(t *testing.T, db *bun.DB, author *models.Author, title string) *models.Book {
	t.Helper()
	book := &models.Book{ID: models.NewID(), Title: title, AuthorID: author.ID, Summary: title + " summary", ISBN: "9780000000000"}
	_, err := db.NewInsert().Model(book).Exec(context.Background())
	require.NoError(t, err)
	return book
}

func TestCreateAndRetrieveAuthor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewService(testutils.NewDB(t))

	born := time.Date(1835, time.November, 30, 0, 0, 0, 0, time.UTC)
	author := &models.Author{FirstName: "Mark", FamilyName: "Twain", DateOfBirth: &born}
	require.NoError(t, svc.CreateAuthor(ctx, author))
	assert.True(t, models.IsID(author.ID))

	got, err := svc.RetrieveAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Twain, Mark", got.Name())
	require.NotNil(t, got.DateOfBirth)
	assert.True(t, born.Equal(*got.DateOfBirth))
	assert.Nil(t, got.DateOfDeath)
	assert.Equal(t, "Nov 30th, 1835 - ", got.Lifespan())

	_, err = svc.RetrieveAuthor(ctx, models.NewID())
	assert.True(t, errors.Is(err, errcodes.NotFound("Author")))
	_, err = svc.RetrieveAuthor(ctx, "nope")
	assert.True(t, errors.Is(err, errcodes.NotFound("Author")))
}

func TestListAuthors_SortedByFamilyName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewService(testutils.NewDB(t))

	for _, names := range [][2]string{{"Patrick", "Rothfuss"}, {"Isaac", "Asimov"}, {"Ben", "Bova"}} {
		require.NoError(t, svc.CreateAuthor(ctx, &models.Author{FirstName: names[0], FamilyName: names[1]}))
	}

	authors, err := svc.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, "Asimov", authors[0].FamilyName)
	assert.Equal(t, "Bova", authors[1].FamilyName)
	assert.Equal(t, "Rothfuss", authors[2].FamilyName)
}

func TestUpdateAuthor_ReplacesFieldsKeepsID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewService(testutils.NewDB(t))

	born := time.Date(1920, time.January, 2, 0, 0, 0, 0, time.UTC)
	author := &models.Author{FirstName: "Isac", FamilyName: "Asimov", DateOfBirth: &born}
	require.NoError(t, svc.CreateAuthor(ctx, author))
	id := author.ID

	author.FirstName = "Isaac"
	author.DateOfBirth = nil
	require.NoError(t, svc.UpdateAuthor(ctx, author))

	got, err := svc.RetrieveAuthor(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Isaac", got.FirstName)
	assert.Nil(t, got.DateOfBirth)

	err = svc.UpdateAuthor(ctx, &models.Author{ID: models.NewID(), FirstName: "a", FamilyName: "b"})
	assert.True(t, errors.Is(err, errcodes.NotFound("Author")))
}

func TestInspectDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testutils.NewDB(t)
	svc := NewService(db)

	busy := &models.Author{FirstName: "Patrick", FamilyName: "Rothfuss"}
	idle := &models.Author{FirstName: "Bob", FamilyName: "Billings"}
	require.NoError(t, svc.CreateAuthor(ctx, busy))
	require.NoError(t, svc.CreateAuthor(ctx, idle))
	insertBook(t, db, busy, "The Wise Man's Fear")
	insertBook(t, db, busy, "The Name of the Wind")

	check, err := svc.InspectDelete(ctx, busy.ID)
	require.NoError(t, err)
	assert.Equal(t, deletion.Blocked, check.Status)
	require.Len(t, check.Dependents, 2)
	assert.Equal(t, "The Name of the Wind", check.Dependents[0].Title)

	check, err = svc.InspectDelete(ctx, idle.ID)
	require.NoError(t, err)
	assert.Equal(t, deletion.Allowed, check.Status)
	assert.Equal(t, idle.ID, check.Target.ID)

	check, err = svc.InspectDelete(ctx, models.NewID())
	require.NoError(t, err)
	assert.Equal(t, deletion.NotFound, check.Status)
	assert.Nil(t, check.Target)

	require.NoError(t, svc.DeleteAuthor(ctx, idle.ID))
	count, err := svc.CountAuthors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
