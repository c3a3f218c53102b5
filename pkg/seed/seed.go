// Package seed fills an empty catalog with a small sample library.
package seed

import (
	"context"
	"database/sql"
	"html"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/locallibrary/pkg/authors"
	"github.com/shishobooks/locallibrary/pkg/binder"
	"github.com/shishobooks/locallibrary/pkg/bookinstances"
	"github.com/shishobooks/locallibrary/pkg/books"
	"github.com/shishobooks/locallibrary/pkg/genres"
	"github.com/shishobooks/locallibrary/pkg/models"
	"github.com/uptrace/bun"
)

// ErrNotEmpty is returned when the catalog already has authors and Reset
// wasn't requested.
var ErrNotEmpty = errors.New("catalog already has data")

type Options struct {
	// Reset deletes every catalog record before seeding.
	Reset bool
}

// Result counts what Run created.
type Result struct {
	Authors       int
	Genres        int
	Books         int
	BookInstances int
}

type author struct {
	first, family string
	born, died    string
}

type book struct {
	title, summary, isbn string
	author               int
	genres               []int
}

type copyOf struct {
	book    int
	imprint string
	status  string
	dueBack string
}

var (
	sampleAuthors = []author{
		{"Patrick", "Rothfuss", "1973-06-06", ""},
		{"Ben", "Bova", "1932-11-08", ""},
		{"Isaac", "Asimov", "1920-01-02", "1992-04-06"},
		{"Bob", "Billings", "", ""},
		{"Jim", "Jones", "1971-12-16", ""},
	}
	sampleGenres = []string{"Fantasy", "Science Fiction", "French Poetry"}
	sampleBooks  = []book{
		{"The Name of the Wind (The Kingkiller Chronicle, #1)", "I have stolen princesses back from sleeping barrow kings. I burned down the town of Trebon. I have spent the night with Felurian and left with both my sanity and my life.", "9781473211896", 0, []int{0}},
		{"The Wise Man's Fear (The Kingkiller Chronicle, #2)", "Picking up the tale of Kvothe Kingkiller once again, we follow him into exile, into political intrigue, courtship, adventure, love and magic.", "9788401352836", 0, []int{0}},
		{"The Slow Regard of Silent Things (Kingkiller Chronicle)", "Deep below the University, there is a dark place. Few people know of it: a broken web of ancient passageways and abandoned rooms.", "9780756411336", 0, []int{0}},
		{"Apes and Angels", "Humankind headed out to the stars not for conquest, nor exploration, nor even for curiosity. Humans went to the stars in a desperate crusade to save intelligent life wherever they found it.", "9780765379528", 1, []int{1}},
		{"Death Wave", "In Ben Bova's previous novel New Earth, Jordan Kell led the first human mission beyond the solar system.", "9780765379504", 1, []int{1}},
		{"Test Book 1", "Summary of test book 1", "ISBN111111", 4, []int{0, 1}},
		{"Test Book 2", "Summary of test book 2", "ISBN222222", 4, nil},
	}
	sampleCopies = []copyOf{
		{0, "London Gollancz, 2014.", models.BookInstanceStatusAvailable, ""},
		{1, " Gollancz, 2011.", models.BookInstanceStatusLoaned, "2026-11-01"},
		{2, " Gollancz, 2015.", models.BookInstanceStatusMaintenance, ""},
		{3, "New York Tom Doherty Associates, 2016.", models.BookInstanceStatusAvailable, ""},
		{3, "New York Tom Doherty Associates, 2016.", models.BookInstanceStatusAvailable, ""},
		{3, "New York Tom Doherty Associates, 2016.", models.BookInstanceStatusAvailable, ""},
		{4, "New York, NY Tom Doherty Associates, LLC, 2015.", models.BookInstanceStatusAvailable, ""},
		{4, "New York, NY Tom Doherty Associates, LLC, 2015.", models.BookInstanceStatusMaintenance, ""},
		{4, "New York, NY Tom Doherty Associates, LLC, 2015.", models.BookInstanceStatusLoaned, "2026-12-01"},
		{0, "Imprint XXX2", models.BookInstanceStatusAvailable, ""},
		{1, "Imprint XXX3", models.BookInstanceStatusAvailable, ""},
	}
)

// Run creates the sample catalog through the same services the handlers use.
// Text is stored escaped, the way submitted forms store it.
func Run(ctx context.Context, db *bun.DB, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)

	authorService := authors.NewService(db)
	genreService := genres.NewService(db)
	bookService := books.NewService(db)
	bookInstanceService := bookinstances.NewService(db)

	if opts.Reset {
		if err := reset(ctx, db); err != nil {
			return nil, err
		}
		log.Info("catalog cleared")
	} else {
		count, err := authorService.CountAuthors(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if count > 0 {
			return nil, ErrNotEmpty
		}
	}

	res := &Result{}

	createdAuthors := make([]*models.Author, 0, len(sampleAuthors))
	for _, a := range sampleAuthors {
		m := &models.Author{FirstName: a.first, FamilyName: a.family}
		var err error
		if m.DateOfBirth, err = parseDate(a.born); err != nil {
			return nil, err
		}
		if m.DateOfDeath, err = parseDate(a.died); err != nil {
			return nil, err
		}
		if err := authorService.CreateAuthor(ctx, m); err != nil {
			return nil, errors.Wrapf(err, "failed to create author %s", m.Name())
		}
		createdAuthors = append(createdAuthors, m)
		res.Authors++
	}

	createdGenres := make([]*models.Genre, 0, len(sampleGenres))
	for _, name := range sampleGenres {
		g, created, err := genreService.FindOrCreateGenre(ctx, &models.Genre{Name: name})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create genre %s", name)
		}
		createdGenres = append(createdGenres, g)
		if created {
			res.Genres++
		}
	}

	createdBooks := make([]*models.Book, 0, len(sampleBooks))
	for _, b := range sampleBooks {
		m := &models.Book{
			Title:    html.EscapeString(b.title),
			AuthorID: createdAuthors[b.author].ID,
			Summary:  html.EscapeString(b.summary),
			ISBN:     b.isbn,
		}
		for i, g := range b.genres {
			m.BookGenres = append(m.BookGenres, &models.BookGenre{GenreID: createdGenres[g].ID, SortOrder: i})
		}
		if err := bookService.CreateBook(ctx, m); err != nil {
			return nil, errors.Wrapf(err, "failed to create book %s", m.Title)
		}
		createdBooks = append(createdBooks, m)
		res.Books++
	}

	for _, c := range sampleCopies {
		dueBack, err := parseDate(c.dueBack)
		if err != nil {
			return nil, err
		}
		m := &models.BookInstance{
			BookID:  createdBooks[c.book].ID,
			Imprint: html.EscapeString(c.imprint),
			Status:  c.status,
			DueBack: dueBack,
		}
		if err := bookInstanceService.CreateBookInstance(ctx, m); err != nil {
			return nil, errors.Wrapf(err, "failed to create copy of %s", createdBooks[c.book].Title)
		}
		res.BookInstances++
	}

	log.Info("catalog seeded", logger.Data{
		"authors":        res.Authors,
		"genres":         res.Genres,
		"books":          res.Books,
		"book_instances": res.BookInstances,
	})
	return res, nil
}

func reset(ctx context.Context, db *bun.DB) error {
	return db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range []interface{}{
			(*models.BookInstance)(nil),
			(*models.BookGenre)(nil),
			(*models.Book)(nil),
			(*models.Genre)(nil),
			(*models.Author)(nil),
		} {
			if _, err := tx.NewDelete().Model(model).Where("1 = 1").Exec(ctx); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	})
}

func parseDate(value string) (*time.Time, error) {
	t, err := binder.ParseDate(value)
	return t, errors.WithStack(err)
}
