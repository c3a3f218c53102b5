package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/shishobooks/locallibrary/pkg/deletion"
	"github.com/shishobooks/locallibrary/pkg/errcodes"
	"github.com/shishobooks/locallibrary/pkg/models"
	"github.com/uptrace/bun"
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateBook inserts the book together with its BookGenres.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	now := time.Now()
	if book.ID == "" {
		book.ID = models.NewID()
	}
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewInsert().
			Model(book).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return insertBookGenres(ctx, tx, book)
	})
	return errors.WithStack(err)
}

func (svc *Service) RetrieveBook(ctx context.Context, id string) (*models.Book, error) {
	if !models.IsID(id) {
		return nil, errcodes.NotFound("Book")
	}

	book := &models.Book{}
	err := svc.db.
		NewSelect().
		Model(book).
		Relation("Author").
		Relation("BookGenres", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("bg.sort_order ASC")
		}).
		Relation("BookGenres.Genre").
		Where("b.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

// ListBooks returns every book with its author, ordered by title regardless
// of case.
func (svc *Service) ListBooks(ctx context.Context) ([]*models.Book, error) {
	books := []*models.Book{}

	err := svc.db.
		NewSelect().
		Model(&books).
		Relation("Author").
		OrderExpr("LOWER(b.title) ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

// UpdateBook overwrites the book's fields and replaces its genre set.
func (svc *Service) UpdateBook(ctx context.Context, book *models.Book) error {
	book.UpdatedAt = time.Now()

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.
			NewUpdate().
			Model(book).
			Column("title", "author_id", "summary", "isbn", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return errcodes.NotFound("Book")
		}

		_, err = tx.
			NewDelete().
			Model((*models.BookGenre)(nil)).
			Where("book_id = ?", book.ID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return insertBookGenres(ctx, tx, book)
	})
	return errors.WithStack(err)
}

func (svc *Service) DeleteBook(ctx context.Context, id string) error {
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*models.BookGenre)(nil)).
			Where("book_id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model((*models.Book)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return errors.WithStack(err)
	})
}

// ListInstances returns the copies of a book.
func (svc *Service) ListInstances(ctx context.Context, bookID string) ([]*models.BookInstance, error) {
	instances := []*models.BookInstance{}

	err := svc.db.
		NewSelect().
		Model(&instances).
		Where("bi.book_id = ?", bookID).
		Order("bi.imprint ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return instances, nil
}

// InspectDelete looks up the book and the copies that would block deleting it.
func (svc *Service) InspectDelete(ctx context.Context, id string) (*deletion.Check[models.Book, models.BookInstance], error) {
	return deletion.Inspect(ctx,
		func(ctx context.Context) (*models.Book, error) {
			return svc.RetrieveBook(ctx, id)
		},
		func(ctx context.Context) ([]*models.BookInstance, error) {
			return svc.ListInstances(ctx, id)
		},
	)
}

// MissingReferences reports the submitted author and genre ids that don't
// name an existing record, as field errors. An empty author id is left to
// the required rule.
func (svc *Service) MissingReferences(ctx context.Context, authorID string, genreIDs []string) ([]errcodes.FieldError, error) {
	fields := []errcodes.FieldError{}

	if authorID != "" {
		authors, err := svc.db.NewSelect().
			Model((*models.Author)(nil)).
			Where("id = ?", authorID).
			Count(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if authors == 0 {
			fields = append(fields, errcodes.FieldError{Field: "author", Message: `"author" must be an existing author`})
		}
	}

	if len(genreIDs) > 0 {
		var found []string
		err := svc.db.NewSelect().
			Model((*models.Genre)(nil)).
			Column("id").
			Where("id IN (?)", bun.In(genreIDs)).
			Scan(ctx, &found)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if len(found) < len(unique(genreIDs)) {
			fields = append(fields, errcodes.FieldError{Field: "genre", Message: `"genre" must only contain existing genres`})
		}
	}

	return fields, nil
}

func (svc *Service) CountBooks(ctx context.Context) (int, error) {
	count, err := svc.db.NewSelect().
		Model((*models.Book)(nil)).
		Count(ctx)
	return count, errors.WithStack(err)
}

func insertBookGenres(ctx context.Context, tx bun.Tx, book *models.Book) error {
	if len(book.BookGenres) == 0 {
		return nil
	}
	for _, bg := range book.BookGenres {
		bg.BookID = book.ID
	}
	_, err := tx.
		NewInsert().
		Model(&book.BookGenres).
		Exec(ctx)
	return errors.WithStack(err)
}

func unique(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
