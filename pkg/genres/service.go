package genres

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

type RetrieveGenreOptions struct {
	ID   *string
	Name *string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateGenre(ctx context.Context, genre *models.Genre) error {
	now := time.Now()
	if genre.ID == "" {
		genre.ID = models.NewID()
	}
	if genre.CreatedAt.IsZero() {
		genre.CreatedAt = now
	}
	genre.UpdatedAt = genre.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(genre).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

// FindOrCreateGenre returns the genre with exactly this name, creating it
// when none exists. created reports which of the two happened.
func (svc *Service) FindOrCreateGenre(ctx context.Context, genre *models.Genre) (existing *models.Genre, created bool, err error) {
	existing, err = svc.RetrieveGenre(ctx, RetrieveGenreOptions{Name: &genre.Name})
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, errcodes.NotFound("Genre")) {
		return nil, false, err
	}

	if err := svc.CreateGenre(ctx, genre); err != nil {
		return nil, false, err
	}
	return genre, true, nil
}

func (svc *Service) RetrieveGenre(ctx context.Context, opts RetrieveGenreOptions) (*models.Genre, error) {
	genre := &models.Genre{}

	q := svc.db.
		NewSelect().
		Model(genre)

	if opts.ID != nil {
		if !models.IsID(*opts.ID) {
			return nil, errcodes.NotFound("Genre")
		}
		q = q.Where("g.id = ?", *opts.ID)
	}
	if opts.Name != nil {
		// Case-sensitive: "Fantasy" and "fantasy" are different genres.
		q = q.Where("g.name = ?", *opts.Name)
	}

	err := q.Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Genre")
		}
		return nil, errors.WithStack(err)
	}

	return genre, nil
}

func (svc *Service) ListGenres(ctx context.Context) ([]*models.Genre, error) {
	genres := []*models.Genre{}

	err := svc.db.
		NewSelect().
		Model(&genres).
		Order("g.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return genres, nil
}

func (svc *Service) UpdateGenre(ctx context.Context, genre *models.Genre) error {
	genre.UpdatedAt = time.Now()

	res, err := svc.db.
		NewUpdate().
		Model(genre).
		Column("name", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errcodes.NotFound("Genre")
	}
	return nil
}

func (svc *Service) DeleteGenre(ctx context.Context, id string) error {
	_, err := svc.db.
		NewDelete().
		Model((*models.Genre)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}

// ListBooks returns the books tagged with the genre, by title.
func (svc *Service) ListBooks(ctx context.Context, genreID string) ([]*models.Book, error) {
	books := []*models.Book{}

	err := svc.db.NewSelect().
		Model(&books).
		Join("INNER JOIN book_genres bg ON bg.book_id = b.id").
		Where("bg.genre_id = ?", genreID).
		Order("b.title ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

// InspectDelete looks up the genre and the books that would block deleting it.
func (svc *Service) InspectDelete(ctx context.Context, id string) (*deletion.Check[models.Genre, models.Book], error) {
	return deletion.Inspect(ctx,
		func(ctx context.Context) (*models.Genre, error) {
			return svc.RetrieveGenre(ctx, RetrieveGenreOptions{ID: &id})
		},
		func(ctx context.Context) ([]*models.Book, error) {
			return svc.ListBooks(ctx, id)
		},
	)
}

func (svc *Service) CountGenres(ctx context.Context) (int, error) {
	count, err := svc.db.NewSelect().
		Model((*models.Genre)(nil)).
		Count(ctx)
	return count, errors.WithStack(err)
}
