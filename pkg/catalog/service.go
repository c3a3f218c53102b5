package catalog

import (
	"context"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/shishobooks/locallibrary/pkg/authors"
	"github.com/shishobooks/locallibrary/pkg/bookinstances"
	"github.com/shishobooks/locallibrary/pkg/books"
	"github.com/shishobooks/locallibrary/pkg/genres"
	"github.com/shishobooks/locallibrary/pkg/models"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"
)

// Counts is the size of each part of the catalog.
type Counts struct {
	Books                  int `json:"books"`
	BookInstances          int `json:"book_instances"`
	BookInstancesAvailable int `json:"book_instances_available"`
	Authors                int `json:"authors"`
	Genres                 int `json:"genres"`
}

type Service struct {
	authorService       *authors.Service
	bookService         *books.Service
	bookInstanceService *bookinstances.Service
	genreService        *genres.Service
}

func NewService(db *bun.DB) *Service {
	return &Service{
		authorService:       authors.NewService(db),
		bookService:         books.NewService(db),
		bookInstanceService: bookinstances.NewService(db),
		genreService:        genres.NewService(db),
	}
}

// Counts runs every count concurrently. The first failure fails the whole call.
func (svc *Service) Counts(ctx context.Context) (*Counts, error) {
	counts := &Counts{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts.Books, err = svc.bookService.CountBooks(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.BookInstances, err = svc.bookInstanceService.CountBookInstances(gctx, bookinstances.ListBookInstancesOptions{})
		return err
	})
	g.Go(func() (err error) {
		counts.BookInstancesAvailable, err = svc.bookInstanceService.CountBookInstances(gctx, bookinstances.ListBookInstancesOptions{
			Status: pointerutil.String(models.BookInstanceStatusAvailable),
		})
		return err
	})
	g.Go(func() (err error) {
		counts.Authors, err = svc.authorService.CountAuthors(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Genres, err = svc.genreService.CountGenres(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.WithStack(err)
	}

	return counts, nil
}
