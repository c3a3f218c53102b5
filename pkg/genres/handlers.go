package genres

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/locallibrary/pkg/deletion"
	"github.com/shishobooks/locallibrary/pkg/errcodes"
	"github.com/shishobooks/locallibrary/pkg/models"
	"golang.org/x/sync/errgroup"
)

const listURL = "/catalog/genres"

type handler struct {
	genreService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	genres, err := h.genreService.ListGenres(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, listView, listPage{
		Title:  "Genre List",
		Genres: genres,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var genre *models.Genre
	var books []*models.Book

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		genre, err = h.genreService.RetrieveGenre(gctx, RetrieveGenreOptions{ID: &id})
		return err
	})
	g.Go(func() error {
		var err error
		books, err = h.genreService.ListBooks(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, detailView, detailPage{
		Title: "Genre: " + genre.Name,
		Genre: genre,
		Books: books,
	}))
}

func (h *handler) createForm(c echo.Context) error {
	return renderForm(c, http.StatusOK, "Create Genre", &GenreDraft{}, nil)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	draft := &GenreDraft{}
	if err := c.Bind(draft); err != nil {
		if verr, ok := errcodes.IsValidation(err); ok {
			return renderForm(c, http.StatusUnprocessableEntity, "Create Genre", draft, verr.Fields)
		}
		return errors.WithStack(err)
	}

	genre := &models.Genre{}
	draft.Apply(genre)

	genre, created, err := h.genreService.FindOrCreateGenre(ctx, genre)
	if err != nil {
		return errors.WithStack(err)
	}
	if created {
		logger.FromContext(ctx).Info("genre created", logger.Data{"genre_id": genre.ID})
	}

	return errors.WithStack(c.Redirect(http.StatusSeeOther, genre.URL()))
}

func (h *handler) updateForm(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	genre, err := h.genreService.RetrieveGenre(ctx, RetrieveGenreOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	return renderForm(c, http.StatusOK, "Update Genre", NewGenreDraft(genre), nil)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	draft := &GenreDraft{}
	if err := c.Bind(draft); err != nil {
		if verr, ok := errcodes.IsValidation(err); ok {
			return renderForm(c, http.StatusUnprocessableEntity, "Update Genre", draft, verr.Fields)
		}
		return errors.WithStack(err)
	}

	genre, err := h.genreService.RetrieveGenre(ctx, RetrieveGenreOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}
	draft.Apply(genre)

	if err := h.genreService.UpdateGenre(ctx, genre); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusSeeOther, genre.URL()))
}

func (h *handler) deleteForm(c echo.Context) error {
	ctx := c.Request().Context()

	check, err := h.genreService.InspectDelete(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	if check.Status == deletion.NotFound {
		return errors.WithStack(c.Redirect(http.StatusFound, listURL))
	}

	return renderDelete(c, check)
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	check, err := h.genreService.InspectDelete(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	switch check.Status {
	case deletion.NotFound:
		return errors.WithStack(c.Redirect(http.StatusSeeOther, listURL))
	case deletion.Blocked:
		return renderDelete(c, check)
	}

	if err := h.genreService.DeleteGenre(ctx, check.Target.ID); err != nil {
		return errors.WithStack(err)
	}
	logger.FromContext(ctx).Info("genre deleted", logger.Data{"genre_id": check.Target.ID})

	return errors.WithStack(c.Redirect(http.StatusSeeOther, listURL))
}

func renderForm(c echo.Context, code int, title string, draft *GenreDraft, fields []errcodes.FieldError) error {
	return errors.WithStack(c.Render(code, formView, formPage{
		Title:  title,
		Draft:  draft,
		Errors: fields,
	}))
}

func renderDelete(c echo.Context, check *deletion.Check[models.Genre, models.Book]) error {
	return errors.WithStack(c.Render(http.StatusOK, deleteView, deletePage{
		Title: "Delete Genre",
		Genre: check.Target,
		Books: check.Dependents,
	}))
}
