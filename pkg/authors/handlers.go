package authors

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

const listURL = "/catalog/authors"

type handler struct {
	authorService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	authors, err := h.authorService.ListAuthors(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, listView, listPage{
		Title:   "Author List",
		Authors: authors,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var author *models.Author
	var books []*models.Book

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		author, err = h.authorService.RetrieveAuthor(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = h.authorService.ListBooks(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, detailView, detailPage{
		Title:  "Author: " + author.Name(),
		Author: author,
		Books:  books,
	}))
}

func (h *handler) createForm(c echo.Context) error {
	return renderForm(c, http.StatusOK, "Create Author", &AuthorDraft{}, nil)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	draft := &AuthorDraft{}
	if err := c.Bind(draft); err != nil {
		if verr, ok := errcodes.IsValidation(err); ok {
			return renderForm(c, http.StatusUnprocessableEntity, "Create Author", draft, verr.Fields)
		}
		return errors.WithStack(err)
	}

	author := &models.Author{}
	if err := draft.Apply(author); err != nil {
		return errors.WithStack(err)
	}
	if err := h.authorService.CreateAuthor(ctx, author); err != nil {
		return errors.WithStack(err)
	}
	logger.FromContext(ctx).Info("author created", logger.Data{"author_id": author.ID})

	return errors.WithStack(c.Redirect(http.StatusSeeOther, author.URL()))
}

func (h *handler) updateForm(c echo.Context) error {
	ctx := c.Request().Context()

	author, err := h.authorService.RetrieveAuthor(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return renderForm(c, http.StatusOK, "Update Author", NewAuthorDraft(author), nil)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	draft := &AuthorDraft{}
	if err := c.Bind(draft); err != nil {
		if verr, ok := errcodes.IsValidation(err); ok {
			return renderForm(c, http.StatusUnprocessableEntity, "Update Author", draft, verr.Fields)
		}
		return errors.WithStack(err)
	}

	author, err := h.authorService.RetrieveAuthor(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	if err := draft.Apply(author); err != nil {
		return errors.WithStack(err)
	}
	if err := h.authorService.UpdateAuthor(ctx, author); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusSeeOther, author.URL()))
}

func (h *handler) deleteForm(c echo.Context) error {
	ctx := c.Request().Context()

	check, err := h.authorService.InspectDelete(ctx, c.Param("id"))
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

	check, err := h.authorService.InspectDelete(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	switch check.Status {
	case deletion.NotFound:
		return errors.WithStack(c.Redirect(http.StatusSeeOther, listURL))
	case deletion.Blocked:
		return renderDelete(c, check)
	}

	if err := h.authorService.DeleteAuthor(ctx, check.Target.ID); err != nil {
		return errors.WithStack(err)
	}
	logger.FromContext(ctx).Info("author deleted", logger.Data{"author_id": check.Target.ID})

	return errors.WithStack(c.Redirect(http.StatusSeeOther, listURL))
}

func renderForm(c echo.Context, code int, title string, draft *AuthorDraft, fields []errcodes.FieldError) error {
	return errors.WithStack(c.Render(code, formView, formPage{
		Title:  title,
		Draft:  draft,
		Errors: fields,
	}))
}

func renderDelete(c echo.Context, check *deletion.Check[models.Author, models.Book]) error {
	return errors.WithStack(c.Render(http.StatusOK, deleteView, deletePage{
		Title:  "Delete Author",
		Author: check.Target,
		Books:  check.Dependents,
	}))
}
