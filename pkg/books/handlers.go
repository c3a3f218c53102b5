package books

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/locallibrary/pkg/authors"
	"github.com/shishobooks/locallibrary/pkg/deletion"
	"github.com/shishobooks/locallibrary/pkg/errcodes"
	"github.com/shishobooks/locallibrary/pkg/genres"
	"github.com/shishobooks/locallibrary/pkg/models"
	"golang.org/x/sync/errgroup"
)

const listURL = "/catalog/books"

type handler struct {
	bookService   *Service
	authorService *authors.Service
	genreService  *genres.Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.ListBooks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, listView, listPage{
		Title: "Book List",
		Books: books,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var book *models.Book
	var instances []*models.BookInstance

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		book, err = h.bookService.RetrieveBook(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		instances, err = h.bookService.ListInstances(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, detailView, detailPage{
		Title:     "Title: " + book.Title,
		Book:      book,
		Instances: instances,
	}))
}

func (h *handler) createForm(c echo.Context) error {
	return h.renderForm(c, http.StatusOK, "Create Book", &BookDraft{}, nil)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	draft := &BookDraft{}
	fields, err := h.bindDraft(c, draft)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(fields) > 0 {
		return h.renderForm(c, http.StatusUnprocessableEntity, "Create Book", draft, fields)
	}

	book := &models.Book{}
	draft.Apply(book)
	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}
	logger.FromContext(ctx).Info("book created", logger.Data{"book_id": book.ID})

	return errors.WithStack(c.Redirect(http.StatusSeeOther, book.URL()))
}

func (h *handler) updateForm(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.bookService.RetrieveBook(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return h.renderForm(c, http.StatusOK, "Update Book", NewBookDraft(book), nil)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	draft := &BookDraft{}
	fields, err := h.bindDraft(c, draft)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(fields) > 0 {
		return h.renderForm(c, http.StatusUnprocessableEntity, "Update Book", draft, fields)
	}

	book, err := h.bookService.RetrieveBook(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	draft.Apply(book)
	if err := h.bookService.UpdateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusSeeOther, book.URL()))
}

func (h *handler) deleteForm(c echo.Context) error {
	ctx := c.Request().Context()

	check, err := h.bookService.InspectDelete(ctx, c.Param("id"))
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

	check, err := h.bookService.InspectDelete(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	switch check.Status {
	case deletion.NotFound:
		return errors.WithStack(c.Redirect(http.StatusSeeOther, listURL))
	case deletion.Blocked:
		return renderDelete(c, check)
	}

	if err := h.bookService.DeleteBook(ctx, check.Target.ID); err != nil {
		return errors.WithStack(err)
	}
	logger.FromContext(ctx).Info("book deleted", logger.Data{"book_id": check.Target.ID})

	return errors.WithStack(c.Redirect(http.StatusSeeOther, listURL))
}

// bindDraft binds the form and returns every field error, including ids
// that don't resolve to an author or genre.
func (h *handler) bindDraft(c echo.Context, draft *BookDraft) ([]errcodes.FieldError, error) {
	var fields []errcodes.FieldError
	if err := c.Bind(draft); err != nil {
		verr, ok := errcodes.IsValidation(err)
		if !ok {
			return nil, errors.WithStack(err)
		}
		fields = verr.Fields
	}

	missing, err := h.bookService.MissingReferences(c.Request().Context(), draft.Author, draft.Genre)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return append(fields, missing...), nil
}

// renderForm loads the author and genre options and renders the book form.
func (h *handler) renderForm(c echo.Context, code int, title string, draft *BookDraft, fields []errcodes.FieldError) error {
	ctx := c.Request().Context()

	var authorOptions []*models.Author
	var genreOptions []*models.Genre

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authorOptions, err = h.authorService.ListAuthors(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		genreOptions, err = h.genreService.ListGenres(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(code, formView, formPage{
		Title:   title,
		Draft:   draft,
		Authors: authorOptions,
		Genres:  genreOptions,
		Errors:  fields,
	}))
}

func renderDelete(c echo.Context, check *deletion.Check[models.Book, models.BookInstance]) error {
	return errors.WithStack(c.Render(http.StatusOK, deleteView, deletePage{
		Title:     "Delete Book",
		Book:      check.Target,
		Instances: check.Dependents,
	}))
}
