package bookinstances

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/locallibrary/pkg/books"
	"github.com/shishobooks/locallibrary/pkg/deletion"
	"github.com/shishobooks/locallibrary/pkg/errcodes"
	"github.com/shishobooks/locallibrary/pkg/models"
)

const listURL = "/catalog/bookinstances"

type handler struct {
	bookInstanceService *Service
	bookService         *books.Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBookInstancesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	opts := ListBookInstancesOptions{}
	title := "Book Instance List"
	if params.Status != "" {
		opts.Status = &params.Status
		title += ": " + params.Status
	}

	instances, err := h.bookInstanceService.ListBookInstances(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, listView, listPage{
		Title:     title,
		Instances: instances,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	instance, err := h.bookInstanceService.RetrieveBookInstance(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, detailView, detailPage{
		Title:    "Copy: " + instance.Book.Title,
		Instance: instance,
	}))
}

func (h *handler) createForm(c echo.Context) error {
	draft := &BookInstanceDraft{
		Book:   c.QueryParam("book"),
		Status: models.BookInstanceStatusMaintenance,
	}
	return h.renderForm(c, http.StatusOK, "Create BookInstance", draft, nil)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	draft := &BookInstanceDraft{}
	fields, err := h.bindDraft(c, draft)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(fields) > 0 {
		return h.renderForm(c, http.StatusUnprocessableEntity, "Create BookInstance", draft, fields)
	}

	instance := &models.BookInstance{}
	if err := draft.Apply(instance, time.Now()); err != nil {
		return errors.WithStack(err)
	}
	if err := h.bookInstanceService.CreateBookInstance(ctx, instance); err != nil {
		return errors.WithStack(err)
	}
	logger.FromContext(ctx).Info("book copy created", logger.Data{"book_instance_id": instance.ID, "book_id": instance.BookID})

	return errors.WithStack(c.Redirect(http.StatusSeeOther, instance.URL()))
}

func (h *handler) updateForm(c echo.Context) error {
	ctx := c.Request().Context()

	instance, err := h.bookInstanceService.RetrieveBookInstance(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return h.renderForm(c, http.StatusOK, "Update BookInstance", NewBookInstanceDraft(instance), nil)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	draft := &BookInstanceDraft{}
	fields, err := h.bindDraft(c, draft)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(fields) > 0 {
		return h.renderForm(c, http.StatusUnprocessableEntity, "Update BookInstance", draft, fields)
	}

	instance, err := h.bookInstanceService.RetrieveBookInstance(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	if err := draft.Apply(instance, time.Now()); err != nil {
		return errors.WithStack(err)
	}
	if err := h.bookInstanceService.UpdateBookInstance(ctx, instance); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusSeeOther, instance.URL()))
}

func (h *handler) deleteForm(c echo.Context) error {
	ctx := c.Request().Context()

	check, err := h.bookInstanceService.InspectDelete(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	if check.Status == deletion.NotFound {
		return errors.WithStack(c.Redirect(http.StatusFound, listURL))
	}

	return errors.WithStack(c.Render(http.StatusOK, deleteView, deletePage{
		Title:    "Delete BookInstance",
		Instance: check.Target,
	}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	check, err := h.bookInstanceService.InspectDelete(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	if check.Status == deletion.NotFound {
		return errors.WithStack(c.Redirect(http.StatusSeeOther, listURL))
	}

	if err := h.bookInstanceService.DeleteBookInstance(ctx, check.Target.ID); err != nil {
		return errors.WithStack(err)
	}
	logger.FromContext(ctx).Info("book copy deleted", logger.Data{"book_instance_id": check.Target.ID})

	return errors.WithStack(c.Redirect(http.StatusSeeOther, listURL))
}

// bindDraft binds the form and returns every field error, including a book
// id that doesn't resolve.
func (h *handler) bindDraft(c echo.Context, draft *BookInstanceDraft) ([]errcodes.FieldError, error) {
	var fields []errcodes.FieldError
	if err := c.Bind(draft); err != nil {
		verr, ok := errcodes.IsValidation(err)
		if !ok {
			return nil, errors.WithStack(err)
		}
		fields = verr.Fields
	}

	if draft.Book != "" {
		_, err := h.bookService.RetrieveBook(c.Request().Context(), draft.Book)
		if errors.Is(err, errcodes.NotFound("Book")) {
			fields = append(fields, errcodes.FieldError{Field: "book", Message: `"book" must be an existing book`})
		} else if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return fields, nil
}

func (h *handler) renderForm(c echo.Context, code int, title string, draft *BookInstanceDraft, fields []errcodes.FieldError) error {
	bookOptions, err := h.bookService.ListBooks(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(code, formView, formPage{
		Title:  title,
		Draft:  draft,
		Books:  bookOptions,
		Errors: fields,
	}))
}
