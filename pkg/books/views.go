package books

import (
	"github.com/shishobooks/locallibrary/pkg/errcodes"
	"github.com/shishobooks/locallibrary/pkg/models"
)

const (
	listView   = "book_list"
	detailView = "book_detail"
	formView   = "book_form"
	deleteView = "book_delete"
)

type listPage struct {
	Title string
	Books []*models.Book
}

type detailPage struct {
	Title     string
	Book      *models.Book
	Instances []*models.BookInstance
}

// formPage carries the select options alongside the draft being edited.
type formPage struct {
	Title   string
	Draft   *BookDraft
	Authors []*models.Author
	Genres  []*models.Genre
	Errors  []errcodes.FieldError
}

type deletePage struct {
	Title     string
	Book      *models.Book
	Instances []*models.BookInstance
}
