package authors

import (
	"github.com/shishobooks/locallibrary/pkg/errcodes"
	"github.com/shishobooks/locallibrary/pkg/models"
)

const (
	listView   = "author_list"
	detailView = "author_detail"
	formView   = "author_form"
	deleteView = "author_delete"
)

type listPage struct {
	Title   string
	Authors []*models.Author
}

type detailPage struct {
	Title  string
	Author *models.Author
	Books  []*models.Book
}

type formPage struct {
	Title  string
	Draft  *AuthorDraft
	Errors []errcodes.FieldError
}

type deletePage struct {
	Title  string
	Author *models.Author
	Books  []*models.Book
}
