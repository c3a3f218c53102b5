package bookinstances

import (
	"github.com/shishobooks/locallibrary/pkg/errcodes"
	"github.com/shishobooks/locallibrary/pkg/models"
)

const (
	listView   = "bookinstance_list"
	detailView = "bookinstance_detail"
	formView   = "bookinstance_form"
	deleteView = "bookinstance_delete"
)

type listPage struct {
	Title     string
	Instances []*models.BookInstance
}

type detailPage struct {
	Title    string
	Instance *models.BookInstance
}

type formPage struct {
	Title  string
	Draft  *BookInstanceDraft
	Books  []*models.Book
	Errors []errcodes.FieldError
}

type deletePage struct {
	Title    string
	Instance *models.BookInstance
}
