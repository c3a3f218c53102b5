package genres

import (
	"github.com/shishobooks/locallibrary/pkg/errcodes"
	"github.com/shishobooks/locallibrary/pkg/models"
)

const (
	listView   = "genre_list"
	detailView = "genre_detail"
	formView   = "genre_form"
	deleteView = "genre_delete"
)

type listPage struct {
	Title  string
	Genres []*models.Genre
}

type detailPage struct {
	Title string
	Genre *models.Genre
	Books []*models.Book
}

type formPage struct {
	Title  string
	Draft  *GenreDraft
	Errors []errcodes.FieldError
}

type deletePage struct {
	Title string
	Genre *models.Genre
	Books []*models.Book
}
