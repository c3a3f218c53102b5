package books

import (
	"github.com/shishobooks/locallibrary/pkg/binder"
	"github.com/shishobooks/locallibrary/pkg/models"
)

// BookDraft is the submitted book form. Author and Genre hold record ids.
type BookDraft struct {
	Title   string            `form:"title" json:"title" mod:"trim,escape" validate:"required"`
	Author  string            `form:"author" json:"author" mod:"trim,escape" validate:"required"`
	Summary string            `form:"summary" json:"summary" mod:"trim,escape" validate:"required"`
	ISBN    string            `form:"isbn" json:"isbn" mod:"trim,escape" validate:"required"`
	Genre   binder.StringList `form:"genre" json:"genre" mod:"dive,escape"`
}

// Normalize makes an absent genre field an empty list. A lone value already
// decodes as a one-element list.
func (d *BookDraft) Normalize() {
	d.Genre = d.Genre.OrEmpty()
}

func NewBookDraft(book *models.Book) *BookDraft {
	return &BookDraft{
		Title:   book.Title,
		Author:  book.AuthorID,
		Summary: book.Summary,
		ISBN:    book.ISBN,
		Genre:   book.GenreIDs(),
	}
}

// Apply replaces the book's fields and genre links with the draft's.
func (d *BookDraft) Apply(book *models.Book) {
	book.Title = d.Title
	book.AuthorID = d.Author
	book.Summary = d.Summary
	book.ISBN = d.ISBN

	seen := map[string]bool{}
	book.BookGenres = make([]*models.BookGenre, 0, len(d.Genre))
	for _, genreID := range d.Genre {
		if seen[genreID] {
			continue
		}
		seen[genreID] = true
		book.BookGenres = append(book.BookGenres, &models.BookGenre{
			BookID:    book.ID,
			GenreID:   genreID,
			SortOrder: len(book.BookGenres),
		})
	}
}
