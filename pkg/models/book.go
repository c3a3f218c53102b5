package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID         string       `bun:",pk" json:"id"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	Title      string       `bun:",notnull" json:"title"`
	AuthorID   string       `bun:",notnull" json:"author_id"`
	Author     *Author      `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	Summary    string       `bun:",notnull" json:"summary"`
	ISBN       string       `bun:"isbn,notnull" json:"isbn"`
	BookGenres []*BookGenre `bun:"rel:has-many,join:id=book_id" json:"-"`
}

func (b *Book) URL() string {
	return "/catalog/book/" + b.ID
}

// Genres returns the loaded genres in their stored order. BookGenres.Genre
// must have been selected as a relation.
func (b *Book) Genres() []*Genre {
	genres := make([]*Genre, 0, len(b.BookGenres))
	for _, bg := range b.BookGenres {
		if bg.Genre != nil {
			genres = append(genres, bg.Genre)
		}
	}
	return genres
}

// GenreIDs returns the ids of the book's genres, loaded or not.
func (b *Book) GenreIDs() []string {
	ids := make([]string, 0, len(b.BookGenres))
	for _, bg := range b.BookGenres {
		ids = append(ids, bg.GenreID)
	}
	return ids
}
