package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Genre struct {
	bun.BaseModel `bun:"table:genres,alias:g"`

	ID        string    `bun:",pk" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `bun:",notnull" json:"name"`
}

func (g *Genre) URL() string {
	return "/catalog/genre/" + g.ID
}

type BookGenre struct {
	bun.BaseModel `bun:"table:book_genres,alias:bg"`

	ID        int    `bun:",pk,nullzero" json:"id"`
	BookID    string `bun:",notnull" json:"book_id"`
	GenreID   string `bun:",notnull" json:"genre_id"`
	Genre     *Genre `bun:"rel:belongs-to,join:genre_id=id" json:"genre,omitempty"`
	SortOrder int    `bun:",notnull" json:"sort_order"`
}
