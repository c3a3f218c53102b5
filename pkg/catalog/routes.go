// Package catalog serves the catalog home page and mounts every entity's
// routes under /catalog.
package catalog

import (
	"github.com/labstack/echo/v4"
	"github.com/shishobooks/locallibrary/pkg/authors"
	"github.com/shishobooks/locallibrary/pkg/bookinstances"
	"github.com/shishobooks/locallibrary/pkg/books"
	"github.com/shishobooks/locallibrary/pkg/genres"
	"github.com/uptrace/bun"
)

const Prefix = "/catalog"

func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{
		catalogService: NewService(db),
	}

	g := e.Group(Prefix)
	g.GET("", h.index)
	g.GET("/", h.index)

	authors.RegisterRoutes(g, db)
	books.RegisterRoutes(g, db)
	genres.RegisterRoutes(g, db)
	bookinstances.RegisterRoutes(g, db)
}
