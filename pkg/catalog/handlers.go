package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

const indexView = "index"

type indexPage struct {
	Title  string
	Counts *Counts
	Error  string
}

type handler struct {
	catalogService *Service
}

// index shows the catalog counts. A failed count is reported on the page
// instead of failing the request.
func (h *handler) index(c echo.Context) error {
	ctx := c.Request().Context()

	page := indexPage{Title: "Local Library Home"}

	counts, err := h.catalogService.Counts(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to count catalog", logger.Data{"error": err.Error()})
		page.Error = err.Error()
	} else {
		page.Counts = counts
	}

	return errors.WithStack(c.Render(http.StatusOK, indexView, page))
}
