// Package views renders the catalog's HTML pages. Each page template is
// parsed together with the shared layout and executed through the "layout"
// template, which pulls in the page's "content" block.
//
// User-entered text is stored HTML-escaped, so templates pass it through
// unescape and let html/template escape it exactly once on output.
package views

import (
	"bytes"
	"embed"
	"html"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishobooks/locallibrary/pkg/errcodes"
	"github.com/shishobooks/locallibrary/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates map[string]*template.Template
}

func New() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	templates := map[string]*template.Template{}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New(name).Funcs(funcs()).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse view %s", name)
		}
		templates[name] = t
	}

	return &Renderer{templates}, nil
}

// Render executes the named view into a buffer first so a failing template
// never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return errors.Errorf("view %q not found", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return errors.WithStack(err)
	}
	_, err := buf.WriteTo(w)
	return errors.WithStack(err)
}

// Has reports whether a view with the given name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"unescape":   html.UnescapeString,
		"contains":   contains,
		"fieldError": fieldError,
		"statuses":   func() []string { return models.BookInstanceStatuses },
	}
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func fieldError(fields []errcodes.FieldError, field string) string {
	for _, f := range fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}
