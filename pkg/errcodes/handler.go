package errcodes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/errutils"
)

// ErrorView is the name of the template used to render error pages.
const ErrorView = "error"

// ErrorPage is the view model handed to the error template.
type ErrorPage struct {
	Title      string
	StatusCode int
	Code       string
	Message    string
	Detail     string
}

type Handler struct {
	showDetails bool
}

// NewHandler returns an error handler. When showDetails is set, the full error
// with its stack trace is included in the rendered page.
func NewHandler(showDetails bool) *Handler {
	return &Handler{showDetails: showDetails}
}

// Handle is an Echo error handler that uses HTTP errors accordingly, and any
// generic error will be interpreted as an internal server error.
func (h *Handler) Handle(err error, c echo.Context) {
	if errutils.IsIgnorableErr(err) {
		logger.FromEchoContext(c).Err(err).Warn("broken pipe")
		return
	}
	if c.Response().Committed {
		return
	}

	page := h.generatePage(err)

	// Internal server errors
	if page.StatusCode == http.StatusInternalServerError {
		logger.FromEchoContext(c).Err(err).Error("server error")
	}

	if wantsJSON(c) {
		if err := c.JSON(page.StatusCode, h.jsonPayload(err, page)); err != nil {
			logger.FromEchoContext(c).Err(errors.WithStack(err)).Error("error handler json error")
		}
		return
	}

	if err := c.Render(page.StatusCode, ErrorView, page); err != nil {
		logger.FromEchoContext(c).Err(errors.WithStack(err)).Error("error handler render error")
		_ = c.String(page.StatusCode, page.Message)
	}
}

func (h *Handler) generatePage(err error) ErrorPage {
	code := ""
	msg := ""
	httpCode := http.StatusInternalServerError

	// Echo errors
	var he *echo.HTTPError
	if ok := errors.As(err, &he); ok {
		httpCode = he.Code
		msg = fmt.Sprint(he.Message)
		code = strcase.ToSnake(msg)
	}

	// Custom errors
	var e *Error
	if ok := errors.As(err, &e); ok {
		httpCode = e.HTTPCode
		code = e.Code
		msg = e.Message
	}

	// Internal server errors that aren't Echo errors or custom errors
	if httpCode == http.StatusInternalServerError && msg == "" {
		code = "internal_server_error"
		msg = "Internal Server Error"
	}

	page := ErrorPage{
		Title:      http.StatusText(httpCode),
		StatusCode: httpCode,
		Code:       code,
		Message:    msg,
	}
	if h.showDetails {
		page.Detail = fmt.Sprintf("%+v", err)
	}
	return page
}

func (h *Handler) jsonPayload(err error, page ErrorPage) map[string]interface{} {
	body := map[string]interface{}{
		"code":        page.Code,
		"message":     page.Message,
		"status_code": page.StatusCode,
	}
	var e *Error
	if errors.As(err, &e) && len(e.Fields) > 0 {
		body["fields"] = e.Fields
	}
	if page.Detail != "" {
		body["detail"] = page.Detail
	}
	return map[string]interface{}{"error": body}
}

func wantsJSON(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return strings.HasPrefix(accept, echo.MIMEApplicationJSON)
}
