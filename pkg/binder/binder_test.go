package binder

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shishobooks/locallibrary/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type params struct {
	Hello string `json:"hello" mod:"trim" validate:"max=9"`
	Omit  string `json:"-"`
}

type formParams struct {
	Name    string     `form:"name" json:"name" mod:"trim,escape" validate:"required,max=10,alphanum"`
	Born    string     `form:"born" json:"born" mod:"trim" validate:"date"`
	Tags    StringList `form:"tag" json:"tag" mod:"dive,escape"`
	Status  string     `form:"status" json:"status" default:"Maintenance" validate:"oneof=Maintenance Available"`
	touched bool
}

func (p *formParams) Normalize() {
	p.Tags = p.Tags.OrEmpty()
	p.touched = true
}

var (
	goodJSON             = `{"hello":" world "}`
	unknownFieldsErrJSON = `{"hello":"world","foo":"bar"}`
	typeErrJSON          = `{"hello":123}`
	validationErrJSON    = `{"hello":"0123456789"}`
)

func TestNew(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)
	assert.NotNil(t, b)

	t.Run("only allows application/json and form payloads", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationXML)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "Unsupported Media Type")
	})

	t.Run("disallows unknown fields", func(tt *testing.T) {
		c := newContext(unknownFieldsErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `Unknown Parameter "foo"`)
	})

	t.Run("returns a good message for type errors", func(tt *testing.T) {
		c := newContext(typeErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `"hello" should be of type string`)
	})

	t.Run("use mod tag to modify params", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "world", p.Hello)
	})

	t.Run("use validate tag to validate params", func(tt *testing.T) {
		c := newContext(validationErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "length must be less than or equal to 9 characters")
	})
}

func TestBindForm(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	t.Run("trims, escapes, normalizes and defaults", func(tt *testing.T) {
		form := url.Values{"name": {"  Mark "}, "tag": {"<b>"}, "born": {"1835-11-30"}, "submit": {"Save"}}
		c := newContext(form.Encode(), echo.MIMEApplicationForm)
		p := formParams{}
		err := b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "Mark", p.Name)
		assert.Equal(tt, StringList{"&lt;b&gt;"}, p.Tags)
		assert.Equal(tt, "Maintenance", p.Status)
		assert.True(tt, p.touched)
	})

	t.Run("absent multi-valued field becomes empty", func(tt *testing.T) {
		form := url.Values{"name": {"Mark"}}
		c := newContext(form.Encode(), echo.MIMEApplicationForm)
		p := formParams{}
		require.NoError(tt, b.Bind(&p, c))
		assert.NotNil(tt, p.Tags)
		assert.Empty(tt, p.Tags)
	})

	t.Run("collects every failed field", func(tt *testing.T) {
		form := url.Values{"name": {"   "}, "born": {"2023-02-30"}, "status": {"Lost"}}
		c := newContext(form.Encode(), echo.MIMEApplicationForm)
		p := formParams{}
		err := b.Bind(&p, c)
		require.Error(tt, err)

		verr, ok := errcodes.IsValidation(err)
		require.True(tt, ok)
		fields := map[string]string{}
		for _, f := range verr.Fields {
			fields[f.Field] = f.Message
		}
		assert.Equal(tt, `"name" is required`, fields["name"])
		assert.Equal(tt, `"born" should be a valid date in the format of YYYY-MM-DD`, fields["born"])
		assert.Contains(tt, fields["status"], "must be one of the following")
		assert.Equal(tt, "2023-02-30", p.Born, "input is kept for redisplay")
	})

	t.Run("alphanumeric check runs after escaping", func(tt *testing.T) {
		form := url.Values{"name": {"O'Brien"}}
		c := newContext(form.Encode(), echo.MIMEApplicationForm)
		p := formParams{}
		err := b.Bind(&p, c)
		verr, ok := errcodes.IsValidation(err)
		require.True(tt, ok)
		assert.Equal(tt, "name", verr.Fields[0].Field)
		assert.Equal(tt, "O&#39;Brien", p.Name)
	})
}

func TestStringList_UnmarshalJSON(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	c := newContext(`{"name":"Mark","tag":"solo"}`, echo.MIMEApplicationJSON)
	p := formParams{}
	require.NoError(t, b.Bind(&p, c))
	assert.Equal(t, StringList{"solo"}, p.Tags)

	c = newContext(`{"name":"Mark","tag":["a","b"]}`, echo.MIMEApplicationJSON)
	p = formParams{}
	require.NoError(t, b.Bind(&p, c))
	assert.Equal(t, StringList{"a", "b"}, p.Tags)
}

func TestDateHelpers(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDate("1910-04-21")
	require.NoError(t, err)
	assert.Equal(t, "1910-04-21", FormatDate(d))
	assert.Equal(t, "", FormatDate(nil))

	_, err = ParseDate("1910-13-01")
	require.Error(t, err)
}

func newContext(payload, mime string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(echo.POST, "/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, mime)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr)
}
