package binder

import (
	"context"
	"html"
	"reflect"
	"time"

	"github.com/go-playground/mold/v4"
	"github.com/go-playground/validator/v10"
)

// DateLayout is the format date fields are submitted in.
const DateLayout = "2006-01-02"

// dateValidator ensures the value is a real calendar date in the format
// YYYY-MM-DD, or the empty string. The empty string is allowed so that date
// fields can be optional; add `required` to the tag to disallow it.
func dateValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// escapeModifier replaces HTML-significant characters with their entities so
// stored values can be redisplayed safely.
func escapeModifier(_ context.Context, fl mold.FieldLevel) error {
	field := fl.Field()
	if field.Kind() != reflect.String || !field.CanSet() {
		return nil
	}
	field.SetString(html.EscapeString(field.String()))
	return nil
}

// ParseDate parses an optional date field that has already been validated.
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders an optional date for a date input.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(DateLayout)
}
