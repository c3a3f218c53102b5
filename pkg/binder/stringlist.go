package binder

import (
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// StringList is a multi-valued field that also accepts a single value. Form
// decoding already collects repeated keys; JSON input may send either a string
// or an array of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.WithStack(err)
	}
	*l = many
	return nil
}

// OrEmpty returns the list, or an empty non-nil list when nothing was sent.
func (l StringList) OrEmpty() StringList {
	if l == nil {
		return StringList{}
	}
	return l
}
