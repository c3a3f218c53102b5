package bookinstances

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shishobooks/locallibrary/pkg/binder"
	"github.com/shishobooks/locallibrary/pkg/models"
)

// BookInstanceDraft is the submitted copy form.
type BookInstanceDraft struct {
	Book    string `form:"book" json:"book" mod:"trim,escape" validate:"required"`
	Imprint string `form:"imprint" json:"imprint" mod:"trim,escape" validate:"required"`
	Status  string `form:"status" json:"status" mod:"trim,escape" validate:"required,oneof=Maintenance Available Loaned Reserved"`
	DueBack string `form:"due_back" json:"due_back" mod:"trim" validate:"date"`
}

func NewBookInstanceDraft(instance *models.BookInstance) *BookInstanceDraft {
	return &BookInstanceDraft{
		Book:    instance.BookID,
		Imprint: instance.Imprint,
		Status:  instance.Status,
		DueBack: binder.FormatDate(instance.DueBack),
	}
}

// Apply copies a validated draft onto instance. A blank due date means today
// for a new copy and stays blank on an existing one.
func (d *BookInstanceDraft) Apply(instance *models.BookInstance, now time.Time) error {
	dueBack, err := binder.ParseDate(d.DueBack)
	if err != nil {
		return errors.WithStack(err)
	}
	if dueBack == nil && instance.ID == "" {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		dueBack = &today
	}

	instance.BookID = d.Book
	instance.Imprint = d.Imprint
	instance.Status = d.Status
	instance.DueBack = dueBack
	return nil
}

// ListBookInstancesQuery filters the copy list, e.g. ?status=Available.
type ListBookInstancesQuery struct {
	Status string `query:"status" json:"status,omitempty" mod:"trim" validate:"omitempty,oneof=Maintenance Available Loaned Reserved"`
}
