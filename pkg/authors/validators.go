package authors

import (
	"github.com/pkg/errors"
	"github.com/shishobooks/locallibrary/pkg/binder"
	"github.com/shishobooks/locallibrary/pkg/models"
)

// AuthorDraft is the submitted author form. Dates stay in their submitted
// YYYY-MM-DD form until Apply.
type AuthorDraft struct {
	FirstName   string `form:"first_name" json:"first_name" mod:"trim,escape" validate:"required,max=100,alphanum"`
	FamilyName  string `form:"family_name" json:"family_name" mod:"trim,escape" validate:"required,max=100,alphanum"`
	DateOfBirth string `form:"date_of_birth" json:"date_of_birth" mod:"trim" validate:"date"`
	DateOfDeath string `form:"date_of_death" json:"date_of_death" mod:"trim" validate:"date"`
}

func NewAuthorDraft(author *models.Author) *AuthorDraft {
	return &AuthorDraft{
		FirstName:   author.FirstName,
		FamilyName:  author.FamilyName,
		DateOfBirth: binder.FormatDate(author.DateOfBirth),
		DateOfDeath: binder.FormatDate(author.DateOfDeath),
	}
}

// Apply copies a validated draft onto author, replacing every editable field.
func (d *AuthorDraft) Apply(author *models.Author) error {
	born, err := binder.ParseDate(d.DateOfBirth)
	if err != nil {
		return errors.WithStack(err)
	}
	died, err := binder.ParseDate(d.DateOfDeath)
	if err != nil {
		return errors.WithStack(err)
	}

	author.FirstName = d.FirstName
	author.FamilyName = d.FamilyName
	author.DateOfBirth = born
	author.DateOfDeath = died
	return nil
}
