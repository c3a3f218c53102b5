package genres

import "github.com/shishobooks/locallibrary/pkg/models"

// GenreDraft is the submitted genre form.
type GenreDraft struct {
	Name string `form:"name" json:"name" mod:"trim,escape" validate:"required,max=100"`
}

func NewGenreDraft(genre *models.Genre) *GenreDraft {
	return &GenreDraft{Name: genre.Name}
}

func (d *GenreDraft) Apply(genre *models.Genre) {
	genre.Name = d.Name
}
