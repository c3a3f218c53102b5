package models

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/uptrace/bun"
)

const unknownDate = "unknown"

type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID          string     `bun:",pk" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	FirstName   string     `bun:",notnull" json:"first_name"`
	FamilyName  string     `bun:",notnull" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	DateOfDeath *time.Time `json:"date_of_death"`
}

// Name is the author's display name, "Family, First". It's empty unless both
// parts are set.
func (a *Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan renders "birth - death". A missing birth date shows as "unknown"
// and a missing death date as nothing.
func (a *Author) Lifespan() string {
	birth := unknownDate
	death := ""
	if a.DateOfBirth != nil {
		birth = FormatLongDate(*a.DateOfBirth)
	}
	if a.DateOfDeath != nil {
		death = FormatLongDate(*a.DateOfDeath)
	}
	return birth + " - " + death
}

func (a *Author) URL() string {
	return "/catalog/author/" + a.ID
}

// FormatLongDate formats t like "Jan 2nd, 2006".
func FormatLongDate(t time.Time) string {
	return t.Format("Jan") + " " + humanize.Ordinal(t.Day()) + ", " + t.Format("2006")
}
