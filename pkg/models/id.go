package models

import "github.com/google/uuid"

// NewID returns a fresh identifier for a catalog record.
func NewID() string {
	return uuid.NewString()
}

// IsID reports whether s could be a record identifier. Lookups short-circuit
// to not found when it isn't.
func IsID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
