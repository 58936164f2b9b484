package domain

import (
	"strings"
	"time"
)

// ConstructionSite is a construction project record ("obra"). Every other
// inventory or tooling record in ObraLog is scoped under one.
type ConstructionSite struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeName trims the name and rejects it when nothing is left.
func NormalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", ErrInvalidName
	}
	return n, nil
}
