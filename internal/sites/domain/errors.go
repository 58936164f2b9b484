package domain

import "errors"

var (
	ErrNotFound    = errors.New("construction site not found")
	ErrInvalidName = errors.New("construction site name is required")
)
