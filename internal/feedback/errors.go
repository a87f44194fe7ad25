package feedback

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrBadRating = errors.New("rating must be between 1 and 5")
)
