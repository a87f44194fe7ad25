package agentcontrol

import "errors"

var (
	ErrNotFound        = errors.New("control not found")
	ErrDuplicate       = errors.New("control already exists")
	ErrMissingControl  = errors.New("control is required")
	ErrMissingValue    = errors.New("value is required")
	ErrNothingToUpdate = errors.New("no fields to update")
)
