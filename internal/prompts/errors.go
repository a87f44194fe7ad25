package prompts

import "errors"

var (
	ErrNotFound        = errors.New("prompt configuration not found")
	ErrInvalidSchema   = errors.New("schemaJson is not valid JSON")
	ErrInvalidMethod   = errors.New("processingMethod must be text, image or both")
	ErrMissingBrand    = errors.New("brandName is required")
	ErrUnknownCountry  = errors.New("countryCode is not known")
	ErrNothingToUpdate = errors.New("no fields to update")
)
