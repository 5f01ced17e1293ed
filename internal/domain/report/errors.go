package report

import "errors"

var (
	ErrNotFound    = errors.New("report not found")
	ErrInvalidDate = errors.New("report date must be a valid YYYY-MM-DD date")
	ErrEmptyPatch  = errors.New("patch contains no fields")
)
