package summary

import "errors"

var ErrInvalidRange = errors.New("date range must be two valid YYYY-MM-DD dates")
