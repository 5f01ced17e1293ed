package profile

import "errors"

var (
	ErrNotFound       = errors.New("profile not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrSelfDeletion   = errors.New("cannot delete own profile")
	ErrInvalidRole    = errors.New("role must be admin or employee")
	ErrMissingField   = errors.New("required profile field missing")
	ErrWeakPassword   = errors.New("password must be at least 8 characters")
	ErrMFANotEnrolled = errors.New("mfa secret not enrolled")
)
