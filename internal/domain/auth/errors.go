package auth

import "errors"

var (
	ErrUnauthorized       = errors.New("caller lacks required role")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
