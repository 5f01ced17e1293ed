package profile

import "time"

type Profile struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Phone      string    `json:"phone,omitempty"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"isActive"`
	MFAEnabled bool      `json:"mfaEnabled"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Credentials carries the password hash and MFA secret alongside the profile
// for the login path. Never serialized.
type Credentials struct {
	Profile
	PasswordHash string
	MFASecret    string
}

type NewProfile struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Role     string
}

type Update struct {
	FullName string
	Phone    string
	Role     string
	IsActive bool
}
