package profile

import "context"

type StoreAPI interface {
	ListProfiles(ctx context.Context) ([]Profile, error)
	ListActiveEmployees(ctx context.Context) ([]Profile, error)
	GetProfile(ctx context.Context, id string) (*Profile, error)
	FindCredentialsByEmail(ctx context.Context, email string) (*Credentials, error)
	CreateProfile(ctx context.Context, p Profile, passwordHash string) (string, error)
	UpdateProfile(ctx context.Context, id string, update Update) error
	DeleteProfile(ctx context.Context, id string) error
	SetMFASecret(ctx context.Context, id, secret string) error
	SetMFAEnabled(ctx context.Context, id string, enabled bool) error
	MFASecret(ctx context.Context, id string) (string, error)
}
