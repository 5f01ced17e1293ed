package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const profileColumns = `id, email, full_name, COALESCE(phone,''), role, is_active, mfa_enabled, created_at`

func (s *Store) ListProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+profileColumns+`
    FROM profiles
    ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProfiles(rows)
}

func (s *Store) ListActiveEmployees(ctx context.Context) ([]Profile, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+profileColumns+`
    FROM profiles
    WHERE is_active = true AND role = 'employee'
    ORDER BY created_at ASC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProfiles(rows)
}

func (s *Store) GetProfile(ctx context.Context, id string) (*Profile, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+profileColumns+`
    FROM profiles
    WHERE id = $1
  `, id)

	var p Profile
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Role, &p.IsActive, &p.MFAEnabled, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) FindCredentialsByEmail(ctx context.Context, email string) (*Credentials, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+profileColumns+`, password_hash, COALESCE(mfa_secret,'')
    FROM profiles
    WHERE email = $1 AND is_active = true
  `, email)

	var c Credentials
	err := row.Scan(&c.ID, &c.Email, &c.FullName, &c.Phone, &c.Role, &c.IsActive, &c.MFAEnabled, &c.CreatedAt, &c.PasswordHash, &c.MFASecret)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) CreateProfile(ctx context.Context, p Profile, passwordHash string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO profiles (email, password_hash, full_name, phone, role, is_active)
    VALUES ($1, $2, $3, nullif($4,''), $5, $6)
    RETURNING id
  `, p.Email, passwordHash, p.FullName, p.Phone, p.Role, p.IsActive).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrEmailTaken
		}
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateProfile(ctx context.Context, id string, update Update) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE profiles
    SET full_name = $2, phone = nullif($3,''), role = $4, is_active = $5
    WHERE id = $1
  `, id, update.FullName, update.Phone, update.Role, update.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProfile removes the profile; daily_reports cascade via FK.
func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM profiles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetMFASecret(ctx context.Context, id, secret string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE profiles SET mfa_secret = $2 WHERE id = $1", id, secret)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetMFAEnabled(ctx context.Context, id string, enabled bool) error {
	tag, err := s.DB.Exec(ctx, "UPDATE profiles SET mfa_enabled = $2 WHERE id = $1", id, enabled)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) MFASecret(ctx context.Context, id string) (string, error) {
	var secret string
	err := s.DB.QueryRow(ctx, "SELECT COALESCE(mfa_secret,'') FROM profiles WHERE id = $1", id).Scan(&secret)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return secret, nil
}

func scanProfiles(rows pgx.Rows) ([]Profile, error) {
	var out []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Role, &p.IsActive, &p.MFAEnabled, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	type sqlState interface{ SQLState() string }
	var coded sqlState
	if errors.As(err, &coded) {
		return coded.SQLState() == "23505"
	}
	return false
}
