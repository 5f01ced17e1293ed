package authhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"worklog/internal/domain/auth"
	"worklog/internal/domain/profile"
	"worklog/internal/transport/http/middleware"
)

const testSecret = "test-secret-test-secret-test-secret!"

type stubStore struct {
	profile.StoreAPI

	creds   map[string]*profile.Credentials
	byID    map[string]*profile.Profile
	enabled map[string]bool
}

func (s *stubStore) FindCredentialsByEmail(_ context.Context, email string) (*profile.Credentials, error) {
	c, ok := s.creds[email]
	if !ok {
		return nil, profile.ErrNotFound
	}
	return c, nil
}

func (s *stubStore) GetProfile(_ context.Context, id string) (*profile.Profile, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, profile.ErrNotFound
	}
	return p, nil
}

func newTestHandler(t *testing.T) (*Handler, *stubStore) {
	t.Helper()

	hash, err := auth.HashPassword("Stronger123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := profile.Profile{ID: "a1", Email: "admin@example.com", FullName: "Admin", Role: auth.RoleAdmin, IsActive: true}
	store := &stubStore{
		creds: map[string]*profile.Credentials{
			"admin@example.com": {Profile: admin, PasswordHash: hash},
		},
		byID:    map[string]*profile.Profile{"a1": &admin},
		enabled: map[string]bool{},
	}
	return NewHandler(store, testSecret), store
}

func postJSON(t *testing.T, router chi.Router, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	h, _ := newTestHandler(t)
	router := chi.NewRouter()
	h.RegisterRoutes(router)

	rec := postJSON(t, router, "/auth/login", `{"email":"Admin@Example.com","password":"Stronger123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Token string          `json:"token"`
			User  profile.Profile `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	claims, err := auth.ParseToken(testSecret, envelope.Data.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != "a1" || claims.Role != auth.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if envelope.Data.User.Email != "admin@example.com" {
		t.Fatalf("unexpected user in response: %+v", envelope.Data.User)
	}
}

func TestLoginRejections(t *testing.T) {
	h, store := newTestHandler(t)
	router := chi.NewRouter()
	h.RegisterRoutes(router)

	mfaHash, err := auth.HashPassword("Stronger123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	store.creds["mfa@example.com"] = &profile.Credentials{
		Profile:      profile.Profile{ID: "m1", Email: "mfa@example.com", Role: auth.RoleAdmin, IsActive: true, MFAEnabled: true},
		PasswordHash: mfaHash,
		MFASecret:    "JBSWY3DPEHPK3PXP",
	}

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"wrong password", `{"email":"admin@example.com","password":"nope"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"ghost@example.com","password":"Stronger123"}`, http.StatusUnauthorized},
		{"mfa code missing", `{"email":"mfa@example.com","password":"Stronger123"}`, http.StatusUnauthorized},
		{"mfa code wrong", `{"email":"mfa@example.com","password":"Stronger123","mfaCode":"000000"}`, http.StatusUnauthorized},
		{"malformed payload", `{`, http.StatusBadRequest},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, router, "/auth/login", tc.body)
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d: %s", tc.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestLogout(t *testing.T) {
	h, _ := newTestHandler(t)
	router := chi.NewRouter()
	h.RegisterRoutes(router)

	rec := postJSON(t, router, "/auth/logout", ``)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMe(t *testing.T) {
	h, _ := newTestHandler(t)
	router := chi.NewRouter()
	h.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), auth.UserContext{UserID: "a1", Role: auth.RoleAdmin}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data profile.Profile `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != "a1" {
		t.Fatalf("unexpected profile: %+v", envelope.Data)
	}

	anon := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	recAnon := httptest.NewRecorder()
	router.ServeHTTP(recAnon, anon)
	if recAnon.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous request, got %d", recAnon.Code)
	}
}
