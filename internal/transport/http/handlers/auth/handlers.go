package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pquerna/otp/totp"

	"worklog/internal/domain/auth"
	"worklog/internal/domain/profile"
	"worklog/internal/transport/http/api"
	"worklog/internal/transport/http/middleware"
)

const tokenTTL = 8 * time.Hour

type Handler struct {
	Store  profile.StoreAPI
	Secret string
}

func NewHandler(store profile.StoreAPI, secret string) *Handler {
	return &Handler{Store: store, Secret: secret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)
		r.With(middleware.RequireRole()).Get("/me", h.handleMe)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/mfa/setup", h.handleMFASetup)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/mfa/enable", h.handleMFAEnable)
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFACode  string `json:"mfaCode"`
}

type mfaCodeRequest struct {
	Code string `json:"code"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	email := strings.TrimSpace(strings.ToLower(payload.Email))
	creds, err := h.Store.FindCredentialsByEmail(r.Context(), email)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	if err := auth.CheckPassword(creds.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	if creds.MFAEnabled {
		if payload.MFACode == "" {
			api.Fail(w, http.StatusUnauthorized, "mfa_required", "mfa code required", middleware.GetRequestID(r.Context()))
			return
		}
		if creds.MFASecret == "" || !totp.Validate(payload.MFACode, creds.MFASecret) {
			api.Fail(w, http.StatusUnauthorized, "mfa_invalid", "invalid mfa code", middleware.GetRequestID(r.Context()))
			return
		}
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: creds.ID, Role: creds.Role}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  creds.Profile,
	}, middleware.GetRequestID(r.Context()))
}

// Tokens are stateless; logout exists so clients have a uniform endpoint to
// call before discarding the token.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]string{"status": "logged_out"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	p, err := h.Store.GetProfile(r.Context(), user.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "profile not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "store_error", "profile lookup failed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, p, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMFASetup(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	p, err := h.Store.GetProfile(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "store_error", "profile lookup failed", middleware.GetRequestID(r.Context()))
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "worklog", AccountName: p.Email})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_error", "failed to generate mfa secret", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.SetMFASecret(r.Context(), user.UserID, key.Secret()); err != nil {
		api.Fail(w, http.StatusInternalServerError, "store_error", "failed to store mfa secret", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{
		"secret": key.Secret(),
		"url":    key.URL(),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMFAEnable(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload mfaCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	secret, err := h.Store.MFASecret(r.Context(), user.UserID)
	if err != nil || secret == "" {
		api.Fail(w, http.StatusBadRequest, "mfa_not_enrolled", "run mfa setup first", middleware.GetRequestID(r.Context()))
		return
	}
	if !totp.Validate(payload.Code, secret) {
		api.Fail(w, http.StatusUnauthorized, "mfa_invalid", "invalid mfa code", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.SetMFAEnabled(r.Context(), user.UserID, true); err != nil {
		api.Fail(w, http.StatusInternalServerError, "store_error", "failed to enable mfa", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"mfaEnabled": true}, middleware.GetRequestID(r.Context()))
}
