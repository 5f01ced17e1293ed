package profile

import (
	"context"
	"log/slog"
	"strings"

	"worklog/internal/domain/audit"
	"worklog/internal/domain/auth"
)

type Service struct {
	Store StoreAPI
	Audit audit.Recorder
}

func NewService(store StoreAPI, auditor audit.Recorder) *Service {
	return &Service{Store: store, Audit: auditor}
}

func (s *Service) List(ctx context.Context, actor auth.UserContext) ([]Profile, error) {
	if actor.Role != auth.RoleAdmin {
		return nil, auth.ErrUnauthorized
	}
	return s.Store.ListProfiles(ctx)
}

func (s *Service) Get(ctx context.Context, actor auth.UserContext, id string) (*Profile, error) {
	if actor.Role != auth.RoleAdmin && actor.UserID != id {
		return nil, auth.ErrUnauthorized
	}
	return s.Store.GetProfile(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor auth.UserContext, input NewProfile) (*Profile, error) {
	if actor.Role != auth.RoleAdmin {
		return nil, auth.ErrUnauthorized
	}

	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)
	if input.Email == "" || input.FullName == "" {
		return nil, ErrMissingField
	}
	if len(input.Password) < 8 {
		return nil, ErrWeakPassword
	}
	if input.Role == "" {
		input.Role = auth.RoleEmployee
	}
	if !auth.ValidRole(input.Role) {
		return nil, ErrInvalidRole
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	p := Profile{
		Email:    input.Email,
		FullName: input.FullName,
		Phone:    strings.TrimSpace(input.Phone),
		Role:     input.Role,
		IsActive: true,
	}
	id, err := s.Store.CreateProfile(ctx, p, hash)
	if err != nil {
		return nil, err
	}

	created, err := s.Store.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	s.record(ctx, audit.Entry{
		ActorID:          actor.UserID,
		TargetEmployeeID: id,
		Action:           audit.ActionCreateEmployee,
		After:            created,
	})
	return created, nil
}

func (s *Service) Update(ctx context.Context, actor auth.UserContext, id string, update Update) (*Profile, error) {
	if actor.Role != auth.RoleAdmin {
		return nil, auth.ErrUnauthorized
	}
	if !auth.ValidRole(update.Role) {
		return nil, ErrInvalidRole
	}

	before, err := s.Store.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	update.FullName = strings.TrimSpace(update.FullName)
	if update.FullName == "" {
		return nil, ErrMissingField
	}
	if err := s.Store.UpdateProfile(ctx, id, update); err != nil {
		return nil, err
	}

	after, err := s.Store.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	s.record(ctx, audit.Entry{
		ActorID:          actor.UserID,
		TargetEmployeeID: id,
		Action:           audit.ActionUpdateEmployee,
		Before:           before,
		After:            after,
	})
	return after, nil
}

func (s *Service) Delete(ctx context.Context, actor auth.UserContext, id string) error {
	if actor.Role != auth.RoleAdmin {
		return auth.ErrUnauthorized
	}
	if actor.UserID == id {
		return ErrSelfDeletion
	}

	before, err := s.Store.GetProfile(ctx, id)
	if err != nil {
		return err
	}

	// Recorded before the delete so the trail survives the cascade.
	s.record(ctx, audit.Entry{
		ActorID:          actor.UserID,
		TargetEmployeeID: id,
		Action:           audit.ActionDeleteEmployee,
		Before:           before,
	})

	return s.Store.DeleteProfile(ctx, id)
}

func (s *Service) record(ctx context.Context, entry audit.Entry) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.Record(ctx, entry); err != nil {
		slog.Warn("audit record failed", "action", entry.Action, "target", entry.TargetEmployeeID, "err", err)
	}
}
