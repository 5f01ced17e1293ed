package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	ActionCreateEmployee = "CREATE_EMPLOYEE"
	ActionUpdateEmployee = "UPDATE_EMPLOYEE"
	ActionDeleteEmployee = "DELETE_EMPLOYEE"
	ActionAdminEdit      = "ADMIN_EDIT"
)

// Entry is one append-only audit record. Before and After are snapshots of the
// mutated row and are marshalled on write.
type Entry struct {
	ActorID          string
	TargetEmployeeID string
	ReportID         string
	Action           string
	Before           any
	After            any
}

type Event struct {
	ID               string          `json:"id"`
	ActorID          string          `json:"actorId"`
	TargetEmployeeID string          `json:"targetEmployeeId"`
	ReportID         string          `json:"reportId,omitempty"`
	Action           string          `json:"action"`
	BeforeData       json.RawMessage `json:"beforeData,omitempty"`
	AfterData        json.RawMessage `json:"afterData,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type Filter struct {
	Action           string
	TargetEmployeeID string
}

// Recorder is the write side consumed by the profile and report services.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) Record(ctx context.Context, entry Entry) error {
	var beforeJSON, afterJSON []byte
	if entry.Before != nil {
		payload, err := json.Marshal(entry.Before)
		if err != nil {
			return err
		}
		beforeJSON = payload
	}
	if entry.After != nil {
		payload, err := json.Marshal(entry.After)
		if err != nil {
			return err
		}
		afterJSON = payload
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_logs (actor_id, target_employee_id, report_id, action, before_data, after_data)
    VALUES ($1,$2,nullif($3,'')::uuid,$4,$5,$6)
  `, entry.ActorID, entry.TargetEmployeeID, entry.ReportID, entry.Action, beforeJSON, afterJSON)
	return err
}

func (s *Service) Count(ctx context.Context, filter Filter) (int, error) {
	query, args := s.buildBaseQuery("SELECT COUNT(1)", filter)
	var total int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]Event, error) {
	query, args := s.buildBaseQuery("SELECT id, actor_id, target_employee_id, COALESCE(report_id::text,''), action, before_data, after_data, created_at", filter)
	limitPos := len(args) + 1
	offsetPos := len(args) + 2
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", limitPos, offsetPos)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var evt Event
		if err := rows.Scan(&evt.ID, &evt.ActorID, &evt.TargetEmployeeID, &evt.ReportID, &evt.Action, &evt.BeforeData, &evt.AfterData, &evt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}

func (s *Service) buildBaseQuery(prefix string, filter Filter) (string, []any) {
	query := prefix + " FROM audit_logs WHERE 1=1"
	args := []any{}
	if filter.Action != "" {
		query += fmt.Sprintf(" AND action = $%d", len(args)+1)
		args = append(args, filter.Action)
	}
	if filter.TargetEmployeeID != "" {
		query += fmt.Sprintf(" AND target_employee_id::text = $%d", len(args)+1)
		args = append(args, filter.TargetEmployeeID)
	}
	return query, args
}
