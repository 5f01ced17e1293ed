package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"worklog/internal/domain/audit"
	"worklog/internal/domain/profile"
	"worklog/internal/domain/report"
	"worklog/internal/domain/summary"
	"worklog/internal/platform/config"
	"worklog/internal/platform/db"
	audithandler "worklog/internal/transport/http/handlers/audit"
	authhandler "worklog/internal/transport/http/handlers/auth"
	employeeshandler "worklog/internal/transport/http/handlers/employees"
	exportshandler "worklog/internal/transport/http/handlers/exports"
	reportshandler "worklog/internal/transport/http/handlers/reports"
	"worklog/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Pool   *pgxpool.Pool
	Router http.Handler
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect failed: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed failed: %w", err)
		}
	}

	auditSvc := audit.New(pool)
	profileStore := profile.NewStore(pool)
	profileSvc := profile.NewService(profileStore, auditSvc)
	reportStore := report.NewStore(pool)
	reportSvc := report.NewService(reportStore, auditSvc)
	summarySvc := summary.NewService(profileStore, reportStore)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(profileStore, cfg.JWTSecret).RegisterRoutes(r)
		employeeshandler.NewHandler(profileSvc).RegisterRoutes(r)
		reportshandler.NewHandler(reportSvc, summarySvc).RegisterRoutes(r)
		exportshandler.NewHandler(summarySvc, cfg.ExportTitle).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc).RegisterRoutes(r)
	})

	return &App{Config: cfg, Pool: pool, Router: router}, nil
}

func (a *App) Close() {
	a.Pool.Close()
}

func Run() {
	cfg := config.Load()

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("worklog server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
