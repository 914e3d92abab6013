package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"dayflow/internal/domain/attendance"
	"dayflow/internal/domain/audit"
	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/employees"
	"dayflow/internal/domain/leave"
	"dayflow/internal/domain/payroll"
	"dayflow/internal/domain/reports"
	"dayflow/internal/platform/config"
	"dayflow/internal/platform/db"
	"dayflow/internal/platform/metrics"
	"dayflow/internal/transport/http/api"
	attendancehandler "dayflow/internal/transport/http/handlers/attendance"
	audithandler "dayflow/internal/transport/http/handlers/audit"
	authhandler "dayflow/internal/transport/http/handlers/auth"
	employeeshandler "dayflow/internal/transport/http/handlers/employees"
	leavehandler "dayflow/internal/transport/http/handlers/leave"
	payrollhandler "dayflow/internal/transport/http/handlers/payroll"
	reportshandler "dayflow/internal/transport/http/handlers/reports"
	"dayflow/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *db.Pool
	Router  http.Handler
	Metrics *metrics.Collector
	Logger  *slog.Logger
}

// New connects to the database, prepares the schema and wires every route.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.RunMigrations {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	app := &App{
		Config:  cfg,
		DB:      pool,
		Metrics: metrics.New(),
		Logger:  slog.Default(),
	}
	app.Router = app.routes()
	return app, nil
}

func (a *App) routes() http.Handler {
	cfg := a.Config
	pool := a.DB

	auditSvc := audit.New(pool)
	employeeSvc := employees.NewService(employees.NewStore(pool))
	authSvc := auth.NewService(auth.NewStore(pool), cfg.JWTSecret, cfg.JWTTTL)
	attendanceSvc := attendance.NewService(attendance.NewStore(pool), cfg.AttendanceOvernightPolicy)
	leaveSvc := leave.NewService(leave.NewStore(pool), leave.Options{
		RevalidateOnApproval: cfg.LeaveRevalidateOnApproval,
		RestoreOnDelete:      cfg.LeaveRestoreOnDelete,
		Recorder:             a.Metrics,
	})
	payrollSvc := payroll.NewService(payroll.NewStore(pool), cfg.PayslipCurrency)
	reportsSvc := reports.NewService(reports.NewStore(pool), attendanceSvc)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.Logger(a.Logger, a.Metrics))
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(cfg.RequestTimeout))
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, map[string]string{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)}, middleware.GetRequestID(r.Context()))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			api.Fail(w, http.StatusServiceUnavailable, "not_ready", "database not ready", middleware.GetRequestID(r.Context()))
			return
		}
		api.Success(w, map[string]string{"status": "ready"}, middleware.GetRequestID(r.Context()))
	})
	if cfg.MetricsEnabled {
		router.Handle("/metrics", a.Metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

		authHandler := authhandler.NewHandler(authSvc, employeeSvc, auditSvc, cfg.AllowSelfSignup)
		authHandler.Throttle = middleware.AuthRateLimit(cfg.RateLimitPerMinute, time.Minute)
		authHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			employeeshandler.NewHandler(employeeSvc, auditSvc).RegisterRoutes(r)
			attendancehandler.NewHandler(attendanceSvc, auditSvc).RegisterRoutes(r)
			leavehandler.NewHandler(leaveSvc, auditSvc).RegisterRoutes(r)
			payrollhandler.NewHandler(payrollSvc, auditSvc).RegisterRoutes(r)
			reportshandler.NewHandler(reportsSvc).RegisterRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(auth.RoleAdmin))
				audithandler.NewHandler(auditSvc).RegisterRoutes(r)
			})
		})

		r.NotFound(routeNotFound)
		r.MethodNotAllowed(routeNotFound)
	})

	router.NotFound(spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"}.ServeHTTP)
	return router
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	api.Fail(w, http.StatusNotFound, "not_found", "Route not found", middleware.GetRequestID(r.Context()))
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("dayflow server listening", "addr", a.Config.Addr, "env", a.Config.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	a.Logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		routeNotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	index := filepath.Join(h.staticPath, h.indexPath)
	if _, err := os.Stat(index); err == nil {
		http.ServeFile(w, r, index)
		return
	}
	routeNotFound(w, r)
}
