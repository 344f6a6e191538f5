package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/presenz/presenz-backend-go/internal/config"
	"github.com/presenz/presenz-backend-go/internal/fixtures"
	appHTTP "github.com/presenz/presenz-backend-go/internal/handler/http"
	"github.com/presenz/presenz-backend-go/internal/pkg/database"
	"github.com/presenz/presenz-backend-go/internal/pkg/identity"
	"github.com/presenz/presenz-backend-go/internal/pkg/jwt"
	"github.com/presenz/presenz-backend-go/internal/pkg/metrics"
	"github.com/presenz/presenz-backend-go/internal/pkg/sse"
	"github.com/presenz/presenz-backend-go/internal/pkg/storage"
	"github.com/presenz/presenz-backend-go/internal/repository/postgresql"
	attendanceService "github.com/presenz/presenz-backend-go/internal/service/attendance"
	serviceAuth "github.com/presenz/presenz-backend-go/internal/service/auth"
	backupService "github.com/presenz/presenz-backend-go/internal/service/backup"
	employeeService "github.com/presenz/presenz-backend-go/internal/service/employee"
	"github.com/presenz/presenz-backend-go/internal/service/file"
	leaveService "github.com/presenz/presenz-backend-go/internal/service/leave"
	"github.com/presenz/presenz-backend-go/internal/service/live"
	missPunchService "github.com/presenz/presenz-backend-go/internal/service/misspunch"
	payrollService "github.com/presenz/presenz-backend-go/internal/service/payroll"
	reportService "github.com/presenz/presenz-backend-go/internal/service/report"
	settingsService "github.com/presenz/presenz-backend-go/internal/service/settings"
	"github.com/presenz/presenz-backend-go/internal/service/status"
	timesheetService "github.com/presenz/presenz-backend-go/internal/service/timesheet"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.App.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	staffRepo := postgresql.NewStaffRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	missPunchRepo := postgresql.NewMissPunchRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.App.Env == "production")
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	var provider identity.Provider
	if cfg.Firebase.Enabled {
		provider, err = identity.NewFirebaseProvider(ctx, identity.Config{
			ProjectID:       cfg.Firebase.ProjectID,
			CredentialsFile: cfg.Firebase.CredentialsFile,
			CredentialsJSON: cfg.Firebase.CredentialsJSON,
		})
		if err != nil {
			return fmt.Errorf("init firebase: %w", err)
		}
		slog.Info("firebase identity provider enabled", "project_id", cfg.Firebase.ProjectID)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("init local storage: %w", err)
	}
	fileService := file.NewFileService(fileStorage, cfg.Storage.MaxUploadSize)

	hub := sse.NewHub()
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)
	metrics.RegisterSubscriberGauge(registry, hub.TotalSubscribers)

	loc := cfg.Location()
	loader := status.Loader{Staff: staffRepo, Settings: settingsRepo, Attendance: attendanceRepo}

	authService := serviceAuth.NewAuthService(tx, userRepo, JWTRepository, JWTService, provider, appMetrics)
	settingsSvc := settingsService.NewSettingsService(tx, settingsRepo, hub)
	employeeSvc := employeeService.NewEmployeeService(tx, staffRepo, userRepo, settingsRepo, fileService, provider, hub)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, staffRepo, settingsRepo, fileService, hub, appMetrics, loc)
	missPunchSvc := missPunchService.NewMissPunchService(tx, missPunchRepo, attendanceRepo, staffRepo, hub, appMetrics, loc)
	leaveSvc := leaveService.NewLeaveService(tx, leaveRepo, staffRepo, appMetrics)
	timesheetSvc := timesheetService.NewTimesheetService(timesheetRepo, staffRepo, settingsRepo)
	reportSvc := reportService.NewReportService(loader, appMetrics, loc)
	payrollSvc := payrollService.NewPayrollService(loader, appMetrics, loc)
	backupSvc := backupService.NewBackupService(tx, backupService.Repositories{
		Staff:       staffRepo,
		Attendance:  attendanceRepo,
		Settings:    settingsRepo,
		MissPunches: missPunchRepo,
		Leaves:      leaveRepo,
		Timesheets:  timesheetRepo,
	}, hub, appMetrics)
	liveSvc := live.NewLiveService(hub, staffRepo, settingsRepo, attendanceRepo)

	if cfg.App.SeedDemo {
		seeded, err := fixtures.Seeder{
			Staff:     staffRepo,
			Settings:  settingsRepo,
			Employees: employeeSvc,
			Config:    settingsSvc,
		}.Seed(ctx)
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		if seeded {
			slog.Warn("demo data seeded; change the demo passwords", "password", fixtures.DemoPassword)
		}
	}

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AppName:        cfg.App.Name,
		Version:        version,
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.AllowedOrigins,
		RateLimit:      cfg.App.RateLimit,
		UploadsDir:     fileStorage.BasePath(),
		Metrics:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authService),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		MissPunch:  appHTTP.NewMissPunchHandler(missPunchSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Timesheet:  appHTTP.NewTimesheetHandler(timesheetSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Settings:   appHTTP.NewSettingsHandler(settingsSvc),
		Backup:     appHTTP.NewBackupHandler(backupSvc),
		Live:       appHTTP.NewLiveHandler(liveSvc, JWTService),
	})

	// No WriteTimeout: live streams stay open
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	server.RegisterOnShutdown(hub.Close)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "version", version, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
