package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"

	"github.com/presenz/presenz-backend-go/internal/handler/http/middleware"
	"github.com/presenz/presenz-backend-go/internal/handler/http/response"
	"github.com/presenz/presenz-backend-go/internal/pkg/jwt"
)

// authRateLimit caps login and refresh attempts per IP per minute.
const authRateLimit = 20

type RouterConfig struct {
	AppName        string
	Version        string
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
	// RateLimit is requests per IP per minute across the API; zero disables it.
	RateLimit int
	// UploadsDir is served read-only under /uploads when set.
	UploadsDir string
	Metrics    http.Handler
}

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	MissPunch  MissPunchHandler
	Leave      LeaveHandler
	Timesheet  TimesheetHandler
	Report     ReportHandler
	Payroll    PayrollHandler
	Settings   SettingsHandler
	Backup     BackupHandler
	Live       LiveHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}
	if cfg.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(limitByIP(cfg.RateLimit))
		}

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(limitByIP(authRateLimit))
				r.Use(chiMiddleware.AllowContentType("application/json"))
				r.Post("/login", h.Auth.Login)
				r.Post("/firebase", h.Auth.LoginWithFirebase)
			})
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired)
				r.Get("/me", h.Auth.Me)
				r.Post("/change-password", h.Auth.ChangePassword)
				r.Post("/stream-token", h.Auth.StreamToken)
			})
		})

		// Stream token travels in the query string
		r.Get("/live/{topic}", h.Live.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", h.Employee.GetMe)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Employee.ListEmployees)
					r.Post("/", h.Employee.CreateEmployee)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.Employee.GetEmployee)
						r.Put("/", h.Employee.UpdateEmployee)
						r.Delete("/", h.Employee.RemoveEmployee)
						r.Put("/image", h.Employee.UploadImage)
					})
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/punch-in", h.Attendance.PunchIn)
				r.Post("/punch-out", h.Attendance.PunchOut)
				r.Get("/me/today", h.Attendance.GetMyToday)

				// Admin only
				r.Route("/days/{date}", func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Attendance.GetDay)
					r.Post("/mark-all", h.Attendance.MarkAll)
					r.Put("/{employeeKey}", h.Attendance.Mark)
					r.Delete("/{employeeKey}", h.Attendance.Reset)
				})
			})

			r.Route("/miss-punch", func(r chi.Router) {
				r.Post("/", h.MissPunch.Create)
				r.Get("/my", h.MissPunch.ListMine)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.MissPunch.List)
					r.Post("/{id}/approve", h.MissPunch.Approve)
					r.Post("/{id}/reject", h.MissPunch.Reject)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/", h.Leave.CreateRequest)
				r.Get("/my", h.Leave.GetMyRequests)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Leave.ListRequests)
					r.Post("/{id}/approve", h.Leave.ApproveRequest)
					r.Post("/{id}/reject", h.Leave.RejectRequest)
				})
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Post("/", h.Timesheet.Create)
				r.Get("/my", h.Timesheet.ListMine)
				r.Get("/template", h.Timesheet.Template)
				r.Delete("/{id}", h.Timesheet.Delete)

				// Admin only
				r.With(middleware.AdminOnly).Get("/", h.Timesheet.List)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/history", h.Report.GetMyHistory)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/monthly", h.Report.GetMonthlyReport)
					r.Get("/monthly/export", h.Report.ExportMonthlyReport)
					r.Get("/history/{employeeKey}", h.Report.GetEmployeeHistory)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", h.Payroll.GetPayrollSummary)
				r.Get("/export", h.Payroll.ExportPayroll)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", h.Settings.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", h.Settings.Update)
					r.Post("/holidays", h.Settings.AddHoliday)
					r.Delete("/holidays/{date}", h.Settings.RemoveHoliday)
				})
			})

			r.Route("/backup", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/export", h.Backup.Export)
				r.Post("/import", h.Backup.Import)
				r.Get("/stats", h.Backup.Stats)
			})
		})
	})
	return r
}

// limitByIP allows requests per minute per client IP and answers the rest
// with the JSON error envelope.
func limitByIP(requests int) func(http.Handler) http.Handler {
	return httprate.Limit(requests, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(response.TooManyRequests),
	)
}
