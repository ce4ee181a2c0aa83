package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Attendance AttendanceHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
	Employee   EmployeeHandler
	Events     EventHandler
}

func NewRouter(appCfg config.AppConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(appCfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appCfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appCfg.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	ja := JWTService.JWTAuth()

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok\n"))
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(middleware.Verifier(ja))
			r.Use(middleware.AuthRequired(ja))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/today", h.Attendance.Today)
				r.Get("/my-history", h.Attendance.MyHistory)
				r.Get("/my-summary", h.Attendance.MySummary)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", h.Attendance.List)
					r.Get("/summary", h.Attendance.Summary)
					r.Get("/team-summary", h.Attendance.TeamSummary)
					r.Get("/export", h.Report.Export)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", h.Dashboard.GetDashboard)
				r.Get("/employee", h.Dashboard.GetEmployeeDashboard)
				r.With(middleware.RequireManager).Get("/manager", h.Dashboard.GetManagerDashboard)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
			})

			r.With(middleware.RequireManager).Get("/events/attendance", h.Events.Stream)
		})
	})
	return r
}
