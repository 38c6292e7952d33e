package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftwise/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	reportHandler ReportHandler,
	userHandler UserHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock", attendanceHandler.Clock)
				r.Get("/status", attendanceHandler.Status)
				r.Get("/my", attendanceHandler.MyHistory)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/roster", attendanceHandler.Roster)
				})
			})

			// Manager only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)

				r.Route("/users", func(r chi.Router) {
					r.Post("/", userHandler.Create)
					r.Get("/{id}", userHandler.Get)
				})

				r.Route("/payroll", func(r chi.Router) {
					r.Post("/generate", payrollHandler.Generate)
					r.Get("/", payrollHandler.List)
					r.Get("/{id}", payrollHandler.Get)
					r.Post("/{id}/approve", payrollHandler.Approve)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Get("/attendance/export", reportHandler.AttendanceExport)
				})
			})
		})
	})

	return r
}
