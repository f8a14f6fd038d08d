package http

import (
	"log/slog"
	"os"

	"github.com/dawamhq/attendance-engine-go/internal/handler/http/middleware"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(jwtService jwt.Service, authHandler AuthHandler, attendanceHandler AttendanceHandler, datasetHandler DatasetHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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
		r.Post("/auth/token", authHandler.Token)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Post("/auth/revoke", authHandler.Revoke)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/process", attendanceHandler.Process)
				r.Post("/preview", attendanceHandler.Preview)
				r.Get("/", attendanceHandler.List)
				r.Get("/{id}", attendanceHandler.Get)
			})

			r.Route("/dataset", func(r chi.Router) {
				r.Route("/employees", func(r chi.Router) {
					r.Get("/", datasetHandler.ListEmployees)
					r.Post("/", datasetHandler.CreateEmployee)
				})
				r.Post("/punches", datasetHandler.ImportPunches)
				r.Post("/rules", datasetHandler.CreateRule)
				r.Post("/adjustments", datasetHandler.CreateAdjustment)
				r.Post("/effects", datasetHandler.ImportEffects)
				r.Post("/leaves", datasetHandler.CreateLeave)
				r.Post("/holidays", datasetHandler.CreateHoliday)
			})
		})
	})
	return r
}
