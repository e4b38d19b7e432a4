package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/internhub/internship-backend-go/internal/domain/user"
	"github.com/internhub/internship-backend-go/internal/handler/http/middleware"
	"github.com/internhub/internship-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	AllowedOrigins []string
	AppEnv         string
	UploadsDir     string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	internHandler InternHandler,
	attendanceHandler AttendanceHandler,
	absenceHandler AbsenceHandler,
	assessmentHandler AssessmentHandler,
	notificationHandler NotificationHandler,
	masterHandler MasterHandler,
	reportHandler ReportHandler,
	activityLogHandler ActivityLogHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "internhub"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.AppEnv),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

	if cfg.UploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
			fileServer.ServeHTTP(w, req)
		})
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", authHandler.LoginWithGoogle)
				r.Get("/callback/google", authHandler.OAuthCallbackGoogle)
			})
		})

		// SSE stream authenticates with its own short-lived token.
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/auth/register", authHandler.Register)
				r.Get("/activity-logs", activityLogHandler.List)
			})

			r.Route("/interns", func(r chi.Router) {
				r.Get("/me", internHandler.GetMine)
				r.Get("/my-interns", internHandler.MyInterns)
				r.Get("/{id}", internHandler.Get)
				r.Post("/{id}/documents", internHandler.UploadDocument)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionInternViewAll))
					r.Get("/", internHandler.List)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionInternManage))
					r.Post("/", internHandler.Create)
					r.Put("/{id}", internHandler.Update)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Get("/my", attendanceHandler.GetMyAttendance)
				r.Get("/{id}", attendanceHandler.Get)
				r.Post("/{id}/check-out", attendanceHandler.CheckOut)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/", attendanceHandler.List)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceApprove))
					r.Post("/{id}/decision", attendanceHandler.Decide)
				})
			})

			r.Route("/absence-requests", func(r chi.Router) {
				r.Post("/", absenceHandler.Submit)
				r.Get("/my", absenceHandler.GetMyRequests)
				r.Get("/{id}", absenceHandler.Get)
				r.Post("/{id}/cancel", absenceHandler.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAbsenceViewAll))
					r.Get("/", absenceHandler.List)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAbsenceApprove))
					r.Post("/{id}/decision", absenceHandler.Decide)
				})
			})

			r.Route("/assessments", func(r chi.Router) {
				r.Get("/my", assessmentHandler.GetMyAssessments)
				r.Get("/{id}", assessmentHandler.Get)
				r.Post("/{id}/self-assessment", assessmentHandler.SelfAssess)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAssessmentViewAll))
					r.Get("/", assessmentHandler.List)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAssessmentCreate))
					r.Post("/", assessmentHandler.Create)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAssessmentReview))
					r.Post("/{id}/review", assessmentHandler.Review)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/mark-read", notificationHandler.MarkAsRead)
				r.Post("/mark-all-read", notificationHandler.MarkAllAsRead)
				r.Delete("/{id}", notificationHandler.Delete)
				r.Get("/sse-token", notificationHandler.GetSSEToken)
				r.Route("/preferences", func(r chi.Router) {
					r.Get("/", notificationHandler.GetPreferences)
					r.Put("/", notificationHandler.UpdatePreferences)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionMasterView))

				r.Route("/branches", func(r chi.Router) {
					r.Get("/", masterHandler.ListBranches)
					r.Get("/{id}", masterHandler.GetBranch)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionMasterManage))
						r.Post("/", masterHandler.CreateBranch)
						r.Put("/{id}", masterHandler.UpdateBranch)
						r.Delete("/{id}", masterHandler.DeleteBranch)
					})
				})

				r.Route("/schools", func(r chi.Router) {
					r.Get("/", masterHandler.ListSchools)
					r.Get("/{id}", masterHandler.GetSchool)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionMasterManage))
						r.Post("/", masterHandler.CreateSchool)
						r.Put("/{id}", masterHandler.UpdateSchool)
						r.Delete("/{id}", masterHandler.DeleteSchool)
					})
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/intern-summaries", reportHandler.InternSummaries)
				r.Get("/intern-summaries/csv", reportHandler.InternSummariesCSV)
			})
		})
	})

	return r
}
