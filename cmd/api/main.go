package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/internhub/internship-backend-go/internal/config"
	appHTTP "github.com/internhub/internship-backend-go/internal/handler/http"
	"github.com/internhub/internship-backend-go/internal/pkg/database"
	"github.com/internhub/internship-backend-go/internal/pkg/email"
	"github.com/internhub/internship-backend-go/internal/pkg/jwt"
	"github.com/internhub/internship-backend-go/internal/pkg/oauth"
	"github.com/internhub/internship-backend-go/internal/pkg/sse"
	"github.com/internhub/internship-backend-go/internal/pkg/storage"
	"github.com/internhub/internship-backend-go/internal/repository/postgresql"
	absenceService "github.com/internhub/internship-backend-go/internal/service/absence"
	"github.com/internhub/internship-backend-go/internal/service/activity"
	assessmentService "github.com/internhub/internship-backend-go/internal/service/assessment"
	attendanceService "github.com/internhub/internship-backend-go/internal/service/attendance"
	serviceAuth "github.com/internhub/internship-backend-go/internal/service/auth"
	internService "github.com/internhub/internship-backend-go/internal/service/intern"
	"github.com/internhub/internship-backend-go/internal/service/master"
	notificationService "github.com/internhub/internship-backend-go/internal/service/notification"
	reportService "github.com/internhub/internship-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	internRepo := postgresql.NewInternRepository(db)
	branchRepo := postgresql.NewBranchRepository(db)
	schoolRepo := postgresql.NewSchoolRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	absenceRepo := postgresql.NewAbsenceRequestRepository(db)
	assessmentRepo := postgresql.NewAssessmentRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	activityLogRepo := postgresql.NewActivityLogRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	emailService, err := email.NewEmailService(cfg.SMTP, cfg.App.SiteURL)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	hub := sse.NewHub()
	notifSvc := notificationService.NewNotificationService(notificationRepo, userRepo, emailService, hub, logger, 4)
	recorder := activity.NewRecorder(activityLogRepo, logger)

	authSvc := serviceAuth.NewAuthService(userRepo, internRepo, refreshTokenRepo, JWTService, GoogleService, emailService, notifSvc, recorder)
	internSvc := internService.NewInternService(internRepo, userRepo, branchRepo, schoolRepo, recorder, fileStorage)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, internRepo, branchRepo, notifSvc, recorder)
	absenceSvc := absenceService.NewRequestService(absenceRepo, internRepo, notifSvc, recorder, fileStorage)
	assessmentSvc := assessmentService.NewAssessmentService(assessmentRepo, internRepo, notifSvc, recorder)
	branchSvc := master.NewBranchService(branchRepo, recorder)
	schoolSvc := master.NewSchoolService(schoolRepo, recorder)
	reportSvc := reportService.NewReportService(reportRepo)
	activitySvc := activity.NewService(activityLogRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL)
	internHandler := appHTTP.NewInternHandler(internSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	absenceHandler := appHTTP.NewAbsenceHandler(absenceSvc)
	assessmentHandler := appHTTP.NewAssessmentHandler(assessmentSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifSvc, JWTService)
	masterHandler := appHTTP.NewMasterHandler(branchSvc, schoolSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	activityLogHandler := appHTTP.NewActivityLogHandler(activitySvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: []string{cfg.App.FrontendURL},
			AppEnv:         cfg.App.Env,
			UploadsDir:     cfg.Storage.BasePath,
		},
		JWTService,
		authHandler,
		internHandler,
		attendanceHandler,
		absenceHandler,
		assessmentHandler,
		notificationHandler,
		masterHandler,
		reportHandler,
		activityLogHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
	notifSvc.Stop()
}
