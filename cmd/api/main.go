package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lokahr/attendance-backend-go/internal/config"
	appHTTP "github.com/lokahr/attendance-backend-go/internal/handler/http"
	"github.com/lokahr/attendance-backend-go/internal/pkg/cron"
	"github.com/lokahr/attendance-backend-go/internal/pkg/database"
	"github.com/lokahr/attendance-backend-go/internal/pkg/jwt"
	"github.com/lokahr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/lokahr/attendance-backend-go/internal/service/attendance"
	correctionService "github.com/lokahr/attendance-backend-go/internal/service/correction"
	notificationService "github.com/lokahr/attendance-backend-go/internal/service/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	correctionRepo := postgresql.NewCorrectionRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	notificationSvc := notificationService.NewNotificationService(notificationRepo, notificationService.Config{})
	defer notificationSvc.Stop()

	txManager := postgresql.NewTxManager(db)
	attendanceSvc := attendanceService.NewAttendanceService(txManager, attendanceRepo, companyRepo, notificationSvc)
	correctionSvc := correctionService.NewCorrectionService(correctionRepo, companyRepo, notificationSvc)

	if cfg.App.CronEnabled {
		scheduler := cron.NewScheduler()
		cron.NewAttendanceJobs(attendanceRepo, companyRepo).RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	correctionHandler := appHTTP.NewCorrectionHandler(correctionSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:        cfg.App.Env,
			CORSOrigin: cfg.App.CORSOrigin,
		},
		jwtService,
		attendanceHandler,
		correctionHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
