package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/tap-academy/attendance-backend-go/internal/config"
	"github.com/tap-academy/attendance-backend-go/internal/domain/attendance"
	appHTTP "github.com/tap-academy/attendance-backend-go/internal/handler/http"
	"github.com/tap-academy/attendance-backend-go/internal/pkg/cron"
	"github.com/tap-academy/attendance-backend-go/internal/pkg/database"
	"github.com/tap-academy/attendance-backend-go/internal/pkg/jwt"
	"github.com/tap-academy/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/tap-academy/attendance-backend-go/internal/service/attendance"
	authService "github.com/tap-academy/attendance-backend-go/internal/service/auth"
	dashboardService "github.com/tap-academy/attendance-backend-go/internal/service/dashboard"
	reportService "github.com/tap-academy/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	policy, err := attendance.NewPolicy(
		cfg.Attendance.ExpectedStartTime,
		cfg.Attendance.LateThresholdMinutes,
		cfg.Attendance.HalfDayHoursThreshold,
		cfg.Attendance.Timezone,
	)
	if err != nil {
		log.Fatal("Invalid attendance policy:", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(db, userRepo, employeeRepo, refreshTokenRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, policy)
	dashboardSvc := dashboardService.NewDashboardService(attendanceRepo, employeeRepo, policy)
	reportSvc := reportService.NewReportService(attendanceRepo, policy)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        "attendance-backend",
			AppVersion:     "v1.0.0",
			AppEnv:         cfg.App.Env,
			AllowedOrigins: []string{cfg.App.FrontendURL},
		},
		jwtService,
		authHandler,
		attendanceHandler,
		dashboardHandler,
		reportHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, policy, cfg.Attendance.AutoCloseAfterHours).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
