package main

import (
	"fmt"
	"net/http"

	"github.com/shiftwise/timeclock-backend-go/internal/config"
	appHTTP "github.com/shiftwise/timeclock-backend-go/internal/handler/http"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/cron"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/database"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/jwt"
	"github.com/shiftwise/timeclock-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shiftwise/timeclock-backend-go/internal/service/attendance"
	authService "github.com/shiftwise/timeclock-backend-go/internal/service/auth"
	payrollService "github.com/shiftwise/timeclock-backend-go/internal/service/payroll"
	reportService "github.com/shiftwise/timeclock-backend-go/internal/service/report"
	userService "github.com/shiftwise/timeclock-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), int32(cfg.Database.MaxConns), int32(cfg.Database.MinConns))
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	exportRepo := postgresql.NewExportRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := authService.NewAuthService(userRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(db, timeEntryRepo)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, timeEntryRepo, userRepo)
	reportSvc := reportService.NewReportService(exportRepo)
	userSvc := userService.NewUserService(userRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, userRepo)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		payrollHandler,
		reportHandler,
		userHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
