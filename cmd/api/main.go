package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/config"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/employee"
	appHTTP "github.com/attendly-hq/attendance-backend-go/internal/handler/http"
	"github.com/attendly-hq/attendance-backend-go/internal/pkg/calendar"
	"github.com/attendly-hq/attendance-backend-go/internal/pkg/cron"
	"github.com/attendly-hq/attendance-backend-go/internal/pkg/database"
	"github.com/attendly-hq/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendly-hq/attendance-backend-go/internal/repository/postgresql"
	leaveService "github.com/attendly-hq/attendance-backend-go/internal/service/leave"
	"github.com/attendly-hq/attendance-backend-go/internal/service/reconciliation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.Reconciliation.Timezone)
	if err != nil {
		fmt.Println("Error loading timezone:", err)
		return
	}
	cal := calendar.NewPolicy(loc)

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	engine := reconciliation.NewService(attendanceRepo, leaveRequestRepo, employeeRepo, cal, reconciliation.Config{
		DefaultCheckoutHour:   cfg.Reconciliation.DefaultCheckoutHour,
		DefaultCheckoutMinute: cfg.Reconciliation.DefaultCheckoutMinute,
		RosterRole:            employee.Role(cfg.Reconciliation.RosterRole),
	})
	balanceCalculator := leaveService.NewBalanceCalculator(leaveRequestRepo, employeeRepo)

	jobs := cron.NewReconciliationJobs(
		engine,
		loc,
		cfg.Reconciliation.CloseOutHour,
		cfg.Reconciliation.BackstopHour,
		cfg.Reconciliation.CatchUpWindowDays,
	)

	// Catch up on missed close-outs before serving traffic or starting the
	// scheduler, so absence state is not stale while requests come in.
	if err := jobs.RunStartupCatchUp(context.Background()); err != nil {
		fmt.Println("Startup catch-up failed:", err)
	}

	scheduler := cron.NewScheduler()
	jobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceRepo, engine, cal)
	leaveHandler := appHTTP.NewLeaveHandler(balanceCalculator)

	router := appHTTP.NewRouter(JWTService, attendanceHandler, leaveHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
