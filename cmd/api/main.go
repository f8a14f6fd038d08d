package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/dawamhq/attendance-engine-go/internal/config"
	appHTTP "github.com/dawamhq/attendance-engine-go/internal/handler/http"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/cron"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/database"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/jwt"
	"github.com/dawamhq/attendance-engine-go/internal/repository/postgresql"
	attendanceService "github.com/dawamhq/attendance-engine-go/internal/service/attendance"
	datasetService "github.com/dawamhq/attendance-engine-go/internal/service/dataset"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	employeeRepo := postgresql.NewEmployeeRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	ruleRepo := postgresql.NewRuleRepository(db)
	adjustmentRepo := postgresql.NewAdjustmentRepository(db)
	effectRepo := postgresql.NewEffectRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	engineCfg := attendanceService.DefaultConfig()
	engineCfg.TimezoneOffsetMinutes = cfg.Engine.TimezoneOffsetMinutes
	engineCfg.GraceMinutes = cfg.Engine.GraceMinutes
	engineCfg.DefaultPermissionMinutes = cfg.Engine.DefaultPermissionMinutes
	engineCfg.DefaultHalfDayMinutes = cfg.Engine.DefaultHalfDayMinutes
	engine := attendanceService.NewEngine(engineCfg)

	attendanceSvc := attendanceService.NewService(
		engine,
		logger,
		employeeRepo,
		punchRepo,
		ruleRepo,
		adjustmentRepo,
		effectRepo,
		leaveRepo,
		holidayRepo,
		recordRepo,
	)
	datasetSvc := datasetService.NewService(
		logger,
		employeeRepo,
		punchRepo,
		ruleRepo,
		adjustmentRepo,
		effectRepo,
		leaveRepo,
		holidayRepo,
	)

	scheduler := cron.NewScheduler(logger)
	cron.NewAttendanceJobs(attendanceSvc, cfg.Engine.TimezoneOffsetMinutes).Register(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(jwtService, cfg.JWT.ClientID, cfg.JWT.ClientSecret)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	datasetHandler := appHTTP.NewDatasetHandler(datasetSvc)

	router := appHTTP.NewRouter(jwtService, authHandler, attendanceHandler, datasetHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("starting server", slog.String("addr", addr), slog.String("env", cfg.App.Env))
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
	}
}
