package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"timeo/internal/config"
	"timeo/internal/dates"
	"timeo/internal/db"
	"timeo/internal/handler"
	"timeo/internal/repository"
	"timeo/internal/router"
	"timeo/internal/service"
	"timeo/internal/streak"
	"timeo/internal/worker"
)

func main() {
	cfg := config.Load()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	clock := dates.SystemClock{}

	projectRepo := repository.NewProjectRepository(database)
	entryRepo := repository.NewTimeEntryRepository(database)
	goalRepo := repository.NewGoalRepository(database)
	statusRepo := repository.NewDayStatusRepository(database, cfg.Location)

	engine := streak.New(goalRepo, entryRepo, statusRepo, clock, cfg.Location).
		WithDaysBack(cfg.StreakDays)

	projectService := service.NewProjectService(projectRepo, clock)
	timerService := service.NewTimerService(entryRepo, projectRepo, goalRepo, engine, clock, cfg.Location)
	goalService := service.NewGoalService(goalRepo, projectRepo, statusRepo, engine, clock)
	reviewService := service.NewReviewService(entryRepo, projectRepo, goalRepo, engine, clock, cfg.Location)

	r := router.New(
		handler.NewProjectHandler(projectService),
		handler.NewTimerHandler(timerService),
		handler.NewGoalHandler(goalService),
		handler.NewReviewHandler(reviewService),
		cfg.CORSOrigins,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.RefreshInterval > 0 {
		refresher := &worker.Refresher{Engine: engine, Interval: cfg.RefreshInterval}
		go refresher.Run(ctx)
		log.Printf("today refresher running every %s", cfg.RefreshInterval)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("backend listening on :%s (timezone %s, streak horizon %d days)", cfg.Port, cfg.Location, engine.DaysBack())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("run server: %v", err)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
