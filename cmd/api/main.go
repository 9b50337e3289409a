package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/prepwise/prepwise_api/configs"
	"github.com/prepwise/prepwise_api/database"
	"github.com/prepwise/prepwise_api/jobs"
	"github.com/prepwise/prepwise_api/repository"
	"github.com/prepwise/prepwise_api/repository/memory"
	"github.com/prepwise/prepwise_api/server"
	"github.com/prepwise/prepwise_api/storage"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func setupLogger(production bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	if production {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
}

func openStore(cfg *config.AppConfig) (storage.FileStore, string) {
	if cfg.CloudinaryURL != "" {
		store, err := storage.NewCloudinaryStore(cfg.CloudinaryURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialise cloudinary")
		}
		log.Info().Msg("notes are stored on cloudinary")
		return store, ""
	}
	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare upload directory")
	}
	log.Info().Str("root", store.Root()).Msg("notes are stored on local disk")
	return store, store.Root()
}

func main() {
	cfg := config.Load()
	setupLogger(cfg.IsProduction())

	var (
		repos   repository.Repositories
		monitor *database.Monitor
		db      *gorm.DB
	)
	scheduler := cron.New()

	switch cfg.DBDriver {
	case "memory":
		log.Warn().Msg("using in-memory storage; data is lost on restart")
		repos = memory.New().Repositories()
	default:
		var err error
		db, err = database.Connect(cfg.DatabaseURL, cfg.IsProduction())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		if err := database.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
		repos = repository.NewGormRepositories(db)
		monitor = database.NewMonitor(database.Pinger(db), nil)
		if _, err := jobs.ScheduleDBHealth(scheduler, cfg.DBHealthSchedule, monitor); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.DBHealthSchedule).Msg("invalid database health schedule")
		}
	}
	scheduler.Start()

	files, uploadRoot := openStore(cfg)
	app, err := server.New(cfg, server.Deps{
		Repos:      repos,
		Files:      files,
		Monitor:    monitor,
		UploadRoot: uploadRoot,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server running")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	<-scheduler.Stop().Done()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if db != nil {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}
}
