package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-cms-backend/api"
	"github.com/rpupo63/portfolio-cms-backend/auth"
	"github.com/rpupo63/portfolio-cms-backend/config"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/services"
	"github.com/rpupo63/portfolio-cms-backend/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}
	setupLogger(*cfg)
	log.Info().Str("env", cfg.Environment).Msg("Initializing app...")

	db, err := database.Open(ctx, *cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if cfg.GenerateModels {
		log.Info().Msg("Generating models and query helpers...")
		models.GenerateModels(db)
		return
	}

	// If generating column mismatch report, run report and exit
	if cfg.GenerateColumnReport {
		log.Info().Msg("Generating column mismatch report...")
		models.GenerateColumnMismatchReport(db)
		return
	}

	if database.IsPostgres(db) {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
			log.Fatal().Err(err).Msg("Error enabling uuid-ossp extension")
		}
	}
	if err := models.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error migrating database")
	}

	currentDB := database.New(db)

	if cfg.InitPortfolio {
		if err := initPortfolio(ctx, *cfg, currentDB); err != nil {
			log.Fatal().Err(err).Msg("Error initializing portfolio data")
		}
	}

	store, err := storage.New(ctx, *cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing storage")
	}

	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing token manager")
	}
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET is empty, using a random key; tokens will not survive a restart")
	}

	notifier, err := services.NewNotifier(*cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing notifier")
	}
	log.Info().Strs("channels", notifier.Channels()).Msg("Contact notifications configured")

	var monitor *services.DemoMonitor
	if cfg.DemoMonitor.Enabled {
		monitor = services.NewDemoMonitor(currentDB.DemoRepo(), cfg.DemoMonitor, log.Logger)
		if err := monitor.Start(); err != nil {
			log.Fatal().Err(err).Msg("Error starting demo monitor")
		}
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(*cfg, api.Dependencies{
		Database: currentDB,
		Storage:  store,
		Tokens:   tokens,
		Notifier: notifier,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(cfg.HTTP.ShutdownTimeout)

	if monitor != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		monitor.Stop(stopCtx)
		cancel()
	}
}

func setupLogger(cfg config.AppConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// initPortfolio seeds the super admin and the default portfolio content.
func initPortfolio(ctx context.Context, cfg config.AppConfig, db database.Database) error {
	admin := database.SeedAdmin{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
	}
	if cfg.Admin.Password != "" {
		hash, err := auth.HashPassword(cfg.Admin.Password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		admin.PasswordHash = hash
	} else {
		log.Warn().Msg("ADMIN_PASSWORD is empty, skipping admin account")
	}

	if err := database.SeedPortfolio(ctx, db, admin); err != nil {
		return err
	}
	log.Info().Msg("Portfolio initialization complete")
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
