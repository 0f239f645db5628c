package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gbur-rwanda/gbur-backend/api"
	"github.com/gbur-rwanda/gbur-backend/cache"
	"github.com/gbur-rwanda/gbur-backend/config"
	"github.com/gbur-rwanda/gbur-backend/database"
	"github.com/gbur-rwanda/gbur-backend/models"
	"github.com/gbur-rwanda/gbur-backend/services"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.New()
	setupLogging(cfg)

	log.Info().Str("db_type", config.GetString(cfg, "DB_TYPE", "postgres")).Msg("Initializing app...")

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if config.GetBool(cfg, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		models.GenerateModels(db)
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(cfg, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		models.GenerateColumnMismatchReportStandalone(db)
		return
	}

	if err := models.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error migrating database")
	}

	if config.GetBool(cfg, "SEED_CATEGORIES", true) {
		inserted, err := models.SeedCategories(db)
		if err != nil {
			log.Error().Err(err).Msg("Error seeding blog categories")
		} else if inserted > 0 {
			log.Info().Int("inserted", inserted).Msg("Seeded blog categories")
		}
	}

	listCache, err := cache.New(
		config.GetString(cfg, "REDIS_URL", ""),
		config.GetString(cfg, "CACHE_PREFIX", "gbur:"),
		config.GetSeconds(cfg, "CACHE_TTL_SECONDS", 60*time.Second),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing cache")
	}
	defer listCache.Close()

	var notifier services.Notifier
	if resend := services.NewResendNotifier(cfg); resend != nil {
		notifier = resend
	} else {
		log.Warn().Msg("Resend is not configured; contact messages will not be e-mailed")
	}

	svc := services.New(database.New(db), listCache, notifier)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(svc, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

func setupLogging(cfg map[string]string) {
	level, err := zerolog.ParseLevel(config.GetString(cfg, "LOG_LEVEL", "info"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(cfg, "APP_ENV", "development") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
