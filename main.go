package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/myfolio-api/api"
	"github.com/rpupo63/myfolio-api/config"
	"github.com/rpupo63/myfolio-api/database"
	"github.com/rpupo63/myfolio-api/models"
	"github.com/rpupo63/myfolio-api/storage"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		stop()
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run(ctx context.Context) error {
	boot, err := config.LoadBootstrap()
	if err != nil {
		return err
	}
	if boot.SSMParameterPath != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return fmt.Errorf("load AWS config for parameter store: %w", err)
		}
		applied, err := config.HydrateFromSSM(ctx, ssm.NewFromConfig(awsCfg), boot.SSMParameterPath)
		if err != nil {
			return fmt.Errorf("read parameter store: %w", err)
		}
		log.Info().Int("parameters", applied).Str("path", boot.SSMParameterPath).Msg("Loaded parameters from SSM")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	log.Info().Msg("Initializing app...")

	gormDB, err := database.Open(cfg.DSN(), cfg.DatabaseReplicaURLs)
	if err != nil {
		return err
	}
	db := database.New(gormDB)
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("Error closing database")
		}
	}()

	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("test database connection: %w", err)
	}

	// If generating column mismatch report, run report and exit
	if cfg.GenerateColumnReport {
		reports, err := models.ColumnMismatchReport(gormDB)
		if err != nil {
			return err
		}
		models.PrintColumnMismatchReport(reports)
		return nil
	}

	bucket, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	log.Info().Str("backend", bucket.Backend()).Str("bucket", bucket.Name()).Msg("Storage ready")

	server := api.NewServer(cfg, db, bucket)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Closing server")
		server.ShutdownGracefully(30 * time.Second)
		return nil
	})

	return g.Wait()
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == "console" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
}
