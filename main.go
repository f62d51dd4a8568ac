package main

import (
	"fmt"
	"os"
	"time"

	"report-backend/auth"
	"report-backend/config"
	"report-backend/httpapi"
	"report-backend/orm"
	"report-backend/report"
	"report-backend/storage"
	"report-backend/storage/filesystem"
	"report-backend/storage/s3"
	"report-backend/taxonomy"
	"report-backend/testimonial"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	initLogging()

	db := orm.InitDB()
	blobs := initializeBlobStorage()

	tokenExpiry, err := time.ParseDuration(config.Cfg.TokenExpiry)
	if err != nil {
		log.Warn().
			Str("token_expiry", config.Cfg.TokenExpiry).
			Msg("invalid token expiry, defaulting to 24h")
		tokenExpiry = 24 * time.Hour
	}

	router := httpapi.NewRouter(httpapi.Services{
		Auth:         auth.NewService(db, config.Cfg.JWTSecret, tokenExpiry),
		Reports:      report.NewService(db, blobs, config.Cfg.Storage.PublicBaseURL),
		Taxonomy:     taxonomy.NewService(db),
		Testimonials: testimonial.NewService(db),
		Users:        db,
	})

	addr := fmt.Sprintf(":%d", config.Cfg.Port)
	log.Info().Str("addr", addr).Msg("report backend listening")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func initLogging() {
	level, err := zerolog.ParseLevel(config.Cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if !config.Cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func initializeBlobStorage() storage.Storage {
	switch config.Cfg.Storage.Type {
	case config.StorageFilesystem:
		return initFilesystemStorage()
	case config.StorageS3:
		return initS3Storage()
	default:
		log.Warn().Msgf(
			"unknown storage type '%s', defaulting to filesystem",
			config.Cfg.Storage.Type,
		)

		return initFilesystemStorage()
	}
}

func initFilesystemStorage() storage.Storage {
	uploadDir := config.Cfg.Storage.UploadDir
	fsStorage, err := filesystem.New(uploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize filesystem storage")
	}
	log.Info().
		Str("upload_dir", uploadDir).
		Msg("filesystem storage initialized")

	return fsStorage
}

func initS3Storage() storage.Storage {
	s3Storage, err := s3.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize s3 storage")
	}
	log.Info().Msg("s3 storage initialized")

	return s3Storage
}
