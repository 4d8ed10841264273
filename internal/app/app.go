package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/magtapp/image-service/config"
	"github.com/magtapp/image-service/internal/controller/restapi"
	"github.com/magtapp/image-service/internal/infrastructure/transform"
	"github.com/magtapp/image-service/internal/keys"
	"github.com/magtapp/image-service/internal/repo"
	"github.com/magtapp/image-service/internal/repo/persistent"
	"github.com/magtapp/image-service/internal/usecase/meaning"
	"github.com/magtapp/image-service/internal/usecase/upload"
	"github.com/magtapp/image-service/internal/validate"
	"github.com/magtapp/image-service/pkg/dynamoclient"
	"github.com/magtapp/image-service/pkg/httpserver"
	"github.com/magtapp/image-service/pkg/logger"
	"github.com/magtapp/image-service/pkg/postgres"
	"github.com/magtapp/image-service/pkg/s3client"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository

	// s3
	s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
	defer s3Cancel()
	s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey,
		s3client.Region(cfg.S3.Region))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
	}

	originalObjects := persistent.NewObjectRepo(s3c, cfg.S3.OriginalBucket, cfg.S3.Endpoint, cfg.S3.PublicBaseURL)
	compressedObjects := persistent.NewObjectRepo(s3c, cfg.S3.CompressedBucket, cfg.S3.Endpoint, cfg.S3.PublicBaseURL)

	// record store
	meaningRepo, closeRecord, err := newMeaningRepo(ctx, cfg)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - newMeaningRepo: %w", err))
	}
	defer closeRecord()

	// Use-Case

	// upload variants: original is stored as-is under flat keys, compressed
	// goes through the transform stage under reference-scoped keys
	uploadOriginal := upload.New(
		originalObjects,
		keys.NewFlat(),
		validate.CheckFileType,
		nil,
		l,
	)

	uploadCompressed := upload.New(
		compressedObjects,
		keys.NewRefScoped(),
		validate.CheckFileType,
		transform.New(cfg.Upload.ResizeWidth, cfg.Upload.ResizeHeight),
		l,
	)

	// meaning recorder variants, one table each
	meaningWord := meaning.New(meaningRepo, cfg.Record.WordTable, l)
	meaningCompressed := meaning.New(meaningRepo, cfg.Record.CompressedTable, l)

	// HTTP Server
	httpServer := httpserver.New(l,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.Prefork(cfg.HTTP.UsePreforkMode),
		httpserver.BodyLimit(int(cfg.Upload.MaxFileSize)),
	)
	restapi.NewRouter(httpServer.App, cfg, uploadOriginal, uploadCompressed, meaningWord, meaningCompressed, l)

	// Start
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}
}

func newMeaningRepo(ctx context.Context, cfg *config.Config) (repo.MeaningRepo, func(), error) {
	switch cfg.Record.Backend {
	case "postgres":
		if cfg.PG.URL == "" {
			return nil, nil, fmt.Errorf("newMeaningRepo: PG_URL is required for the postgres record backend")
		}

		pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
		if err != nil {
			return nil, nil, fmt.Errorf("newMeaningRepo - postgres.New: %w", err)
		}

		return persistent.NewMeaningPostgresRepo(pg), pg.Close, nil
	case "dynamo":
		dynamoCtx, dynamoCancel := context.WithTimeout(ctx, cfg.Record.CfgLoadTimeout)
		defer dynamoCancel()

		dc, err := dynamoclient.New(dynamoCtx, cfg.Record.DynamoEndpoint, cfg.S3.AccessKey, cfg.S3.SecretKey,
			dynamoclient.Region(cfg.Record.DynamoRegion))
		if err != nil {
			return nil, nil, fmt.Errorf("newMeaningRepo - dynamoclient.New: %w", err)
		}

		return persistent.NewMeaningDynamoRepo(dc), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("newMeaningRepo: unknown record backend %q", cfg.Record.Backend)
	}
}
