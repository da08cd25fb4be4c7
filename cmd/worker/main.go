// Command worker runs the gazette ingestion worker: it polls the job queue
// and drives the extraction pipeline for each claimed gazette.
package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"gazetted/internal/config"
	"gazetted/internal/email/noop"
	"gazetted/internal/email/ses"
	"gazetted/internal/extract"
	"gazetted/internal/logging"
	"gazetted/internal/port"
	"gazetted/internal/repository/postgres"
	"gazetted/internal/service"
	s3storage "gazetted/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logging.Init(cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	docRepo := postgres.NewDocumentRepo(db)
	typeRepo := postgres.NewDocumentTypeRepo(db)
	tagRepo := postgres.NewTagRepo(db)
	jobRepo := postgres.NewJobRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize notification sender
	var sender port.EmailSender
	if cfg.Email.Provider == "ses" {
		sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		sender = noop.NewNoopSender()
	}

	// Initialize pipeline
	runner := extract.NewExecRunner()
	slicer := extract.NewSlicer(runner, &cfg.Extractor)
	metadata := extract.NewMetadataExtractor(runner, &cfg.Extractor)
	tagging := service.NewTaggingService(tagRepo)
	materializer := service.NewMaterializer(docRepo, typeRepo, tagging, s3Client, cfg.S3.Bucket, cfg.Extractor.StorageRoot)
	pipeline := service.NewPipeline(docRepo, slicer, metadata, materializer, tagging, sender, cfg.Job, cfg.Extractor.StorageRoot)

	worker := service.NewIngestQueueWorker(jobRepo, docRepo, pipeline, service.IngestQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
		JobTimeout:   cfg.Job.TimeoutDuration(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Infof("worker: starting gazette ingestion worker")
	worker.Start(ctx)
	return nil
}
