// Command ingest enqueues a gazette PDF for processing, or runs the pipeline
// synchronously with -sync for local debugging.
// Usage: go run ./cmd/ingest -doc 42 -pdf /path/to/gazette.pdf [-email op@example.com] [-name Operator] [-sync]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"gazetted/internal/config"
	"gazetted/internal/domain"
	"gazetted/internal/email/noop"
	"gazetted/internal/extract"
	"gazetted/internal/logging"
	"gazetted/internal/repository/postgres"
	"gazetted/internal/service"
	s3storage "gazetted/internal/storage/s3"
)

func main() {
	docID := flag.Int64("doc", 0, "parent gazette document id")
	pdfPath := flag.String("pdf", "", "absolute path to the gazette PDF")
	email := flag.String("email", "", "notification recipient email")
	name := flag.String("name", "", "notification recipient name")
	sync := flag.Bool("sync", false, "run the pipeline now instead of enqueueing")
	flag.Parse()

	if *docID == 0 || *pdfPath == "" {
		log.Fatal("both -doc and -pdf are required")
	}

	if err := run(*docID, *pdfPath, *email, *name, *sync); err != nil {
		log.Fatal(err)
	}
}

func run(docID int64, pdfPath, email, name string, sync bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := logging.Init(cfg.Log); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer logging.Sync()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if !sync {
		jobRepo := postgres.NewJobRepo(db)
		job := &domain.IngestJob{
			DocumentID:     docID,
			PDFPath:        pdfPath,
			RecipientEmail: email,
			RecipientName:  name,
		}
		if err := jobRepo.Enqueue(ctx, job); err != nil {
			return fmt.Errorf("enqueueing job: %w", err)
		}
		fmt.Printf("enqueued job %s for document %d\n", job.ID, docID)
		return nil
	}

	docRepo := postgres.NewDocumentRepo(db)
	typeRepo := postgres.NewDocumentTypeRepo(db)
	tagRepo := postgres.NewTagRepo(db)

	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("initializing S3 client: %w", err)
	}

	doc, err := docRepo.GetByID(ctx, docID)
	if err != nil {
		return fmt.Errorf("loading document %d: %w", docID, err)
	}

	runner := extract.NewExecRunner()
	tagging := service.NewTaggingService(tagRepo)
	materializer := service.NewMaterializer(docRepo, typeRepo, tagging, s3Client, cfg.S3.Bucket, cfg.Extractor.StorageRoot)
	pipeline := service.NewPipeline(
		docRepo,
		extract.NewSlicer(runner, &cfg.Extractor),
		extract.NewMetadataExtractor(runner, &cfg.Extractor),
		materializer,
		tagging,
		noop.NewNoopSender(),
		cfg.Job,
		cfg.Extractor.StorageRoot,
	)

	recipient := domain.Recipient{Email: email, Name: name}
	if err := pipeline.Process(ctx, doc, pdfPath, recipient); err != nil {
		return fmt.Errorf("processing document %d: %w", docID, err)
	}
	fmt.Printf("processed document %d\n", docID)
	return nil
}
