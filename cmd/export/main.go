// Command export writes an operator review report for one gazette batch.
// Usage: go run ./cmd/export -publication 45 -out gazette-45.xlsx [-format csv]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"gazetted/internal/config"
	"gazetted/internal/export"
	"gazetted/internal/logging"
	"gazetted/internal/repository/postgres"
	s3storage "gazetted/internal/storage/s3"
)

func main() {
	publication := flag.String("publication", "", "gazette publication number")
	out := flag.String("out", "", "output file path")
	format := flag.String("format", "xlsx", "output format: xlsx or csv")
	flag.Parse()

	if *publication == "" || *out == "" {
		log.Fatal("both -publication and -out are required")
	}
	if *format != "xlsx" && *format != "csv" {
		log.Fatalf("unknown format %q", *format)
	}

	if err := run(*publication, *out, *format); err != nil {
		log.Fatal(err)
	}
}

func run(publication, out, format string) error {
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

	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("initializing S3 client: %w", err)
	}

	svc := export.NewService(postgres.NewDocumentRepo(db), postgres.NewTagRepo(db),
		s3Client, cfg.S3.Bucket, cfg.S3.PresignExpiry)

	var data []byte
	if format == "csv" {
		data, err = svc.BatchCSV(context.Background(), publication)
	} else {
		data, err = svc.BatchWorkbookXLSX(context.Background(), publication)
	}
	if err != nil {
		return fmt.Errorf("building %s report: %w", format, err)
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", out, len(data))
	return nil
}
