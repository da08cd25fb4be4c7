package service

import (
	"context"
	"sync"
	"time"

	"gazetted/internal/domain"
	"gazetted/internal/logging"
	"gazetted/internal/port"
)

// IngestQueueConfig holds settings for the ingest queue worker.
type IngestQueueConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
	JobTimeout   time.Duration
}

// IngestQueueWorker polls for queued gazette jobs and dispatches them to the
// pipeline. Delivery is at-least-once with a bounded retry count; jobs that
// exhaust their retries land in the dead queue for manual inspection.
type IngestQueueWorker struct {
	jobRepo  port.JobRepository
	docRepo  port.DocumentRepository
	pipeline *Pipeline
	cfg      IngestQueueConfig
	wg       sync.WaitGroup
}

// NewIngestQueueWorker creates a new IngestQueueWorker.
func NewIngestQueueWorker(jobRepo port.JobRepository, docRepo port.DocumentRepository, pipeline *Pipeline, cfg IngestQueueConfig) *IngestQueueWorker {
	return &IngestQueueWorker{
		jobRepo:  jobRepo,
		docRepo:  docRepo,
		pipeline: pipeline,
		cfg:      cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight jobs have finished.
func (w *IngestQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	logging.Infof("ingestQueueWorker: started (poll=%s, concurrency=%d, maxRetries=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRetries)

	for {
		select {
		case <-ctx.Done():
			logging.Infof("ingestQueueWorker: shutting down, waiting for in-flight jobs...")
			w.wg.Wait()
			logging.Infof("ingestQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			jobs, err := w.jobRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					// Context canceled during poll, exit gracefully
					continue
				}
				logging.Errorf("ingestQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range jobs {
				job := jobs[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight jobs complete even during shutdown. The
					// margin covers post-timeout persistence.
					jobCtx, cancel := context.WithTimeout(context.Background(), w.cfg.JobTimeout+2*time.Minute)
					defer cancel()

					logging.Infof("ingestQueueWorker: dispatching job %s for document %d (attempt %d)",
						job.ID, job.DocumentID, job.Attempts)
					w.runJob(jobCtx, &job)
				}()
			}
		}
	}
}

func (w *IngestQueueWorker) runJob(ctx context.Context, job *domain.IngestJob) {
	doc, err := w.docRepo.GetByID(ctx, job.DocumentID)
	if err != nil {
		logging.Errorf("ingestQueueWorker: loading document %d for job %s: %v", job.DocumentID, job.ID, err)
		w.fail(ctx, job, err.Error())
		return
	}

	recipient := domain.Recipient{Email: job.RecipientEmail, Name: job.RecipientName}
	if err := w.pipeline.Process(ctx, doc, job.PDFPath, recipient); err != nil {
		w.fail(ctx, job, err.Error())
		return
	}

	if err := w.jobRepo.MarkCompleted(ctx, job.ID); err != nil {
		logging.Errorf("ingestQueueWorker: marking job %s completed: %v", job.ID, err)
	}
}

func (w *IngestQueueWorker) fail(ctx context.Context, job *domain.IngestJob, reason string) {
	if err := w.jobRepo.MarkFailed(ctx, job.ID, reason, w.cfg.MaxRetries); err != nil {
		logging.Errorf("ingestQueueWorker: marking job %s failed: %v", job.ID, err)
	}
}
