package port

import (
	"context"

	"github.com/google/uuid"

	"gazetted/internal/domain"
)

// JobRepository defines the contract for ingest job queue persistence.
type JobRepository interface {
	Enqueue(ctx context.Context, job *domain.IngestJob) error
	// ClaimQueued atomically marks up to limit queued jobs as processing and
	// returns them. Concurrent workers never claim the same job twice.
	ClaimQueued(ctx context.Context, limit int) ([]domain.IngestJob, error)
	MarkCompleted(ctx context.Context, jobID uuid.UUID) error
	// MarkFailed requeues the job when attempts are left and dead-letters it
	// otherwise.
	MarkFailed(ctx context.Context, jobID uuid.UUID, lastError string, maxRetries int) error
	GetByID(ctx context.Context, jobID uuid.UUID) (*domain.IngestJob, error)
}
