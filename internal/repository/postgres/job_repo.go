package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gazetted/internal/domain"
	"gazetted/internal/port"
)

type jobRepo struct {
	db *sqlx.DB
}

// NewJobRepo creates a new PostgreSQL-backed JobRepository.
func NewJobRepo(db *sqlx.DB) port.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Enqueue(ctx context.Context, job *domain.IngestJob) error {
	now := time.Now().UTC()
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.Status = domain.JobStatusQueued
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO gazette_jobs (
			id, document_id, pdf_path, recipient_email, recipient_name,
			status, attempts, last_error, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, 0, '', $7, $8)`,
		job.ID, job.DocumentID, job.PDFPath, job.RecipientEmail, job.RecipientName,
		job.Status, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("jobRepo.Enqueue: %w", err)
	}
	return nil
}

func (r *jobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.IngestJob, error) {
	var jobs []domain.IngestJob
	// SKIP LOCKED keeps concurrent workers from claiming the same job.
	err := r.db.SelectContext(ctx, &jobs,
		`UPDATE gazette_jobs SET
			status = 'processing',
			attempts = attempts + 1,
			started_at = NOW(),
			updated_at = NOW()
		 WHERE id IN (
			SELECT id FROM gazette_jobs
			WHERE status = 'queued'
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("jobRepo.ClaimQueued: %w", err)
	}
	return jobs, nil
}

func (r *jobRepo) MarkCompleted(ctx context.Context, jobID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE gazette_jobs SET status = 'completed', last_error = '',
			finished_at = NOW(), updated_at = NOW()
		 WHERE id = $1`,
		jobID)
	if err != nil {
		return fmt.Errorf("jobRepo.MarkCompleted: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) MarkFailed(ctx context.Context, jobID uuid.UUID, lastError string, maxRetries int) error {
	// A job gets maxRetries extra attempts after its first run; beyond that
	// it moves to the dead queue for manual inspection.
	result, err := r.db.ExecContext(ctx,
		`UPDATE gazette_jobs SET
			status = CASE WHEN attempts > $2 THEN 'dead' ELSE 'queued' END,
			last_error = $3,
			finished_at = CASE WHEN attempts > $2 THEN NOW() ELSE NULL END,
			updated_at = NOW()
		 WHERE id = $1`,
		jobID, maxRetries, lastError)
	if err != nil {
		return fmt.Errorf("jobRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*domain.IngestJob, error) {
	var job domain.IngestJob
	err := r.db.GetContext(ctx, &job, "SELECT * FROM gazette_jobs WHERE id = $1", jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("jobRepo.GetByID: %w", err)
	}
	return &job, nil
}
