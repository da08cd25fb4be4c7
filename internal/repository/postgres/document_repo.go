package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gazetted/internal/domain"
	"gazetted/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO documents (
		name, issue_id, publication_number, publication_date,
		short_description, description, full_text, document_type_id,
		start_page, end_page, position, publish, url, source_path, file_key,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4,
		$5, $6, $7, $8,
		$9, $10, $11, $12, $13, $14, $15,
		$16, $17
	) RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		doc.Name, doc.IssueID, doc.PublicationNumber, doc.PublicationDate,
		doc.ShortDescription, doc.Description, doc.FullText, doc.DocumentTypeID,
		doc.StartPage, doc.EndPage, doc.Position, doc.Publish, doc.URL, doc.SourcePath, doc.FileKey,
		doc.CreatedAt, doc.UpdatedAt).Scan(&doc.ID)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc, "SELECT * FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()

	query := `UPDATE documents SET
		name = $1, issue_id = $2, publication_number = $3, publication_date = $4,
		short_description = $5, description = $6, full_text = $7, document_type_id = $8,
		start_page = $9, end_page = $10, position = $11, publish = $12,
		url = $13, source_path = $14, file_key = $15, updated_at = $16
	WHERE id = $17`

	result, err := r.db.ExecContext(ctx, query,
		doc.Name, doc.IssueID, doc.PublicationNumber, doc.PublicationDate,
		doc.ShortDescription, doc.Description, doc.FullText, doc.DocumentTypeID,
		doc.StartPage, doc.EndPage, doc.Position, doc.Publish,
		doc.URL, doc.SourcePath, doc.FileKey, doc.UpdatedAt, doc.ID)
	if err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *documentRepo) UpdateDescription(ctx context.Context, id int64, description string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE documents SET description = $1, updated_at = $2 WHERE id = $3",
		description, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateDescription: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *documentRepo) ListByPublication(ctx context.Context, publicationNumber string) ([]domain.Document, error) {
	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs,
		"SELECT * FROM documents WHERE publication_number = $1 ORDER BY position, id",
		publicationNumber)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListByPublication: %w", err)
	}
	return docs, nil
}
