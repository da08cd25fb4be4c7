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

type tagRepo struct {
	db *sqlx.DB
}

// NewTagRepo creates a new PostgreSQL-backed TagRepository.
func NewTagRepo(db *sqlx.DB) port.TagRepository {
	return &tagRepo{db: db}
}

func (r *tagRepo) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.GetContext(ctx, &tag, "SELECT * FROM tags WHERE name = $1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("tagRepo.FindByName: %w", err)
	}
	return &tag, nil
}

func (r *tagRepo) TagExists(ctx context.Context, documentID, tagID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM document_tags WHERE document_id = $1 AND tag_id = $2)",
		documentID, tagID)
	if err != nil {
		return false, fmt.Errorf("tagRepo.TagExists: %w", err)
	}
	return exists, nil
}

func (r *tagRepo) CreateDocumentTag(ctx context.Context, documentID, tagID int64) error {
	// ON CONFLICT keeps the (document, tag) pair unique even when two
	// detection passes race.
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO document_tags (document_id, tag_id, created_at)
		 VALUES ($1, $2, $3) ON CONFLICT (document_id, tag_id) DO NOTHING`,
		documentID, tagID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("tagRepo.CreateDocumentTag: %w", err)
	}
	return nil
}

func (r *tagRepo) IssuerTagExists(ctx context.Context, documentID, tagID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM issuer_document_tags WHERE document_id = $1 AND tag_id = $2)",
		documentID, tagID)
	if err != nil {
		return false, fmt.Errorf("tagRepo.IssuerTagExists: %w", err)
	}
	return exists, nil
}

func (r *tagRepo) CreateIssuerDocumentTag(ctx context.Context, documentID, tagID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO issuer_document_tags (document_id, tag_id, created_at)
		 VALUES ($1, $2, $3) ON CONFLICT (document_id, tag_id) DO NOTHING`,
		documentID, tagID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("tagRepo.CreateIssuerDocumentTag: %w", err)
	}
	return nil
}

func (r *tagRepo) ListAlternativeNames(ctx context.Context) ([]domain.AlternativeTagName, error) {
	var names []domain.AlternativeTagName
	err := r.db.SelectContext(ctx, &names,
		"SELECT * FROM alternative_tag_names ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("tagRepo.ListAlternativeNames: %w", err)
	}
	return names, nil
}

func (r *tagRepo) ListByDocument(ctx context.Context, documentID int64) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.SelectContext(ctx, &tags,
		`SELECT t.* FROM tags t
		 INNER JOIN document_tags dt ON dt.tag_id = t.id
		 WHERE dt.document_id = $1 ORDER BY t.name`,
		documentID)
	if err != nil {
		return nil, fmt.Errorf("tagRepo.ListByDocument: %w", err)
	}
	return tags, nil
}

func (r *tagRepo) ListIssuersByDocument(ctx context.Context, documentID int64) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.SelectContext(ctx, &tags,
		`SELECT t.* FROM tags t
		 INNER JOIN issuer_document_tags idt ON idt.tag_id = t.id
		 WHERE idt.document_id = $1 ORDER BY t.name`,
		documentID)
	if err != nil {
		return nil, fmt.Errorf("tagRepo.ListIssuersByDocument: %w", err)
	}
	return tags, nil
}
