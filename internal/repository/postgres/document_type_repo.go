package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"gazetted/internal/domain"
	"gazetted/internal/port"
)

type documentTypeRepo struct {
	db *sqlx.DB

	mu    sync.RWMutex
	cache map[string]int64
}

// NewDocumentTypeRepo creates a DocumentTypeRepository with an in-process
// name-to-id cache. Document types are seeded by migration and never change
// at runtime.
func NewDocumentTypeRepo(db *sqlx.DB) port.DocumentTypeRepository {
	return &documentTypeRepo{db: db, cache: make(map[string]int64)}
}

func (r *documentTypeRepo) IDByName(ctx context.Context, name string) (int64, error) {
	r.mu.RLock()
	id, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return id, nil
	}

	err := r.db.GetContext(ctx, &id, "SELECT id FROM document_types WHERE name = $1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrUnknownType
		}
		return 0, fmt.Errorf("documentTypeRepo.IDByName: %w", err)
	}

	r.mu.Lock()
	r.cache[name] = id
	r.mu.Unlock()
	return id, nil
}
