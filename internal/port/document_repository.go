package port

import (
	"context"

	"gazetted/internal/domain"
)

// DocumentRepository defines the contract for document persistence.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	Update(ctx context.Context, doc *domain.Document) error
	UpdateDescription(ctx context.Context, id int64, description string) error
	ListByPublication(ctx context.Context, publicationNumber string) ([]domain.Document, error)
}

// DocumentTypeRepository resolves seeded document types by name.
type DocumentTypeRepository interface {
	IDByName(ctx context.Context, name string) (int64, error)
}

// TagRepository defines the contract for tags and their document associations.
type TagRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Tag, error)
	TagExists(ctx context.Context, documentID, tagID int64) (bool, error)
	CreateDocumentTag(ctx context.Context, documentID, tagID int64) error
	IssuerTagExists(ctx context.Context, documentID, tagID int64) (bool, error)
	CreateIssuerDocumentTag(ctx context.Context, documentID, tagID int64) error
	ListAlternativeNames(ctx context.Context) ([]domain.AlternativeTagName, error)
	ListByDocument(ctx context.Context, documentID int64) ([]domain.Tag, error)
	ListIssuersByDocument(ctx context.Context, documentID int64) ([]domain.Tag, error)
}
