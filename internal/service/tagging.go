package service

import (
	"context"
	"errors"
	"fmt"

	"gazetted/internal/domain"
	"gazetted/internal/logging"
	"gazetted/internal/port"
)

// TaggingService applies tag associations to documents. All apply operations
// are idempotent per (document, tag) pair and silently skip names that do not
// exist in the tag table.
type TaggingService struct {
	tagRepo port.TagRepository
}

// NewTaggingService creates a new TaggingService.
func NewTaggingService(tagRepo port.TagRepository) *TaggingService {
	return &TaggingService{tagRepo: tagRepo}
}

// ApplyTag associates the named general tag with the document. Empty or
// unknown names are no-ops.
func (s *TaggingService) ApplyTag(ctx context.Context, documentID int64, tagName string) error {
	if tagName == "" {
		return nil
	}
	tag, err := s.tagRepo.FindByName(ctx, tagName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("taggingService.ApplyTag: %w", err)
	}

	exists, err := s.tagRepo.TagExists(ctx, documentID, tag.ID)
	if err != nil {
		return fmt.Errorf("taggingService.ApplyTag: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.tagRepo.CreateDocumentTag(ctx, documentID, tag.ID); err != nil {
		return fmt.Errorf("taggingService.ApplyTag: %w", err)
	}
	return nil
}

// ApplyIssuerTag attributes the document to the named issuing body. Empty or
// unknown names are no-ops.
func (s *TaggingService) ApplyIssuerTag(ctx context.Context, documentID int64, issuerName string) error {
	if issuerName == "" {
		return nil
	}
	tag, err := s.tagRepo.FindByName(ctx, issuerName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("taggingService.ApplyIssuerTag: %w", err)
	}

	exists, err := s.tagRepo.IssuerTagExists(ctx, documentID, tag.ID)
	if err != nil {
		return fmt.Errorf("taggingService.ApplyIssuerTag: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.tagRepo.CreateIssuerDocumentTag(ctx, documentID, tag.ID); err != nil {
		return fmt.Errorf("taggingService.ApplyIssuerTag: %w", err)
	}
	return nil
}

// DetectInstitutionTags scans the full text for every alternative tag name
// and idempotently tags the document with each canonical tag whose alternate
// appears as a whole word.
func (s *TaggingService) DetectInstitutionTags(ctx context.Context, documentID int64, fullText string) error {
	alternatives, err := s.tagRepo.ListAlternativeNames(ctx)
	if err != nil {
		return fmt.Errorf("taggingService.DetectInstitutionTags: %w", err)
	}

	for _, alt := range alternatives {
		if !IsWordInText(alt.AlternativeName, fullText) {
			continue
		}
		exists, err := s.tagRepo.TagExists(ctx, documentID, alt.TagID)
		if err != nil {
			return fmt.Errorf("taggingService.DetectInstitutionTags: %w", err)
		}
		if exists {
			continue
		}
		if err := s.tagRepo.CreateDocumentTag(ctx, documentID, alt.TagID); err != nil {
			return fmt.Errorf("taggingService.DetectInstitutionTags: %w", err)
		}
		logging.Debugf("taggingService: detected institution %q on document %d", alt.AlternativeName, documentID)
	}
	return nil
}
