package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gazetted/internal/domain"
	"gazetted/internal/logging"
	"gazetted/internal/port"
)

// MaterializationOutcome reports how a slice batch materialized: how many
// section documents were created and which entries hit best-effort failures.
type MaterializationOutcome struct {
	Created int
	Errors  []string
}

// Materializer turns slice results into persistent section documents with
// tags, friendly URLs and uploaded attachments.
type Materializer struct {
	docRepo     port.DocumentRepository
	typeRepo    port.DocumentTypeRepository
	tagging     *TaggingService
	storage     port.ObjectStorage
	bucket      string
	storageRoot string
}

// NewMaterializer creates a new Materializer. storageRoot is the directory
// the slicer writes extracted section files under, one subdirectory per
// parent document id.
func NewMaterializer(
	docRepo port.DocumentRepository,
	typeRepo port.DocumentTypeRepository,
	tagging *TaggingService,
	storage port.ObjectStorage,
	bucket string,
	storageRoot string,
) *Materializer {
	return &Materializer{
		docRepo:     docRepo,
		typeRepo:    typeRepo,
		tagging:     tagging,
		storage:     storage,
		bucket:      bucket,
		storageRoot: storageRoot,
	}
}

// Materialize creates one section document per slice entry, in slicer order.
// A failure on one entry is recorded and does not abort its siblings.
func (m *Materializer) Materialize(ctx context.Context, parent *domain.Document, slice *port.SliceResult) *MaterializationOutcome {
	outcome := &MaterializationOutcome{}

	for i := range slice.Files {
		entry := &slice.Files[i]
		logging.Infof("materializer: creating section %q for document %d", entry.Name, parent.ID)

		doc, err := m.materializeEntry(ctx, parent, entry)
		if err != nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("section %q: %v", entry.Name, err))
			continue
		}
		outcome.Created++

		if err := m.attach(ctx, parent, doc, entry); err != nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("section %q: %v", entry.Name, err))
		}
	}

	for _, e := range slice.Errors {
		logging.Warnf("materializer: slicer reported: %s", e)
	}
	return outcome
}

func (m *Materializer) materializeEntry(ctx context.Context, parent *domain.Document, entry *port.SliceEntry) (*domain.Document, error) {
	var name, issueID, shortDescription, description string
	switch entry.Category {
	case domain.CategoryTrademarks:
		name = entry.Name
		shortDescription = fmt.Sprintf("This is the trademarks section of Gazette %s dated %s.",
			parent.PublicationNumber, parent.PublicationDateString())
	case domain.CategoryLegalNotices:
		name = entry.Name
		shortDescription = fmt.Sprintf("This is the legal notices section of Gazette %s dated %s.",
			parent.PublicationNumber, parent.PublicationDateString())
	default:
		issueID = entry.Name
		shortDescription = CleanText(entry.ShortDescription)
		description = CleanText(entry.Description)
	}

	typeID, err := m.typeRepo.IDByName(ctx, documentTypeFor(entry.Category))
	if err != nil {
		return nil, fmt.Errorf("resolving document type: %w", err)
	}

	doc := &domain.Document{
		Name:              name,
		IssueID:           issueID,
		PublicationNumber: parent.PublicationNumber,
		PublicationDate:   parent.PublicationDate,
		ShortDescription:  shortDescription,
		Description:       description,
		FullText:          CleanText(entry.FullText),
		DocumentTypeID:    typeID,
		StartPage:         entry.StartPage,
		EndPage:           entry.EndPage,
		Position:          entry.Position,
		Publish:           true,
	}
	if err := m.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating section document: %w", err)
	}

	m.applyTags(ctx, doc.ID, entry)

	doc.URL = doc.GenerateFriendlyURL()
	if err := m.docRepo.Update(ctx, doc); err != nil {
		return doc, fmt.Errorf("persisting section url: %w", err)
	}
	return doc, nil
}

// applyTags runs the fixed tag rules plus institution detection. Tag failures
// are logged, never fatal to the entry.
func (m *Materializer) applyTags(ctx context.Context, docID int64, entry *port.SliceEntry) {
	apply := func(name string) {
		if err := m.tagging.ApplyTag(ctx, docID, name); err != nil {
			logging.Errorf("materializer: tagging document %d with %q: %v", docID, name, err)
		}
	}
	applyIssuer := func(name string) {
		if err := m.tagging.ApplyIssuerTag(ctx, docID, name); err != nil {
			logging.Errorf("materializer: issuer-tagging document %d with %q: %v", docID, name, err)
		}
	}

	apply(entry.Tag)
	applyIssuer(entry.Issuer)
	apply(domain.TagGazette)
	if entry.Materia != "" {
		apply(entry.Materia)
	}

	switch entry.Category {
	case domain.CategoryTrademarks:
		applyIssuer(domain.IssuerVarious)
		apply(domain.TagTrademarks)
		apply(domain.TagCommercial)
		apply(domain.TagIntellectualProperty)
	case domain.CategoryLegalNotices:
		applyIssuer(domain.IssuerVarious)
		apply(domain.TagLegalNotices)
		apply(domain.TagTenders)
	}

	for _, institution := range entry.Institutions {
		apply(institution)
	}

	if err := m.tagging.DetectInstitutionTags(ctx, docID, entry.FullText); err != nil {
		logging.Errorf("materializer: institution detection on document %d: %v", docID, err)
	}
}

// attach uploads the section's extracted file as its attachment. The slicer
// reports paths relative to <storage root>/<parent id>/.
func (m *Materializer) attach(ctx context.Context, parent, doc *domain.Document, entry *port.SliceEntry) error {
	downloadName := doc.IssueID
	if downloadName == "" {
		downloadName = doc.Name
	}
	filename := downloadName + ".pdf"

	localPath := filepath.Join(m.storageRoot, strconv.FormatInt(parent.ID, 10), entry.Path)
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("opening attachment %s: %w", localPath, err)
	}
	defer f.Close()

	key := fmt.Sprintf("gazettes/%d/%s", parent.ID, filename)
	if _, err := m.storage.Upload(ctx, port.UploadInput{
		Bucket:      m.bucket,
		Key:         key,
		Body:        f,
		ContentType: "application/pdf",
	}); err != nil {
		return fmt.Errorf("uploading attachment %s: %w", filename, err)
	}

	doc.FileKey = key
	if err := m.docRepo.Update(ctx, doc); err != nil {
		// Remove the orphaned object rather than leave an attachment no
		// document points at.
		if delErr := m.storage.Delete(ctx, m.bucket, key); delErr != nil {
			logging.Errorf("materializer: deleting orphaned attachment %s: %v", key, delErr)
		}
		return fmt.Errorf("persisting attachment key: %w", err)
	}
	logging.Infof("materializer: uploaded %s for document %d", filename, doc.ID)
	return nil
}

func documentTypeFor(category domain.SectionCategory) string {
	if category == domain.CategoryIssue {
		return domain.DocumentTypeIssue
	}
	return domain.DocumentTypeSection
}
