package service

import (
	"context"
	"fmt"
	"time"

	"gazetted/internal/config"
	"gazetted/internal/domain"
	"gazetted/internal/logging"
	"gazetted/internal/port"
)

// Pipeline orchestrates one gazette ingestion run: slicing, metadata
// extraction, materialization and the outcome notification. Recoverable
// failures degrade into persisted document state plus an error notification;
// only the whole-job timeout propagates to the retry machinery.
type Pipeline struct {
	docRepo      port.DocumentRepository
	slicer       port.GazetteSlicer
	metadata     port.MetadataExtractor
	materializer *Materializer
	tagging      *TaggingService
	email        port.EmailSender
	jobCfg       config.JobConfig
	storageRoot  string
}

// NewPipeline creates a new ingestion Pipeline. The email sender must never
// be nil; use the noop implementation when notifications are not configured.
func NewPipeline(
	docRepo port.DocumentRepository,
	slicer port.GazetteSlicer,
	metadata port.MetadataExtractor,
	materializer *Materializer,
	tagging *TaggingService,
	email port.EmailSender,
	jobCfg config.JobConfig,
	storageRoot string,
) *Pipeline {
	return &Pipeline{
		docRepo:      docRepo,
		slicer:       slicer,
		metadata:     metadata,
		materializer: materializer,
		tagging:      tagging,
		email:        email,
		jobCfg:       jobCfg,
		storageRoot:  storageRoot,
	}
}

// Process runs the full pipeline for one gazette document under the
// whole-job timeout. The returned error is non-nil only for fatal outcomes
// (the outer timeout); every other failure is absorbed into document state
// and notifications.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document, pdfPath string, recipient domain.Recipient) error {
	logging.Infof("pipeline: starting ingestion for document %d (%s)", doc.ID, pdfPath)

	runCtx, cancel := context.WithTimeout(ctx, p.jobCfg.TimeoutDuration())
	defer cancel()

	if err := p.run(runCtx, doc, pdfPath, recipient); err != nil {
		// The run context is spent; persist and notify on a fresh one.
		cleanupCtx, cleanupCancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cleanupCancel()

		desc := fmt.Sprintf("Error: document processing timed out after %s", p.jobCfg.TimeoutDuration())
		if persistErr := p.docRepo.UpdateDescription(cleanupCtx, doc.ID, desc); persistErr != nil {
			logging.Errorf("pipeline: persisting timeout description for document %d: %v", doc.ID, persistErr)
		}
		p.notify(cleanupCtx, recipient, p.editLink(doc.ID), domain.ProcessStatusError)

		logging.Errorf("pipeline: document %d failed fatally: %v", doc.ID, err)
		return err
	}

	logging.Infof("pipeline: completed ingestion for document %d", doc.ID)
	return nil
}

func (p *Pipeline) run(ctx context.Context, doc *domain.Document, pdfPath string, recipient domain.Recipient) error {
	// Step 1: slice the gazette. Failures degrade to the safe empty default
	// so the remainder of the pipeline still runs.
	slice, err := p.slicer.Slice(ctx, pdfPath, p.storageRoot, doc.ID)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("slicing gazette: %w", ctx.Err())
		}
		logging.Errorf("pipeline: slicing document %d: %v", doc.ID, err)
		p.persistFailure(ctx, doc, fmt.Sprintf("Error: gazette slicing failed - %s", err))
		p.notify(ctx, recipient, p.editLink(doc.ID), domain.ProcessStatusError)
		slice = port.EmptySliceResult()
	}

	// Step 2: extract and apply gazette metadata.
	meta, err := p.metadata.Extract(ctx, pdfPath)
	switch {
	case err != nil && ctx.Err() == context.DeadlineExceeded:
		return fmt.Errorf("extracting gazette metadata: %w", ctx.Err())
	case err != nil:
		logging.Errorf("pipeline: metadata extraction for document %d: %v", doc.ID, err)
		p.persistFailure(ctx, doc, fmt.Sprintf("Error: gazette metadata extraction failed - %s", err))
		p.notify(ctx, recipient, p.editLink(doc.ID), domain.ProcessStatusError)
		if !p.jobCfg.ContinueOnMetadataFailure {
			logging.Warnf("pipeline: aborting document %d after metadata failure (continue_on_metadata_failure=false)", doc.ID)
			return nil
		}
		// Materialization proceeds under the parent's prior metadata.
	default:
		if applyErr := p.applyMetadata(ctx, doc, meta); applyErr != nil {
			logging.Errorf("pipeline: applying metadata to document %d: %v", doc.ID, applyErr)
		}
	}

	// Step 3: page range and friendly URL from the slice result.
	doc.StartPage = 0
	doc.EndPage = 0
	if slice.PageCount > 0 {
		doc.EndPage = slice.PageCount - 1
	}
	doc.URL = doc.GenerateFriendlyURL()
	if err := p.docRepo.Update(ctx, doc); err != nil {
		logging.Errorf("pipeline: persisting page range for document %d: %v", doc.ID, err)
	}

	// Step 4: materialize sections and decide the final status.
	status := domain.ProcessStatusWarning
	if len(slice.Files) > 0 {
		outcome := p.materializer.Materialize(ctx, doc, slice)
		for _, e := range outcome.Errors {
			logging.Warnf("pipeline: document %d materialization: %s", doc.ID, e)
		}
		logging.Infof("pipeline: created %d section documents for document %d", outcome.Created, doc.ID)
		status = domain.ProcessStatusSuccess
	} else {
		logging.Warnf("pipeline: no sections extracted for document %d", doc.ID)
	}

	p.notify(ctx, recipient, p.reviewLink(doc.PublicationNumber), status)
	return nil
}

// applyMetadata overwrites the parent document with extracted gazette
// metadata and applies its fixed tags. The description is cleared: it only
// carries failure summaries.
func (p *Pipeline) applyMetadata(ctx context.Context, doc *domain.Document, meta *port.MetadataResult) error {
	date, err := time.Parse("2006-01-02", meta.Date)
	if err != nil {
		return fmt.Errorf("parsing gazette date %q: %w", meta.Date, err)
	}

	doc.Name = domain.GazetteName
	doc.PublicationNumber = meta.Number
	doc.PublicationDate = &date
	doc.ShortDescription = fmt.Sprintf("This is gazette number %s dated %s.", meta.Number, meta.Date)
	doc.Description = ""
	doc.IssueID = meta.Number
	doc.URL = doc.GenerateFriendlyURL()
	if err := p.docRepo.Update(ctx, doc); err != nil {
		return fmt.Errorf("persisting gazette metadata: %w", err)
	}

	if err := p.tagging.ApplyIssuerTag(ctx, doc.ID, domain.IssuerGazetteAuthority); err != nil {
		logging.Errorf("pipeline: issuer-tagging document %d: %v", doc.ID, err)
	}
	if err := p.tagging.ApplyTag(ctx, doc.ID, domain.TagGazette); err != nil {
		logging.Errorf("pipeline: tagging document %d: %v", doc.ID, err)
	}
	return nil
}

func (p *Pipeline) persistFailure(ctx context.Context, doc *domain.Document, description string) {
	doc.Description = description
	if err := p.docRepo.UpdateDescription(ctx, doc.ID, description); err != nil {
		logging.Errorf("pipeline: persisting failure description for document %d: %v", doc.ID, err)
	}
}

// notify delivers a status notification. Delivery is best-effort; failures
// are logged and never affect the pipeline outcome.
func (p *Pipeline) notify(ctx context.Context, recipient domain.Recipient, link string, status domain.ProcessStatus) {
	if recipient.Email == "" {
		logging.Debugf("pipeline: no notification recipient, skipping %s notification", status)
		return
	}
	if err := p.email.SendProcessingCompleteEmail(ctx, recipient.Email, recipient.Name, link, status); err != nil {
		logging.Errorf("pipeline: sending %s notification to %s: %v", status, recipient.Email, err)
	}
}

func (p *Pipeline) editLink(documentID int64) string {
	return fmt.Sprintf("%s/documents/%d/edit", p.jobCfg.FrontendURL, documentID)
}

func (p *Pipeline) reviewLink(publicationNumber string) string {
	return fmt.Sprintf("%s/admin/gazettes/%s", p.jobCfg.FrontendURL, publicationNumber)
}
