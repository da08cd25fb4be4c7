// Package export produces operator review workbooks for gazette batches.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"gazetted/internal/domain"
	"gazetted/internal/logging"
	"gazetted/internal/port"
)

// Service assembles review reports from a gazette batch's documents and
// their tags. Attachment links are presigned against object storage.
type Service struct {
	docRepo       port.DocumentRepository
	tagRepo       port.TagRepository
	storage       port.ObjectStorage
	bucket        string
	presignExpiry int64
}

// NewService creates a new export Service. presignExpiry is the lifetime, in
// seconds, of the attachment links embedded in reports.
func NewService(docRepo port.DocumentRepository, tagRepo port.TagRepository, storage port.ObjectStorage, bucket string, presignExpiry int64) *Service {
	return &Service{
		docRepo:       docRepo,
		tagRepo:       tagRepo,
		storage:       storage,
		bucket:        bucket,
		presignExpiry: presignExpiry,
	}
}

// attachmentLink returns a presigned download URL for the document's
// attachment, or the empty string when it has none.
func (s *Service) attachmentLink(ctx context.Context, doc *domain.Document) (string, error) {
	if doc.FileKey == "" {
		return "", nil
	}
	return s.storage.GetPresignedURL(ctx, s.bucket, doc.FileKey, s.presignExpiry)
}

var headers = []string{
	"Name",
	"Issue ID",
	"Publication Number",
	"Publication Date",
	"Start Page",
	"End Page",
	"Position",
	"Published",
	"URL",
	"Tags",
	"Issuers",
	"Attachment Key",
	"Attachment Link",
}

// BatchWorkbookXLSX returns an XLSX workbook (as bytes) listing every
// document of the given publication number, in batch order.
func (s *Service) BatchWorkbookXLSX(ctx context.Context, publicationNumber string) ([]byte, error) {
	start := time.Now()

	docs, err := s.docRepo.ListByPublication(ctx, publicationNumber)
	if err != nil {
		return nil, fmt.Errorf("export.BatchWorkbookXLSX: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrNotFound
	}

	f := excelize.NewFile()
	const sheet = "Gazette Batch"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("export.BatchWorkbookXLSX: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for i := range docs {
		doc := &docs[i]
		tags, err := s.tagRepo.ListByDocument(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("export.BatchWorkbookXLSX: %w", err)
		}
		issuers, err := s.tagRepo.ListIssuersByDocument(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("export.BatchWorkbookXLSX: %w", err)
		}
		link, err := s.attachmentLink(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("export.BatchWorkbookXLSX: %w", err)
		}

		values := []any{
			doc.Name,
			doc.IssueID,
			doc.PublicationNumber,
			doc.PublicationDateString(),
			doc.StartPage,
			doc.EndPage,
			doc.Position,
			doc.Publish,
			doc.URL,
			joinNames(tags),
			joinNames(issuers),
			doc.FileKey,
			link,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export.BatchWorkbookXLSX: %w", err)
	}

	logging.Infof("export: built workbook for gazette %s (%d rows) in %s",
		publicationNumber, row-2, time.Since(start))
	return buf.Bytes(), nil
}

func joinNames(tags []domain.Tag) string {
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += ", "
		}
		out += t.Name
	}
	return out
}
