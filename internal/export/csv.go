package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"gazetted/internal/domain"
	"gazetted/internal/logging"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var bom = []byte{0xEF, 0xBB, 0xBF}

// BatchCSV returns the batch report as BOM-prefixed CSV, one row per
// document, same columns as the XLSX workbook.
func (s *Service) BatchCSV(ctx context.Context, publicationNumber string) ([]byte, error) {
	docs, err := s.docRepo.ListByPublication(ctx, publicationNumber)
	if err != nil {
		return nil, fmt.Errorf("export.BatchCSV: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrNotFound
	}

	var buf bytes.Buffer
	buf.Write(bom)
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("export.BatchCSV: %w", err)
	}
	for i := range docs {
		doc := &docs[i]
		tags, err := s.tagRepo.ListByDocument(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("export.BatchCSV: %w", err)
		}
		issuers, err := s.tagRepo.ListIssuersByDocument(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("export.BatchCSV: %w", err)
		}
		link, err := s.attachmentLink(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("export.BatchCSV: %w", err)
		}

		row := []string{
			doc.Name,
			doc.IssueID,
			doc.PublicationNumber,
			doc.PublicationDateString(),
			strconv.Itoa(doc.StartPage),
			strconv.Itoa(doc.EndPage),
			strconv.Itoa(doc.Position),
			strconv.FormatBool(doc.Publish),
			doc.URL,
			joinNames(tags),
			joinNames(issuers),
			doc.FileKey,
			link,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export.BatchCSV: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export.BatchCSV: %w", err)
	}

	logging.Infof("export: built CSV for gazette %s (%d rows)", publicationNumber, len(docs))
	return buf.Bytes(), nil
}
