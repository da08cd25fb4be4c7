package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document represents a gazette or one of its extracted sections. A parent
// gazette carries the fixed name "Gazette"; a section carries either a fixed
// category name or an issue identifier, never both.
type Document struct {
	ID                int64      `db:"id" json:"id"`
	Name              string     `db:"name" json:"name"`
	IssueID           string     `db:"issue_id" json:"issue_id"`
	PublicationNumber string     `db:"publication_number" json:"publication_number"`
	PublicationDate   *time.Time `db:"publication_date" json:"publication_date"`
	ShortDescription  string     `db:"short_description" json:"short_description"`
	Description       string     `db:"description" json:"description"`
	FullText          string     `db:"full_text" json:"full_text"`
	DocumentTypeID    int64      `db:"document_type_id" json:"document_type_id"`
	StartPage         int        `db:"start_page" json:"start_page"`
	EndPage           int        `db:"end_page" json:"end_page"`
	Position          int        `db:"position" json:"position"`
	Publish           bool       `db:"publish" json:"publish"`
	URL               string     `db:"url" json:"url"`
	SourcePath        string     `db:"source_path" json:"source_path"`
	FileKey           string     `db:"file_key" json:"file_key"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// PublicationDateString renders the publication date as it appears in
// generated descriptions, or the empty string when unset.
func (d *Document) PublicationDateString() string {
	if d.PublicationDate == nil {
		return ""
	}
	return d.PublicationDate.Format("2006-01-02")
}

// DocumentType is a seeded lookup row distinguishing parent gazettes from
// their sections.
type DocumentType struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Tag is a named label documents can be associated with.
type Tag struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DocumentTag associates a general tag with a document. The (document, tag)
// pair is unique.
type DocumentTag struct {
	ID         int64     `db:"id" json:"id"`
	DocumentID int64     `db:"document_id" json:"document_id"`
	TagID      int64     `db:"tag_id" json:"tag_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// IssuerDocumentTag attributes a document to an issuing body. Parallel to
// DocumentTag, same uniqueness rule.
type IssuerDocumentTag struct {
	ID         int64     `db:"id" json:"id"`
	DocumentID int64     `db:"document_id" json:"document_id"`
	TagID      int64     `db:"tag_id" json:"tag_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AlternativeTagName maps an alternate surface string to a canonical tag.
// Read-only from the pipeline's perspective; used by institution detection.
type AlternativeTagName struct {
	ID              int64  `db:"id" json:"id"`
	TagID           int64  `db:"tag_id" json:"tag_id"`
	AlternativeName string `db:"alternative_name" json:"alternative_name"`
}

// IngestJob is one queued gazette ingestion run.
type IngestJob struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	DocumentID     int64      `db:"document_id" json:"document_id"`
	PDFPath        string     `db:"pdf_path" json:"pdf_path"`
	RecipientEmail string     `db:"recipient_email" json:"recipient_email"`
	RecipientName  string     `db:"recipient_name" json:"recipient_name"`
	Status         JobStatus  `db:"status" json:"status"`
	Attempts       int        `db:"attempts" json:"attempts"`
	LastError      string     `db:"last_error" json:"last_error"`
	StartedAt      *time.Time `db:"started_at" json:"started_at"`
	FinishedAt     *time.Time `db:"finished_at" json:"finished_at"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Recipient identifies who receives the outcome notification for a job.
type Recipient struct {
	Email string
	Name  string
}
