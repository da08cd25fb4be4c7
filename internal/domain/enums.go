package domain

// ProcessStatus is the user-facing outcome of an ingestion run.
type ProcessStatus string

const (
	ProcessStatusSuccess ProcessStatus = "success"
	ProcessStatusWarning ProcessStatus = "warning"
	ProcessStatusError   ProcessStatus = "error"
)

// JobStatus represents the lifecycle of a queued ingestion job.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	// JobStatusDead marks jobs that exhausted their retries and await
	// manual inspection.
	JobStatusDead JobStatus = "dead"
)

// SectionCategory classifies an extracted slice. It is decided exactly once
// when the slicer payload is decoded; downstream code switches on the
// category, never on the section name.
type SectionCategory string

const (
	CategoryTrademarks   SectionCategory = "trademarks"
	CategoryLegalNotices SectionCategory = "legal_notices"
	CategoryIssue        SectionCategory = "issue"
)

// Reserved section names the slicer uses for the two fixed categories.
const (
	SectionNameTrademarks   = "Trademarks"
	SectionNameLegalNotices = "Legal Notices"
)

// Fixed document and tag names used by the ingestion rules.
const (
	GazetteName = "Gazette"

	TagGazette              = "Gazette"
	TagTrademarks           = "Trademarks"
	TagCommercial           = "Commercial"
	TagIntellectualProperty = "Intellectual Property"
	TagLegalNotices         = "Legal Notices"
	TagTenders              = "Tenders"

	IssuerVarious          = "Various"
	IssuerGazetteAuthority = "National Gazette Authority"
)

// Document type names seeded by the migrations.
const (
	DocumentTypeGazette = "Gazette"
	DocumentTypeSection = "Gazette Section"
	DocumentTypeIssue   = "Gazette Issue"
)
