package port

import (
	"context"

	"gazetted/internal/domain"
)

// SliceEntry is one extracted section as reported by the slicer. Category is
// decided once at payload decode time; downstream code never re-derives it
// from the name.
type SliceEntry struct {
	Name             string
	Path             string
	StartPage        int
	EndPage          int
	Position         int
	FullText         string
	ShortDescription string
	Description      string
	Institutions     []string
	Tag              string
	Issuer           string
	Materia          string
	Category         domain.SectionCategory
}

// SliceResult is the slicer's validated output for one gazette.
type SliceResult struct {
	PageCount int
	Files     []SliceEntry
	// Errors carries the slicer's soft per-section complaints. They are
	// logged as warnings and do not fail the run.
	Errors []string
}

// EmptySliceResult is the safe default substituted when slicing fails so the
// remainder of the pipeline can still run.
func EmptySliceResult() *SliceResult {
	return &SliceResult{PageCount: 0, Files: []SliceEntry{}}
}

// MetadataResult is the metadata extractor's validated output.
type MetadataResult struct {
	Number string
	Date   string
}

// GazetteSlicer abstracts the external slicing program.
type GazetteSlicer interface {
	Slice(ctx context.Context, pdfPath, outputRoot string, documentID int64) (*SliceResult, error)
}

// MetadataExtractor abstracts the external metadata extraction program.
type MetadataExtractor interface {
	Extract(ctx context.Context, pdfPath string) (*MetadataResult, error)
}
