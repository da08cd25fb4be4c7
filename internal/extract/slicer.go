package extract

import (
	"context"
	"encoding/json"
	"strconv"

	"gazetted/internal/config"
	"gazetted/internal/domain"
	"gazetted/internal/logging"
	"gazetted/internal/port"
)

// slicePayload mirrors the slicer's stdout JSON.
type slicePayload struct {
	PageCount int         `json:"page_count"`
	Files     []entryJSON `json:"files"`
	Errors    []string    `json:"errors"`
}

type entryJSON struct {
	Name             string   `json:"name"`
	Path             string   `json:"path"`
	StartPage        int      `json:"start_page"`
	EndPage          int      `json:"end_page"`
	Position         int      `json:"position"`
	FullText         string   `json:"full_text"`
	ShortDescription string   `json:"short_description"`
	Description      string   `json:"description"`
	Institutions     []string `json:"institutions"`
	Tag              string   `json:"tag"`
	Issuer           string   `json:"issuer"`
	Materia          string   `json:"materia"`
}

type slicerAdapter struct {
	runner Runner
	cfg    *config.ExtractorConfig
	schema map[string]any
}

// NewSlicer creates the adapter for the external gazette slicing program.
func NewSlicer(runner Runner, cfg *config.ExtractorConfig) port.GazetteSlicer {
	return &slicerAdapter{runner: runner, cfg: cfg, schema: buildSliceSchema()}
}

func (a *slicerAdapter) Slice(ctx context.Context, pdfPath, outputRoot string, documentID int64) (*port.SliceResult, error) {
	args := []string{a.cfg.SlicerScript, pdfPath, outputRoot, strconv.FormatInt(documentID, 10)}
	logging.Infof("slicer: invoking %s %s (timeout=%s)", a.cfg.Python, a.cfg.SlicerScript, a.cfg.SlicerTimeoutDuration())

	stdout, err := invoke(ctx, a.runner, a.cfg.Python, args, a.cfg.SlicerTimeoutDuration(), a.schema)
	if err != nil {
		return nil, err
	}

	var payload slicePayload
	if err := json.Unmarshal(stdout, &payload); err != nil {
		return nil, &AdapterError{Program: a.cfg.Python, Kind: FailureMalformedJSON, Detail: err.Error()}
	}

	result := &port.SliceResult{
		PageCount: payload.PageCount,
		Files:     make([]port.SliceEntry, 0, len(payload.Files)),
		Errors:    payload.Errors,
	}
	for _, f := range payload.Files {
		result.Files = append(result.Files, port.SliceEntry{
			Name:             f.Name,
			Path:             f.Path,
			StartPage:        f.StartPage,
			EndPage:          f.EndPage,
			Position:         f.Position,
			FullText:         f.FullText,
			ShortDescription: f.ShortDescription,
			Description:      f.Description,
			Institutions:     f.Institutions,
			Tag:              f.Tag,
			Issuer:           f.Issuer,
			Materia:          f.Materia,
			Category:         categoryFor(f.Name),
		})
	}

	logging.Infof("slicer: parsed %d files across %d pages", len(result.Files), result.PageCount)
	return result, nil
}

// categoryFor classifies a slice entry by its reserved name. This is the only
// place a section name is compared against the fixed category names.
func categoryFor(name string) domain.SectionCategory {
	switch name {
	case domain.SectionNameTrademarks:
		return domain.CategoryTrademarks
	case domain.SectionNameLegalNotices:
		return domain.CategoryLegalNotices
	default:
		return domain.CategoryIssue
	}
}
