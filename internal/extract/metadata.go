package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gazetted/internal/config"
	"gazetted/internal/logging"
	"gazetted/internal/port"
)

// metadataPayload mirrors the metadata extractor's stdout JSON.
type metadataPayload struct {
	Gazette struct {
		Number string `json:"number"`
		Date   string `json:"date"`
	} `json:"gazette"`
}

type metadataAdapter struct {
	runner Runner
	cfg    *config.ExtractorConfig
	schema map[string]any
}

// NewMetadataExtractor creates the adapter for the external gazette metadata
// program.
func NewMetadataExtractor(runner Runner, cfg *config.ExtractorConfig) port.MetadataExtractor {
	return &metadataAdapter{runner: runner, cfg: cfg, schema: buildMetadataSchema()}
}

func (a *metadataAdapter) Extract(ctx context.Context, pdfPath string) (*port.MetadataResult, error) {
	args := []string{a.cfg.MetadataScript, pdfPath}
	logging.Infof("metadata: invoking %s %s (timeout=%s)", a.cfg.Python, a.cfg.MetadataScript, a.cfg.MetadataTimeoutDuration())

	stdout, err := invoke(ctx, a.runner, a.cfg.Python, args, a.cfg.MetadataTimeoutDuration(), a.schema)
	if err != nil {
		return nil, err
	}

	var payload metadataPayload
	if err := json.Unmarshal(stdout, &payload); err != nil {
		return nil, &AdapterError{Program: a.cfg.Python, Kind: FailureMalformedJSON, Detail: err.Error()}
	}

	// The schema guarantees presence; the date must additionally parse.
	if _, err := time.Parse("2006-01-02", payload.Gazette.Date); err != nil {
		return nil, &AdapterError{
			Program: a.cfg.Python,
			Kind:    FailureContractViolation,
			Detail:  fmt.Sprintf("gazette.date %q is not a valid date", payload.Gazette.Date),
		}
	}

	logging.Infof("metadata: extracted gazette number=%s date=%s", payload.Gazette.Number, payload.Gazette.Date)
	return &port.MetadataResult{Number: payload.Gazette.Number, Date: payload.Gazette.Date}, nil
}
