package noop

import (
	"context"

	"gazetted/internal/domain"
	"gazetted/internal/logging"
	"gazetted/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notifications instead
// of delivering them. It stands in wherever no real sender is configured, so
// callers never need a nil check.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendProcessingCompleteEmail(_ context.Context, toEmail, toName, documentLink string, status domain.ProcessStatus) error {
	logging.Infof("[NOOP EMAIL] processing complete for %s (%s): status=%s link=%s", toName, toEmail, status, documentLink)
	return nil
}
