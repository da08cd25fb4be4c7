package port

import (
	"context"

	"gazetted/internal/domain"
)

// EmailSender defines the contract for outcome notifications. Delivery is
// best-effort; the pipeline never consumes a return value beyond logging.
type EmailSender interface {
	SendProcessingCompleteEmail(ctx context.Context, toEmail, toName, documentLink string, status domain.ProcessStatus) error
}
