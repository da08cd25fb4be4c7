package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gazetted/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendProcessingCompleteEmail(ctx context.Context, toEmail, toName, documentLink string, status domain.ProcessStatus) error {
	args := m.Called(ctx, toEmail, toName, documentLink, status)
	return args.Error(0)
}
