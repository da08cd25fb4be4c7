package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gazetted/internal/port"
)

// MockMetadataExtractor is a mock implementation of port.MetadataExtractor.
type MockMetadataExtractor struct {
	mock.Mock
}

func (m *MockMetadataExtractor) Extract(ctx context.Context, pdfPath string) (*port.MetadataResult, error) {
	args := m.Called(ctx, pdfPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.MetadataResult), args.Error(1)
}
