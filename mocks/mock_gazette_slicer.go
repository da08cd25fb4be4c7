package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gazetted/internal/port"
)

// MockGazetteSlicer is a mock implementation of port.GazetteSlicer.
type MockGazetteSlicer struct {
	mock.Mock
}

func (m *MockGazetteSlicer) Slice(ctx context.Context, pdfPath, outputRoot string, documentID int64) (*port.SliceResult, error) {
	args := m.Called(ctx, pdfPath, outputRoot, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.SliceResult), args.Error(1)
}
