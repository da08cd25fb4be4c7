package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gazetted/internal/domain"
)

// MockTagRepo is a mock implementation of port.TagRepository.
type MockTagRepo struct {
	mock.Mock
}

func (m *MockTagRepo) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepo) TagExists(ctx context.Context, documentID, tagID int64) (bool, error) {
	args := m.Called(ctx, documentID, tagID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepo) CreateDocumentTag(ctx context.Context, documentID, tagID int64) error {
	args := m.Called(ctx, documentID, tagID)
	return args.Error(0)
}

func (m *MockTagRepo) IssuerTagExists(ctx context.Context, documentID, tagID int64) (bool, error) {
	args := m.Called(ctx, documentID, tagID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepo) CreateIssuerDocumentTag(ctx context.Context, documentID, tagID int64) error {
	args := m.Called(ctx, documentID, tagID)
	return args.Error(0)
}

func (m *MockTagRepo) ListAlternativeNames(ctx context.Context) ([]domain.AlternativeTagName, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AlternativeTagName), args.Error(1)
}

func (m *MockTagRepo) ListByDocument(ctx context.Context, documentID int64) ([]domain.Tag, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockTagRepo) ListIssuersByDocument(ctx context.Context, documentID int64) ([]domain.Tag, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}
