package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gazetted/internal/domain"
	"gazetted/internal/service"
	"gazetted/mocks"
)

func TestTaggingService_ApplyTag_CreatesAssociation(t *testing.T) {
	tagRepo := new(mocks.MockTagRepo)
	svc := service.NewTaggingService(tagRepo)

	tagRepo.On("FindByName", mock.Anything, "Trademarks").Return(&domain.Tag{ID: 7, Name: "Trademarks"}, nil)
	tagRepo.On("TagExists", mock.Anything, int64(3), int64(7)).Return(false, nil)
	tagRepo.On("CreateDocumentTag", mock.Anything, int64(3), int64(7)).Return(nil)

	err := svc.ApplyTag(context.Background(), 3, "Trademarks")

	assert.NoError(t, err)
	tagRepo.AssertExpectations(t)
}

func TestTaggingService_ApplyTag_AlreadyTagged(t *testing.T) {
	tagRepo := new(mocks.MockTagRepo)
	svc := service.NewTaggingService(tagRepo)

	tagRepo.On("FindByName", mock.Anything, "Trademarks").Return(&domain.Tag{ID: 7, Name: "Trademarks"}, nil)
	tagRepo.On("TagExists", mock.Anything, int64(3), int64(7)).Return(true, nil)

	err := svc.ApplyTag(context.Background(), 3, "Trademarks")

	assert.NoError(t, err)
	tagRepo.AssertNotCalled(t, "CreateDocumentTag", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaggingService_ApplyTag_EmptyNameIsNoOp(t *testing.T) {
	tagRepo := new(mocks.MockTagRepo)
	svc := service.NewTaggingService(tagRepo)

	err := svc.ApplyTag(context.Background(), 3, "")

	assert.NoError(t, err)
	tagRepo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
}

func TestTaggingService_ApplyTag_UnknownNameIsNoOp(t *testing.T) {
	tagRepo := new(mocks.MockTagRepo)
	svc := service.NewTaggingService(tagRepo)

	tagRepo.On("FindByName", mock.Anything, "No Such Tag").Return(nil, domain.ErrNotFound)

	err := svc.ApplyTag(context.Background(), 3, "No Such Tag")

	assert.NoError(t, err)
	tagRepo.AssertNotCalled(t, "CreateDocumentTag", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaggingService_ApplyTag_RepoError(t *testing.T) {
	tagRepo := new(mocks.MockTagRepo)
	svc := service.NewTaggingService(tagRepo)

	tagRepo.On("FindByName", mock.Anything, "Trademarks").Return(nil, errors.New("connection refused"))

	err := svc.ApplyTag(context.Background(), 3, "Trademarks")

	assert.Error(t, err)
}

func TestTaggingService_ApplyIssuerTag_CreatesAssociation(t *testing.T) {
	tagRepo := new(mocks.MockTagRepo)
	svc := service.NewTaggingService(tagRepo)

	tagRepo.On("FindByName", mock.Anything, "Various").Return(&domain.Tag{ID: 9, Name: "Various"}, nil)
	tagRepo.On("IssuerTagExists", mock.Anything, int64(3), int64(9)).Return(false, nil)
	tagRepo.On("CreateIssuerDocumentTag", mock.Anything, int64(3), int64(9)).Return(nil)

	err := svc.ApplyIssuerTag(context.Background(), 3, "Various")

	assert.NoError(t, err)
	tagRepo.AssertExpectations(t)
}

func TestTaggingService_ApplyIssuerTag_SeparateFromGeneralTags(t *testing.T) {
	// The same tag can be an issuer association even when a general
	// association already exists; only the issuer table is consulted.
	tagRepo := new(mocks.MockTagRepo)
	svc := service.NewTaggingService(tagRepo)

	tagRepo.On("FindByName", mock.Anything, "Various").Return(&domain.Tag{ID: 9, Name: "Various"}, nil)
	tagRepo.On("IssuerTagExists", mock.Anything, int64(3), int64(9)).Return(false, nil)
	tagRepo.On("CreateIssuerDocumentTag", mock.Anything, int64(3), int64(9)).Return(nil)

	err := svc.ApplyIssuerTag(context.Background(), 3, "Various")

	assert.NoError(t, err)
	tagRepo.AssertNotCalled(t, "TagExists", mock.Anything, mock.Anything, mock.Anything)
	tagRepo.AssertNotCalled(t, "CreateDocumentTag", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaggingService_DetectInstitutionTags_TagsWholeWordMatches(t *testing.T) {
	tagRepo := new(mocks.MockTagRepo)
	svc := service.NewTaggingService(tagRepo)

	tagRepo.On("ListAlternativeNames", mock.Anything).Return([]domain.AlternativeTagName{
		{ID: 1, TagID: 10, AlternativeName: "ENA"},
		{ID: 2, TagID: 11, AlternativeName: "Ministry of Finance"},
	}, nil)
	tagRepo.On("TagExists", mock.Anything, int64(5), int64(11)).Return(false, nil)
	tagRepo.On("CreateDocumentTag", mock.Anything, int64(5), int64(11)).Return(nil)

	// ENAG must not trigger the ENA alternative.
	err := svc.DetectInstitutionTags(context.Background(), 5, "submitted by ENAG to the ministry of finance on Tuesday")

	assert.NoError(t, err)
	tagRepo.AssertExpectations(t)
	tagRepo.AssertNotCalled(t, "CreateDocumentTag", mock.Anything, int64(5), int64(10))
}

func TestTaggingService_DetectInstitutionTags_SkipsExisting(t *testing.T) {
	tagRepo := new(mocks.MockTagRepo)
	svc := service.NewTaggingService(tagRepo)

	tagRepo.On("ListAlternativeNames", mock.Anything).Return([]domain.AlternativeTagName{
		{ID: 1, TagID: 10, AlternativeName: "ENA"},
	}, nil)
	tagRepo.On("TagExists", mock.Anything, int64(5), int64(10)).Return(true, nil)

	err := svc.DetectInstitutionTags(context.Background(), 5, "report filed by ENA")

	assert.NoError(t, err)
	tagRepo.AssertNotCalled(t, "CreateDocumentTag", mock.Anything, mock.Anything, mock.Anything)
}
