package export_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gazetted/internal/domain"
	"gazetted/internal/export"
	"gazetted/mocks"
)

func TestExportService_BatchWorkbookXLSX_ListsBatchInOrder(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	tagRepo := new(mocks.MockTagRepo)
	storage := new(mocks.MockObjectStorage)
	svc := export.NewService(docRepo, tagRepo, storage, "bucket", 3600)

	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	docs := []domain.Document{
		{ID: 55, Name: "Gazette", PublicationNumber: "34,512", PublicationDate: &date,
			EndPage: 41, URL: "gazette-34512"},
		{ID: 100, IssueID: "107-2025", PublicationNumber: "34,512", PublicationDate: &date,
			StartPage: 20, EndPage: 41, Position: 3, Publish: true,
			URL: "1072025-34512", FileKey: "gazettes/55/107-2025.pdf"},
	}
	docRepo.On("ListByPublication", mock.Anything, "34,512").Return(docs, nil)

	tagRepo.On("ListByDocument", mock.Anything, int64(55)).
		Return([]domain.Tag{{ID: 1, Name: "Gazette"}}, nil)
	tagRepo.On("ListIssuersByDocument", mock.Anything, int64(55)).
		Return([]domain.Tag{{ID: 2, Name: "National Gazette Authority"}}, nil)
	tagRepo.On("ListByDocument", mock.Anything, int64(100)).
		Return([]domain.Tag{{ID: 1, Name: "Gazette"}, {ID: 3, Name: "Decrees"}}, nil)
	tagRepo.On("ListIssuersByDocument", mock.Anything, int64(100)).
		Return([]domain.Tag{}, nil)
	storage.On("GetPresignedURL", mock.Anything, "bucket", "gazettes/55/107-2025.pdf", int64(3600)).
		Return("https://bucket.s3.amazonaws.com/gazettes/55/107-2025.pdf?sig=abc", nil)

	raw, err := svc.BatchWorkbookXLSX(context.Background(), "34,512")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Gazette Batch")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Tags", rows[0][9])

	assert.Equal(t, "Gazette", rows[1][0])
	assert.Equal(t, "2025-03-14", rows[1][3])
	assert.Equal(t, "National Gazette Authority", rows[1][10])

	assert.Equal(t, "107-2025", rows[2][1])
	assert.Equal(t, "Gazette, Decrees", rows[2][9])
	assert.Equal(t, "gazettes/55/107-2025.pdf", rows[2][11])
	assert.Equal(t, "https://bucket.s3.amazonaws.com/gazettes/55/107-2025.pdf?sig=abc", rows[2][12])

	// The parent has no attachment, so no link is presigned for it.
	storage.AssertNumberOfCalls(t, "GetPresignedURL", 1)
}

func TestExportService_BatchWorkbookXLSX_UnknownBatch(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	tagRepo := new(mocks.MockTagRepo)
	svc := export.NewService(docRepo, tagRepo, new(mocks.MockObjectStorage), "bucket", 3600)

	docRepo.On("ListByPublication", mock.Anything, "99,999").Return([]domain.Document{}, nil)

	raw, err := svc.BatchWorkbookXLSX(context.Background(), "99,999")

	assert.Nil(t, raw)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
