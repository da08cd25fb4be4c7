package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gazetted/internal/domain"
	"gazetted/internal/export"
	"gazetted/mocks"
)

func TestExportService_BatchCSV_WritesBOMAndRows(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	tagRepo := new(mocks.MockTagRepo)
	storage := new(mocks.MockObjectStorage)
	svc := export.NewService(docRepo, tagRepo, storage, "bucket", 3600)

	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	docs := []domain.Document{
		{ID: 100, IssueID: "107-2025", PublicationNumber: "34,512", PublicationDate: &date,
			StartPage: 20, EndPage: 41, Position: 3, Publish: true,
			URL: "1072025-34512", FileKey: "gazettes/55/107-2025.pdf"},
	}
	docRepo.On("ListByPublication", mock.Anything, "34,512").Return(docs, nil)
	tagRepo.On("ListByDocument", mock.Anything, int64(100)).
		Return([]domain.Tag{{ID: 1, Name: "Gazette"}}, nil)
	tagRepo.On("ListIssuersByDocument", mock.Anything, int64(100)).
		Return([]domain.Tag{}, nil)
	storage.On("GetPresignedURL", mock.Anything, "bucket", "gazettes/55/107-2025.pdf", int64(3600)).
		Return("https://bucket.s3.amazonaws.com/gazettes/55/107-2025.pdf?sig=abc", nil)

	raw, err := svc.BatchCSV(context.Background(), "34,512")
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))

	records, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Name", records[0][0])
	row := records[1]
	assert.Equal(t, "107-2025", row[1])
	assert.Equal(t, "34,512", row[2])
	assert.Equal(t, "2025-03-14", row[3])
	assert.Equal(t, "20", row[4])
	assert.Equal(t, "true", row[7])
	assert.Equal(t, "Gazette", row[9])
	assert.Equal(t, "gazettes/55/107-2025.pdf", row[11])
	assert.Equal(t, "https://bucket.s3.amazonaws.com/gazettes/55/107-2025.pdf?sig=abc", row[12])
}

func TestExportService_BatchCSV_UnknownBatch(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	tagRepo := new(mocks.MockTagRepo)
	svc := export.NewService(docRepo, tagRepo, new(mocks.MockObjectStorage), "bucket", 3600)

	docRepo.On("ListByPublication", mock.Anything, "99,999").Return([]domain.Document{}, nil)

	_, err := svc.BatchCSV(context.Background(), "99,999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
