package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gazetted/internal/domain"
	"gazetted/internal/port"
	"gazetted/internal/service"
	"gazetted/mocks"
)

func testParent() *domain.Document {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	return &domain.Document{
		ID:                55,
		Name:              domain.GazetteName,
		IssueID:           "34,512",
		PublicationNumber: "34,512",
		PublicationDate:   &date,
	}
}

// quietTagging returns a TaggingService whose repo treats every tag name as
// unknown, so tag application is a no-op in tests that do not care about it.
func quietTagging() *service.TaggingService {
	tagRepo := new(mocks.MockTagRepo)
	tagRepo.On("FindByName", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound).Maybe()
	tagRepo.On("ListAlternativeNames", mock.Anything).Return([]domain.AlternativeTagName{}, nil).Maybe()
	return service.NewTaggingService(tagRepo)
}

// writeSectionFile creates the extracted section file the slicer would have
// written under <root>/<parent id>/.
func writeSectionFile(t *testing.T, root string, parentID, name string) {
	t.Helper()
	dir := filepath.Join(root, parentID)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0o644))
}

func TestMaterializer_Materialize_CreatesSectionPerEntry(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	typeRepo := new(mocks.MockDocumentTypeRepo)
	storage := new(mocks.MockObjectStorage)
	root := t.TempDir()

	var created []*domain.Document
	nextID := int64(100)
	docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).
		Run(func(args mock.Arguments) {
			doc := args.Get(1).(*domain.Document)
			doc.ID = nextID
			nextID++
			created = append(created, doc)
		}).Return(nil)
	docRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)

	typeRepo.On("IDByName", mock.Anything, domain.DocumentTypeSection).Return(int64(2), nil)
	typeRepo.On("IDByName", mock.Anything, domain.DocumentTypeIssue).Return(int64(3), nil)

	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://bucket/key"}, nil)

	for _, name := range []string{"trademarks.pdf", "notices.pdf", "107.pdf"} {
		writeSectionFile(t, root, "55", name)
	}

	m := service.NewMaterializer(docRepo, typeRepo, quietTagging(), storage, "bucket", root)
	slice := &port.SliceResult{
		PageCount: 42,
		Files: []port.SliceEntry{
			{Name: "Trademarks", Path: "trademarks.pdf", StartPage: 0, EndPage: 9, Position: 1, Category: domain.CategoryTrademarks},
			{Name: "Legal Notices", Path: "notices.pdf", StartPage: 10, EndPage: 19, Position: 2, Category: domain.CategoryLegalNotices},
			{Name: "107-2025", Path: "107.pdf", StartPage: 20, EndPage: 41, Position: 3, Category: domain.CategoryIssue,
				ShortDescription: "A decree.", Description: "Full decree text.", FullText: "decree body"},
		},
	}

	outcome := m.Materialize(context.Background(), testParent(), slice)

	assert.Equal(t, 3, outcome.Created)
	assert.Empty(t, outcome.Errors)
	require.Len(t, created, 3)

	trademarks := created[0]
	assert.Equal(t, "Trademarks", trademarks.Name)
	assert.Equal(t, "", trademarks.IssueID)
	assert.Equal(t, "This is the trademarks section of Gazette 34,512 dated 2025-03-14.", trademarks.ShortDescription)
	assert.Equal(t, int64(2), trademarks.DocumentTypeID)
	assert.Equal(t, 1, trademarks.Position)
	assert.True(t, trademarks.Publish)
	assert.Equal(t, "trademarks-34512", trademarks.URL)
	assert.Equal(t, "gazettes/55/Trademarks.pdf", trademarks.FileKey)

	notices := created[1]
	assert.Equal(t, "This is the legal notices section of Gazette 34,512 dated 2025-03-14.", notices.ShortDescription)
	assert.Equal(t, "gazettes/55/Legal Notices.pdf", notices.FileKey)

	issue := created[2]
	assert.Equal(t, "", issue.Name)
	assert.Equal(t, "107-2025", issue.IssueID)
	assert.Equal(t, "A decree.", issue.ShortDescription)
	assert.Equal(t, "Full decree text.", issue.Description)
	assert.Equal(t, int64(3), issue.DocumentTypeID)
	assert.Equal(t, "1072025-34512", issue.URL)
	assert.Equal(t, "gazettes/55/107-2025.pdf", issue.FileKey)

	storage.AssertNumberOfCalls(t, "Upload", 3)
}

func TestMaterializer_Materialize_EntryFailureDoesNotAbortSiblings(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	typeRepo := new(mocks.MockDocumentTypeRepo)
	storage := new(mocks.MockObjectStorage)
	root := t.TempDir()

	docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).
		Return(errors.New("unique violation")).Once()
	docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Document).ID = 101 }).
		Return(nil)
	docRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)
	typeRepo.On("IDByName", mock.Anything, mock.AnythingOfType("string")).Return(int64(3), nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{}, nil)

	writeSectionFile(t, root, "55", "108.pdf")

	m := service.NewMaterializer(docRepo, typeRepo, quietTagging(), storage, "bucket", root)
	slice := &port.SliceResult{
		PageCount: 10,
		Files: []port.SliceEntry{
			{Name: "107-2025", Path: "107.pdf", Category: domain.CategoryIssue},
			{Name: "108-2025", Path: "108.pdf", Category: domain.CategoryIssue},
		},
	}

	outcome := m.Materialize(context.Background(), testParent(), slice)

	assert.Equal(t, 1, outcome.Created)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], `section "107-2025"`)
	assert.Contains(t, outcome.Errors[0], "unique violation")
}

func TestMaterializer_Materialize_AttachmentFailureRecordedNotFatal(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	typeRepo := new(mocks.MockDocumentTypeRepo)
	storage := new(mocks.MockObjectStorage)
	root := t.TempDir()

	docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Document).ID = 100 }).
		Return(nil)
	docRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)
	typeRepo.On("IDByName", mock.Anything, mock.AnythingOfType("string")).Return(int64(3), nil)

	// No section file on disk; the upload never happens.
	m := service.NewMaterializer(docRepo, typeRepo, quietTagging(), storage, "bucket", root)
	slice := &port.SliceResult{
		PageCount: 10,
		Files:     []port.SliceEntry{{Name: "107-2025", Path: "107.pdf", Category: domain.CategoryIssue}},
	}

	outcome := m.Materialize(context.Background(), testParent(), slice)

	assert.Equal(t, 1, outcome.Created)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], "opening attachment")
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestMaterializer_Materialize_CleansIssueDescriptions(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	typeRepo := new(mocks.MockDocumentTypeRepo)
	storage := new(mocks.MockObjectStorage)
	root := t.TempDir()

	var created *domain.Document
	docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Document)
			created.ID = 100
		}).Return(nil)
	docRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)
	typeRepo.On("IDByName", mock.Anything, mock.AnythingOfType("string")).Return(int64(3), nil)

	writeSectionFile(t, root, "55", "107.pdf")
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{}, nil)

	m := service.NewMaterializer(docRepo, typeRepo, quietTagging(), storage, "bucket", root)
	slice := &port.SliceResult{
		PageCount: 10,
		Files: []port.SliceEntry{{
			Name: "107-2025", Path: "107.pdf", Category: domain.CategoryIssue,
			ShortDescription: "-- 1. Notice of auction",
			Description:      "  (2) Detailed notice",
			FullText:         "## Notice body",
		}},
	}

	m.Materialize(context.Background(), testParent(), slice)

	require.NotNil(t, created)
	assert.Equal(t, "Notice of auction", created.ShortDescription)
	assert.Equal(t, "Detailed notice", created.Description)
	assert.Equal(t, "Notice body", created.FullText)
}

func TestMaterializer_Materialize_AppliesFixedTrademarkTags(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	typeRepo := new(mocks.MockDocumentTypeRepo)
	tagRepo := new(mocks.MockTagRepo)
	storage := new(mocks.MockObjectStorage)
	root := t.TempDir()

	docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Document).ID = 100 }).
		Return(nil)
	docRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)
	typeRepo.On("IDByName", mock.Anything, domain.DocumentTypeSection).Return(int64(2), nil)

	tagIDs := map[string]int64{
		domain.TagGazette:              1,
		domain.TagTrademarks:           2,
		domain.TagCommercial:           3,
		domain.TagIntellectualProperty: 4,
		domain.IssuerVarious:           5,
	}
	for name, id := range tagIDs {
		tagRepo.On("FindByName", mock.Anything, name).Return(&domain.Tag{ID: id, Name: name}, nil)
	}
	tagRepo.On("TagExists", mock.Anything, int64(100), mock.AnythingOfType("int64")).Return(false, nil)
	tagRepo.On("CreateDocumentTag", mock.Anything, int64(100), mock.AnythingOfType("int64")).Return(nil)
	tagRepo.On("IssuerTagExists", mock.Anything, int64(100), int64(5)).Return(false, nil)
	tagRepo.On("CreateIssuerDocumentTag", mock.Anything, int64(100), int64(5)).Return(nil)
	tagRepo.On("ListAlternativeNames", mock.Anything).Return([]domain.AlternativeTagName{}, nil)

	writeSectionFile(t, root, "55", "trademarks.pdf")
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{}, nil)

	m := service.NewMaterializer(docRepo, typeRepo, service.NewTaggingService(tagRepo), storage, "bucket", root)
	slice := &port.SliceResult{
		PageCount: 10,
		Files:     []port.SliceEntry{{Name: "Trademarks", Path: "trademarks.pdf", Position: 1, Category: domain.CategoryTrademarks}},
	}

	outcome := m.Materialize(context.Background(), testParent(), slice)

	assert.Equal(t, 1, outcome.Created)
	for _, name := range []string{domain.TagGazette, domain.TagTrademarks, domain.TagCommercial, domain.TagIntellectualProperty} {
		tagRepo.AssertCalled(t, "CreateDocumentTag", mock.Anything, int64(100), tagIDs[name])
	}
	tagRepo.AssertCalled(t, "CreateIssuerDocumentTag", mock.Anything, int64(100), tagIDs[domain.IssuerVarious])
}
