package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/storage"
)

// MockRecordRepository is a mock implementation of RecordRepository.
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) Create(ctx context.Context, record *model.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) List(ctx context.Context) ([]model.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Record), args.Error(1)
}

func newTestRecords(t *testing.T, repo *MockRecordRepository) (RecordService, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewDiskStore(dir)
	require.NoError(t, err)
	return NewRecordService(repo, store), dir
}

func TestRecordService_Create_WithoutImage(t *testing.T) {
	mockRepo := new(MockRecordRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Record")).Return(nil)

	service, _ := newTestRecords(t, mockRepo)
	record, err := service.Create(context.Background(), "Banner", "Homepage banner", nil)

	assert.NoError(t, err)
	assert.Equal(t, "Banner", record.Title)
	assert.Nil(t, record.ImageURL)
	mockRepo.AssertExpectations(t)
}

func TestRecordService_Create_WithImage(t *testing.T) {
	mockRepo := new(MockRecordRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Record")).Return(nil)

	service, dir := newTestRecords(t, mockRepo)
	files := imageHeaders(t, "banner.png")
	record, err := service.Create(context.Background(), "Banner", "Homepage banner", files[0])

	assert.NoError(t, err)
	require.NotNil(t, record.ImageURL)
	assert.Contains(t, *record.ImageURL, storage.URLPrefix+"/")
	assert.Equal(t, 1, storedCount(t, dir))
}

func TestRecordService_Create_MissingTitle(t *testing.T) {
	mockRepo := new(MockRecordRepository)

	service, _ := newTestRecords(t, mockRepo)
	_, err := service.Create(context.Background(), " ", "desc", nil)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordService_Create_RejectsBadFile(t *testing.T) {
	mockRepo := new(MockRecordRepository)

	service, dir := newTestRecords(t, mockRepo)
	files := imageHeaders(t, "notes.txt")
	_, err := service.Create(context.Background(), "Banner", "desc", files[0])

	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFileType)
	assert.Equal(t, 0, storedCount(t, dir))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordService_List(t *testing.T) {
	mockRepo := new(MockRecordRepository)
	mockRepo.On("List", mock.Anything).Return([]model.Record{{ID: 1, Title: "Banner"}}, nil)

	service, _ := newTestRecords(t, mockRepo)
	records, err := service.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	mockRepo.AssertExpectations(t)
}
