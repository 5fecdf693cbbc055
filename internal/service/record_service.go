package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/storage"
)

// RecordService is the minimal parallel of the catalog: flat records with a
// single optional image.
type RecordService interface {
	Create(ctx context.Context, title, description string, file *multipart.FileHeader) (*model.Record, error)
	List(ctx context.Context) ([]model.Record, error)
}

type recordService struct {
	records repository.RecordRepository
	images  storage.ImageStore
}

// NewRecordService creates a new record service.
func NewRecordService(records repository.RecordRepository, images storage.ImageStore) RecordService {
	return &recordService{
		records: records,
		images:  images,
	}
}

func (s *recordService) Create(ctx context.Context, title, description string, file *multipart.FileHeader) (*model.Record, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title", apperrors.ErrValidation)
	}

	record := &model.Record{
		Title:       title,
		Description: description,
	}

	var stored []string
	if file != nil {
		paths, err := s.images.SaveAll([]*multipart.FileHeader{file})
		if err != nil {
			return nil, err
		}
		stored = paths
		record.ImageURL = &paths[0]
	}

	if err := s.records.Create(ctx, record); err != nil {
		for _, p := range stored {
			_ = s.images.Remove(p)
		}
		return nil, fmt.Errorf("create record: %w", err)
	}
	return record, nil
}

func (s *recordService) List(ctx context.Context) ([]model.Record, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}
