package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/cache"
	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/storage"
)

const (
	productListCacheKey = "catalog:products"
	productListCacheTTL = 5 * time.Minute
)

// CreateProductInput carries the scalar fields of a new product. Attributes
// is the caller's raw JSON payload, decoded best-effort by the service.
type CreateProductInput struct {
	Name          string
	Description   string
	CurrentPrice  decimal.Decimal
	PreviousPrice decimal.Decimal
	Category      string
	Available     bool
	Attributes    string
}

// UpdateProductInput is a patch: nil fields are left untouched. Images are
// replaced only when the request carried new files, attributes only when a
// data payload was supplied.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	CurrentPrice  *decimal.Decimal
	PreviousPrice *decimal.Decimal
	Category      *string
	Available     *bool
	Attributes    *string
}

// CatalogService manages product records, composing image intake output and
// attribute data into persisted documents.
type CatalogService interface {
	Create(ctx context.Context, in CreateProductInput, files []*multipart.FileHeader) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, id uint, in UpdateProductInput, files []*multipart.FileHeader) (*model.Product, error)
	Delete(ctx context.Context, id uint) (*model.Product, error)
}

type catalogService struct {
	products repository.ProductRepository
	images   storage.ImageStore
	cache    *cache.Client
	log      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(products repository.ProductRepository, images storage.ImageStore, cache *cache.Client, log zerolog.Logger) CatalogService {
	return &catalogService{
		products: products,
		images:   images,
		cache:    cache,
		log:      log,
	}
}

// Create stores the uploaded images, then persists the product. If the
// persistence write fails the stored files are deleted again so no orphan is
// left behind.
func (s *catalogService) Create(ctx context.Context, in CreateProductInput, files []*multipart.FileHeader) (*model.Product, error) {
	if err := validateScalars(in.Name, in.Description, in.Category); err != nil {
		return nil, err
	}

	paths, err := s.images.SaveAll(files)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:          in.Name,
		Description:   in.Description,
		CurrentPrice:  in.CurrentPrice,
		PreviousPrice: in.PreviousPrice,
		Images:        paths,
		Category:      in.Category,
		Attributes:    s.parseAttributes(in.Attributes),
		Available:     in.Available,
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.removeFiles(paths)
		return nil, fmt.Errorf("create product: %w", err)
	}

	_ = s.cache.Delete(ctx, productListCacheKey)
	return product, nil
}

// List returns all products in store default order, cached for a short TTL.
func (s *catalogService) List(ctx context.Context) ([]model.Product, error) {
	if data, _ := s.cache.Get(ctx, productListCacheKey); data != nil {
		var cached []model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if payload, err := json.Marshal(products); err == nil {
		_ = s.cache.Set(ctx, productListCacheKey, payload, productListCacheTTL)
	}
	return products, nil
}

// Update applies the patch to the matching product. New files replace the
// image set entirely; the replaced files are removed from disk once the
// persistence write succeeds, and the new ones are removed if it fails.
func (s *catalogService) Update(ctx context.Context, id uint, in UpdateProductInput, files []*multipart.FileHeader) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CurrentPrice != nil {
		product.CurrentPrice = *in.CurrentPrice
	}
	if in.PreviousPrice != nil {
		product.PreviousPrice = *in.PreviousPrice
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Available != nil {
		product.Available = *in.Available
	}
	if in.Attributes != nil {
		product.Attributes = s.parseAttributes(*in.Attributes)
	}

	var replaced model.StringList
	if len(files) > 0 {
		paths, err := s.images.SaveAll(files)
		if err != nil {
			return nil, err
		}
		replaced = product.Images
		product.Images = paths
	}

	if err := s.products.Update(ctx, product); err != nil {
		if len(files) > 0 {
			s.removeFiles(product.Images)
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.removeFiles(replaced)
	_ = s.cache.Delete(ctx, productListCacheKey)
	return product, nil
}

// Delete removes the record and its stored image files, returning the
// product's last state.
func (s *catalogService) Delete(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete product: %w", err)
	}

	s.removeFiles(product.Images)
	_ = s.cache.Delete(ctx, productListCacheKey)
	return product, nil
}

// parseAttributes decodes the caller's attribute JSON. Attribute data is
// non-critical, so a bad payload degrades to an empty mapping with a logged
// warning instead of failing the request.
func (s *catalogService) parseAttributes(raw string) model.JSONMap {
	attrs := model.JSONMap{}
	if strings.TrimSpace(raw) == "" {
		return attrs
	}
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		s.log.Warn().Err(err).Msg("invalid attribute payload, falling back to empty mapping")
		return model.JSONMap{}
	}
	return attrs
}

// removeFiles deletes stored images. Removal failures are logged, not fatal:
// the record write already settled.
func (s *catalogService) removeFiles(paths []string) {
	for _, p := range paths {
		if err := s.images.Remove(p); err != nil {
			s.log.Warn().Err(err).Str("path", p).Msg("failed to remove stored image")
		}
	}
}

func validateScalars(name, description, category string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name", apperrors.ErrValidation)
	case strings.TrimSpace(description) == "":
		return fmt.Errorf("%w: description", apperrors.ErrValidation)
	case strings.TrimSpace(category) == "":
		return fmt.Errorf("%w: category", apperrors.ErrValidation)
	}
	return nil
}
