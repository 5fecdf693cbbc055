package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	apperrors "storefront/internal/errors"
)

const (
	// MaxFilesPerRequest bounds multi-file uploads.
	MaxFilesPerRequest = 50
	// URLPrefix is the URL path under which stored images are served.
	URLPrefix = "/uploads"
)

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// ImageStore accepts uploaded image files and returns addressable URL paths.
type ImageStore interface {
	SaveAll(files []*multipart.FileHeader) ([]string, error)
	Remove(urlPath string) error
}

// DiskStore stores uploads under a fixed local directory. Filenames are
// derived from the current time plus the original extension; collision risk
// at this scale is accepted.
type DiskStore struct {
	root string
}

// NewDiskStore creates the upload directory if needed and returns a store
// rooted there.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// SaveAll validates every file before writing any, so a single bad file
// rejects the whole batch without touching disk. Returned paths are in the
// order the files were received.
func (s *DiskStore) SaveAll(files []*multipart.FileHeader) ([]string, error) {
	if len(files) > MaxFilesPerRequest {
		return nil, fmt.Errorf("%w: got %d, limit %d", apperrors.ErrTooManyFiles, len(files), MaxFilesPerRequest)
	}
	for _, fh := range files {
		if err := validate(fh); err != nil {
			return nil, err
		}
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		name := fmt.Sprintf("%d%s", time.Now().UnixNano(), strings.ToLower(filepath.Ext(fh.Filename)))
		if err := s.write(fh, name); err != nil {
			return nil, err
		}
		paths = append(paths, path.Join(URLPrefix, name))
	}
	return paths, nil
}

// Remove deletes a stored file given the URL path previously returned by
// SaveAll.
func (s *DiskStore) Remove(urlPath string) error {
	name := path.Base(urlPath)
	if name == "." || name == "/" || name == ".." {
		return fmt.Errorf("invalid upload path %q", urlPath)
	}
	return os.Remove(filepath.Join(s.root, name))
}

func (s *DiskStore) write(fh *multipart.FileHeader, name string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("store %s: %w", name, err)
	}
	return nil
}

func validate(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFileType, fh.Filename)
	}
	if ct := fh.Header.Get("Content-Type"); !allowedContentTypes[ct] {
		return fmt.Errorf("%w: %s (%s)", apperrors.ErrUnsupportedFileType, fh.Filename, ct)
	}
	return nil
}
