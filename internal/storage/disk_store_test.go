package storage

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "storefront/internal/errors"
)

type upload struct {
	filename    string
	contentType string
}

// buildFileHeaders assembles real multipart.FileHeader values by writing and
// re-parsing a multipart body, the same way a request would arrive.
func buildFileHeaders(t *testing.T, uploads []upload) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, u := range uploads {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, u.filename))
		h.Set("Content-Type", u.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes for " + u.filename))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["images"]
}

func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestDiskStore_SaveAll(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	files := buildFileHeaders(t, []upload{
		{"a.jpg", "image/jpeg"},
		{"b.png", "image/png"},
		{"c.gif", "image/gif"},
	})

	paths, err := store.SaveAll(files)
	assert.NoError(t, err)
	assert.Len(t, paths, 3)

	// paths are URL-style, in receipt order, and resolvable on disk
	assert.True(t, strings.HasSuffix(paths[0], ".jpg"))
	assert.True(t, strings.HasSuffix(paths[1], ".png"))
	assert.True(t, strings.HasSuffix(paths[2], ".gif"))
	for _, p := range paths {
		assert.True(t, strings.HasPrefix(p, URLPrefix+"/"))
		_, err := os.Stat(dir + "/" + path.Base(p))
		assert.NoError(t, err)
	}
	assert.Len(t, storedFiles(t, dir), 3)
}

func TestDiskStore_SaveAll_Empty(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	paths, err := store.SaveAll(nil)
	assert.NoError(t, err)
	assert.Empty(t, paths)
}

func TestDiskStore_SaveAll_RejectsBadExtension(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	files := buildFileHeaders(t, []upload{
		{"a.jpg", "image/jpeg"},
		{"notes.txt", "text/plain"},
	})

	paths, err := store.SaveAll(files)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFileType)
	assert.Nil(t, paths)
	// whole batch rejected before any write
	assert.Empty(t, storedFiles(t, dir))
}

func TestDiskStore_SaveAll_RejectsBadContentType(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	files := buildFileHeaders(t, []upload{
		{"a.png", "application/octet-stream"},
	})

	_, err = store.SaveAll(files)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFileType)
	assert.Empty(t, storedFiles(t, dir))
}

func TestDiskStore_SaveAll_RejectsTooManyFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	uploads := make([]upload, MaxFilesPerRequest+1)
	for i := range uploads {
		uploads[i] = upload{fmt.Sprintf("f%d.jpg", i), "image/jpeg"}
	}

	_, err = store.SaveAll(buildFileHeaders(t, uploads))
	assert.ErrorIs(t, err, apperrors.ErrTooManyFiles)
	assert.Empty(t, storedFiles(t, dir))
}

func TestDiskStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	paths, err := store.SaveAll(buildFileHeaders(t, []upload{{"a.jpg", "image/jpeg"}}))
	require.NoError(t, err)
	require.Len(t, paths, 1)

	assert.NoError(t, store.Remove(paths[0]))
	assert.Empty(t, storedFiles(t, dir))

	// removing again fails
	assert.Error(t, store.Remove(paths[0]))
}
