package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func TestStorageSaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	storage := NewStorageService(dir, 1024, nil)

	name, path, err := storage.SaveFile(newFileHeader(t, "My CV.PDF", []byte("%PDF-1.4 fake")), "cv")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(name, "cv_"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.Equal(t, storage.GetFilePath(name), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))

	require.NoError(t, storage.DeleteFile(name))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, storage.DeleteFile(name))
}

func TestStorageRejectsUnsupportedFiles(t *testing.T) {
	storage := NewStorageService(t.TempDir(), 8, []string{".pdf"})

	_, _, err := storage.SaveFile(newFileHeader(t, "notes.txt", []byte("hi")), "file")
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	_, _, err = storage.SaveFile(newFileHeader(t, "big.pdf", []byte("far more than eight bytes")), "file")
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}
