package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

type StorageService interface {
	SaveFile(file *multipart.FileHeader, fileType string) (string, string, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath        string
	maxFileSize       int64
	allowedExtensions []string
}

// NewStorageService stores uploads under uploadPath. An empty extension list
// accepts PDFs only; a non-positive maxFileSize disables the size check.
func NewStorageService(uploadPath string, maxFileSize int64, allowedExtensions []string) StorageService {
	if len(allowedExtensions) == 0 {
		allowedExtensions = []string{".pdf"}
	}

	return &storageService{
		uploadPath:        uploadPath,
		maxFileSize:       maxFileSize,
		allowedExtensions: allowedExtensions,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile writes the upload as <fileType>_<uuid><ext> and returns the
// generated name and its full path.
func (s *storageService) SaveFile(file *multipart.FileHeader, fileType string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !slices.Contains(s.allowedExtensions, ext) {
		return "", "", fmt.Errorf("%w: %q, only %s files are allowed", ErrUnsupportedFile, ext, strings.Join(s.allowedExtensions, ", "))
	}

	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return "", "", fmt.Errorf("%w: file exceeds %d bytes", ErrUnsupportedFile, s.maxFileSize)
	}

	if err := s.EnsureUploadDir(); err != nil {
		return "", "", err
	}

	uniqueFilename := fmt.Sprintf("%s_%s%s", fileType, uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath)
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
