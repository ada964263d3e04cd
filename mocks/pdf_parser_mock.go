package mocks

import (
	"github.com/stretchr/testify/mock"

	"alfredoptarigan/pdf2ai/internal/models"
)

type MockPDFParser struct {
	mock.Mock
}

func (m *MockPDFParser) ExtractText(filePath string) (string, error) {
	args := m.Called(filePath)
	return args.String(0), args.Error(1)
}

func (m *MockPDFParser) ExtractDocument(filePath, contextLabel string) (*models.Document, error) {
	args := m.Called(filePath, contextLabel)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Document), args.Error(1)
}
