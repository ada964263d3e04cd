package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alfredoptarigan/pdf2ai/internal/models"
)

type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, filePath string) (*models.Summary, error) {
	args := m.Called(ctx, filePath)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Summary), args.Error(1)
}

func (m *MockSummarizer) Model() string {
	args := m.Called()
	return args.String(0)
}

type MockComparator struct {
	mock.Mock
}

func (m *MockComparator) Compare(ctx context.Context, cvPath, jobText string) (*models.Comparison, error) {
	args := m.Called(ctx, cvPath, jobText)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Comparison), args.Error(1)
}

func (m *MockComparator) ExtractCV(cvPath string) (*models.Document, error) {
	args := m.Called(cvPath)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockComparator) CompareDocument(ctx context.Context, cv *models.Document, jobText string) (*models.Comparison, error) {
	args := m.Called(ctx, cv, jobText)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Comparison), args.Error(1)
}
