package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/pdf2ai/internal/logger"
	"alfredoptarigan/pdf2ai/internal/models"
)

type SummarizerService interface {
	Summarize(ctx context.Context, filePath string) (*models.Summary, error)
	Model() string
}

type summarizerService struct {
	pdfParser     PDFParserService
	invoker       ModelInvoker
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewSummarizerService(pdfParser PDFParserService, invoker ModelInvoker, log *zap.Logger) SummarizerService {
	return &summarizerService{
		pdfParser:     pdfParser,
		invoker:       invoker,
		promptBuilder: NewPromptBuilder(),
		logger:        logger.OrNop(log),
	}
}

func (s *summarizerService) Model() string {
	return s.invoker.Model()
}

func (s *summarizerService) Summarize(ctx context.Context, filePath string) (*models.Summary, error) {
	text, err := s.pdfParser.ExtractText(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	s.logger.Info("generating summary",
		zap.String("path", filePath),
		zap.Int("text_length", len(text)),
	)

	summary, err := s.invoker.Invoke(ctx, s.promptBuilder.BuildSummaryPrompt(text))
	if err != nil {
		if errors.Is(err, ErrInvocationFailed) {
			return nil, fmt.Errorf("failed to generate summary: %w", err)
		}
		return nil, fmt.Errorf("%w: failed to generate summary: %w", ErrInvocationFailed, err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, fmt.Errorf("%w: model returned an empty summary", ErrInvocationFailed)
	}

	return &models.Summary{
		Source: filePath,
		Text:   summary,
		Model:  s.invoker.Model(),
	}, nil
}
