package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/pdf2ai/internal/logger"
	"alfredoptarigan/pdf2ai/internal/models"
)

type ComparatorService interface {
	Compare(ctx context.Context, cvPath, jobText string) (*models.Comparison, error)
	ExtractCV(cvPath string) (*models.Document, error)
	CompareDocument(ctx context.Context, cv *models.Document, jobText string) (*models.Comparison, error)
}

type comparatorService struct {
	pdfParser   PDFParserService
	extractor   KeywordExtractor
	gapAnalyzer GapAnalyzer
	logger      *zap.Logger
}

func NewComparatorService(pdfParser PDFParserService, invoker ModelInvoker, log *zap.Logger) ComparatorService {
	log = logger.OrNop(log)
	return &comparatorService{
		pdfParser:   pdfParser,
		extractor:   NewKeywordExtractor(invoker, log),
		gapAnalyzer: NewGapAnalyzer(invoker, log),
		logger:      log,
	}
}

// Compare runs the full CV against job advert workflow. Extraction failures
// and blank job text are terminal; model failures degrade to empty keyword
// lists and the fallback analysis.
func (c *comparatorService) Compare(ctx context.Context, cvPath, jobText string) (*models.Comparison, error) {
	cvDoc, err := c.ExtractCV(cvPath)
	if err != nil {
		return nil, err
	}
	return c.CompareDocument(ctx, cvDoc, jobText)
}

// ExtractCV reads the CV and rejects one without any text.
func (c *comparatorService) ExtractCV(cvPath string) (*models.Document, error) {
	c.logger.Info("processing CV", zap.String("path", cvPath))
	cvDoc, err := c.pdfParser.ExtractDocument(cvPath, models.ContextCV)
	if err != nil {
		return nil, fmt.Errorf("failed to extract CV text: %w", err)
	}
	if strings.TrimSpace(cvDoc.Text) == "" {
		return nil, fmt.Errorf("%w: CV contains no text", ErrExtractionFailed)
	}
	return cvDoc, nil
}

// CompareDocument compares an already extracted CV with the job advert text.
func (c *comparatorService) CompareDocument(ctx context.Context, cvDoc *models.Document, jobText string) (*models.Comparison, error) {
	if cvDoc == nil || strings.TrimSpace(cvDoc.Text) == "" {
		return nil, fmt.Errorf("%w: CV contains no text", ErrExtractionFailed)
	}

	jobText = strings.TrimSpace(jobText)
	if jobText == "" {
		return nil, fmt.Errorf("%w: no job advert text provided", ErrInputMissing)
	}

	id := uuid.New()
	log := c.logger.With(zap.String("comparison_id", id.String()))

	log.Info("extracting CV keywords")
	cvKeywords := c.extractor.ExtractKeywords(ctx, cvDoc.Text, models.ContextCV)

	log.Info("extracting job advert keywords")
	jobKeywords := c.extractor.ExtractKeywords(ctx, jobText, models.ContextJobAdvert)

	stats := AnalyzeKeywords(cvKeywords, jobKeywords)

	log.Info("performing keyword gap analysis")
	analysis := c.gapAnalyzer.Analyze(ctx, cvKeywords, jobKeywords, cvDoc.Text, jobText)

	log.Info("comparison completed",
		zap.Int("cv_keywords", stats.CVKeywordCount),
		zap.Int("job_keywords", stats.JobKeywordCount),
		zap.Float64("match_percentage", stats.MatchPercentage),
		zap.String("analysis_source", string(analysis.Source)),
	)

	return &models.Comparison{
		ID:        id,
		CVSource:  cvDoc.Source,
		Stats:     stats,
		Analysis:  analysis,
		Report:    RenderReport(stats, analysis),
		CreatedAt: time.Now(),
	}, nil
}
