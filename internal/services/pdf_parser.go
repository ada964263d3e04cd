package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"alfredoptarigan/pdf2ai/internal/logger"
	"alfredoptarigan/pdf2ai/internal/models"
)

type PDFParserService interface {
	ExtractText(filePath string) (string, error)
	ExtractDocument(filePath, contextLabel string) (*models.Document, error)
}

type pdfParserService struct {
	logger *zap.Logger
}

func NewPDFParserService(log *zap.Logger) PDFParserService {
	return &pdfParserService{logger: logger.OrNop(log)}
}

func (p *pdfParserService) ExtractText(filePath string) (string, error) {
	doc, err := p.ExtractDocument(filePath, "")
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

// ExtractDocument reads every page in order and joins the page texts with newlines.
func (p *pdfParserService) ExtractDocument(filePath, contextLabel string) (doc *models.Document, err error) {
	// the pdf package panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: malformed PDF: %v", ErrExtractionFailed, r)
		}
	}()

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: file does not exist: %s", ErrExtractionFailed, filePath)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrExtractionFailed, filePath)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF: %v", ErrExtractionFailed, err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	p.logger.Debug("parsing pdf", zap.String("path", filePath), zap.Int("pages", totalPage))

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.Warn("skipping unreadable page",
				zap.String("path", filePath),
				zap.Int("page", pageIndex),
				zap.Error(err),
			)
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := strings.TrimSpace(textBuilder.String())
	if text == "" {
		return nil, fmt.Errorf("%w: no text content found in PDF", ErrExtractionFailed)
	}

	return &models.Document{
		Source:    filePath,
		Context:   contextLabel,
		Text:      text,
		PageCount: totalPage,
	}, nil
}
