package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/pdf2ai/internal/config"
	"alfredoptarigan/pdf2ai/internal/models"
	"alfredoptarigan/pdf2ai/internal/services"
	"alfredoptarigan/pdf2ai/mocks"
)

type testApp struct {
	app        *fiber.App
	uploadDir  string
	summarizer *mocks.MockSummarizer
	comparator *mocks.MockComparator
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	uploadDir := t.TempDir()
	storage := services.NewStorageService(uploadDir, 1<<20, []string{".pdf"})
	summarizer := new(mocks.MockSummarizer)
	comparator := new(mocks.MockComparator)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	SetupRoutes(app, Handlers{
		Health:    NewHealthHandler(config.ServerConfig{Version: "9.9.9", CORSOrigins: []string{"http://localhost:3000"}}),
		Summarize: NewSummarizeHandler(storage, summarizer, nil),
		Compare:   NewCompareHandler(storage, comparator, nil),
	})

	return &testApp{app: app, uploadDir: uploadDir, summarizer: summarizer, comparator: comparator}
}

func multipartRequest(t *testing.T, path string, files map[string]string, fields map[string]string) *http.Request {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for field, filename := range files {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 fake"))
		require.NoError(t, err)
	}
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

func assertUploadsRemoved(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHealthEndpoints(t *testing.T) {
	ta := newTestApp(t)

	resp, err := ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	health := decode[models.HealthResponse](t, resp)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "9.9.9", health.Version)

	resp, err = ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/test", nil))
	require.NoError(t, err)

	test := decode[models.TestConnectionResponse](t, resp)
	assert.Equal(t, "Backend connection successful!", test.Message)
	assert.Contains(t, test.AvailableEndpoints, "POST /api/summarize")
	assert.Equal(t, []string{"http://localhost:3000"}, test.CORSOrigins)

	resp, err = ta.app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	root := decode[map[string]any](t, resp)
	assert.Equal(t, projectName, root["project"])
}

func TestSummarizeSuccess(t *testing.T) {
	ta := newTestApp(t)

	ta.summarizer.On("Summarize", mock.Anything, mock.AnythingOfType("string")).
		Return(&models.Summary{Text: "Short summary", Model: "gemma3"}, nil)

	resp, err := ta.app.Test(multipartRequest(t, "/api/summarize", map[string]string{"file": "report.pdf"}, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode[models.SummarizeResponse](t, resp)
	assert.Equal(t, "Short summary", body.Summary)
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, 100, body.Progress)
	assert.Equal(t, "report.pdf", body.Filename)
	assert.Equal(t, "gemma3", body.Model)

	assertUploadsRemoved(t, ta.uploadDir)
	ta.summarizer.AssertExpectations(t)
}

func TestSummarizeRejectsBadUploads(t *testing.T) {
	ta := newTestApp(t)

	resp, err := ta.app.Test(multipartRequest(t, "/api/summarize", nil, map[string]string{"other": "x"}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = ta.app.Test(multipartRequest(t, "/api/summarize", map[string]string{"file": "notes.txt"}, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decode[models.ErrorResponse](t, resp)
	assert.Equal(t, fiber.StatusBadRequest, body.Code)
	assert.Contains(t, body.Error, "unsupported file type")

	ta.summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestSummarizeOversizedUploadGetsJSONError(t *testing.T) {
	storageCfg := config.StorageConfig{UploadPath: t.TempDir(), MaxFileSize: 1024}
	storage := services.NewStorageService(storageCfg.UploadPath, storageCfg.MaxFileSize, nil)
	summarizer := new(mocks.MockSummarizer)

	app := fiber.New(fiber.Config{BodyLimit: storageCfg.BodyLimit(), ErrorHandler: ErrorHandler})
	SetupRoutes(app, Handlers{
		Health:    NewHealthHandler(config.ServerConfig{}),
		Summarize: NewSummarizeHandler(storage, summarizer, nil),
		Compare:   NewCompareHandler(storage, new(mocks.MockComparator), nil),
	})

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "large.pdf")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), 4096))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/summarize", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	errBody := decode[models.ErrorResponse](t, resp)
	assert.Contains(t, errBody.Error, "file exceeds 1024 bytes")

	assertUploadsRemoved(t, storageCfg.UploadPath)
	summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestSummarizeFailureRemovesUpload(t *testing.T) {
	ta := newTestApp(t)

	ta.summarizer.On("Summarize", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: no text content found in PDF", services.ErrExtractionFailed))

	resp, err := ta.app.Test(multipartRequest(t, "/api/summarize", map[string]string{"file": "scan.pdf"}, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := decode[models.ErrorResponse](t, resp)
	assert.Contains(t, body.Error, "text extraction failed")

	assertUploadsRemoved(t, ta.uploadDir)
}

func TestCompareSuccess(t *testing.T) {
	ta := newTestApp(t)

	stats := services.AnalyzeKeywords([]string{"python", "sql"}, []string{"python", "kubernetes"})
	analysis := services.FallbackGapAnalysis([]string{"python", "sql"}, []string{"python", "kubernetes"})
	comparison := &models.Comparison{
		ID:        uuid.New(),
		Stats:     stats,
		Analysis:  analysis,
		Report:    services.RenderReport(stats, analysis),
		CreatedAt: time.Now(),
	}

	ta.comparator.On("Compare", mock.Anything, mock.AnythingOfType("string"), "Need Kubernetes").Return(comparison, nil)

	req := multipartRequest(t, "/api/compare",
		map[string]string{"cv": "cv.pdf"},
		map[string]string{"job_text": "  Need Kubernetes \n"},
	)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode[models.CompareResponse](t, resp)
	assert.Equal(t, comparison.ID.String(), body.ID)
	assert.Equal(t, []string{"kubernetes"}, body.Stats.Missing)
	assert.Equal(t, models.GapSourceFallback, body.Analysis.Source)
	assert.Contains(t, body.Text, services.ReportTitle)

	assertUploadsRemoved(t, ta.uploadDir)
	ta.comparator.AssertExpectations(t)
}

func TestCompareRequiresJobText(t *testing.T) {
	ta := newTestApp(t)

	req := multipartRequest(t, "/api/compare", map[string]string{"cv": "cv.pdf"}, map[string]string{"job_text": "   "})
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	assertUploadsRemoved(t, ta.uploadDir)
	ta.comparator.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompareInvocationFailure(t *testing.T) {
	ta := newTestApp(t)

	ta.comparator.On("Compare", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: model down", services.ErrInvocationFailed))

	req := multipartRequest(t, "/api/compare", map[string]string{"cv": "cv.pdf"}, map[string]string{"job_text": "job"})
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	assertUploadsRemoved(t, ta.uploadDir)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(services.ErrInputMissing))
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(fmt.Errorf("wrap: %w", services.ErrUnsupportedFile)))
	assert.Equal(t, fiber.StatusNotFound, StatusFor(fiber.ErrNotFound))
	assert.Equal(t, fiber.StatusInternalServerError, StatusFor(services.ErrExtractionFailed))
}
