package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/pdf2ai/internal/config"
	"alfredoptarigan/pdf2ai/internal/logger"
)

// ModelInvoker sends one prompt to the language model and returns its completion.
type ModelInvoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
	Model() string
}

const defaultMaxLogLength = 200

// NewModelInvoker builds the invoker for the configured provider.
func NewModelInvoker(ctx context.Context, cfg config.ModelConfig, log *zap.Logger) (ModelInvoker, error) {
	switch cfg.Provider {
	case "", config.ProviderOllama:
		return NewOllamaInvoker(cfg.Endpoint, cfg.Name, cfg.Timeout, log), nil
	case config.ProviderGemini:
		return NewGeminiInvoker(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
	default:
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.Provider)
	}
}

type ollamaInvoker struct {
	endpoint string
	model    string
	timeout  time.Duration
	logger   *zap.Logger
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// NewOllamaInvoker targets the generate endpoint of a local Ollama server.
func NewOllamaInvoker(endpoint, model string, timeout time.Duration, log *zap.Logger) ModelInvoker {
	return &ollamaInvoker{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		timeout:  timeout,
		logger:   logger.WithCommonFields(log, config.ProviderOllama, model),
	}
}

func (o *ollamaInvoker) Model() string {
	return o.model
}

func (o *ollamaInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvocationFailed, err)
	}

	o.logger.Debug("ollama generate request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, defaultMaxLogLength)),
	)

	agent := fiber.Post(o.endpoint + "/api/generate")
	if o.timeout > 0 {
		agent.Timeout(o.timeout)
	}
	agent.JSON(ollamaRequest{Model: o.model, Prompt: prompt, Stream: false})

	start := time.Now()
	code, body, errs := agent.Bytes()
	elapsed := time.Since(start)

	if len(errs) > 0 {
		return "", fmt.Errorf("%w: ollama connection failed (is Ollama running?): %v", ErrInvocationFailed, errors.Join(errs...))
	}

	var result ollamaResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: decode ollama response (status %d): %v", ErrInvocationFailed, code, err)
	}

	if result.Error != "" {
		return "", fmt.Errorf("%w: ollama error: %s", ErrInvocationFailed, result.Error)
	}
	if code != fiber.StatusOK {
		return "", fmt.Errorf("%w: ollama returned status %d", ErrInvocationFailed, code)
	}

	output := strings.TrimSpace(result.Response)

	o.logger.Debug("ollama generate response",
		zap.Duration("elapsed", elapsed),
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", logger.TruncateForLog(output, defaultMaxLogLength)),
	)

	return output, nil
}

// generativeModels is the part of genai.Models used here.
type generativeModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiInvoker struct {
	models      generativeModels
	modelName   string
	temperature float32
	logger      *zap.Logger
}

// NewGeminiInvoker talks to the Gemini API instead of a local model.
func NewGeminiInvoker(ctx context.Context, apiKey, model string, log *zap.Logger) (ModelInvoker, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return newGeminiInvoker(client.Models, model, log), nil
}

func newGeminiInvoker(models generativeModels, model string, log *zap.Logger) *geminiInvoker {
	if model = strings.TrimSpace(model); model == "" {
		model = "gemini-2.5-flash"
	}

	return &geminiInvoker{
		models:      models,
		modelName:   model,
		temperature: 0.3,
		logger:      logger.WithCommonFields(log, config.ProviderGemini, model),
	}
}

func (g *geminiInvoker) Model() string {
	return g.modelName
}

func (g *geminiInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	g.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, defaultMaxLogLength)),
	)

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %v", ErrInvocationFailed, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: nil response from gemini", ErrInvocationFailed)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", fmt.Errorf("%w: gemini returned empty response", ErrInvocationFailed)
	}

	g.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", logger.TruncateForLog(output, defaultMaxLogLength)),
	)

	return output, nil
}
