package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/pdf2ai/internal/logger"
	"alfredoptarigan/pdf2ai/internal/models"
)

const (
	fallbackMatchAnalysis = "AI analysis temporarily unavailable, using basic comparison"
	fallbackCriticalLimit = 5
	fallbackPriorityLimit = 3
)

var fallbackRecommendations = []string{
	"Add missing keywords to your CV",
	"Focus on relevant experience",
}

type GapAnalyzer interface {
	Analyze(ctx context.Context, cvKeywords, jobKeywords []string, cvText, jobText string) models.GapAnalysis
}

type gapAnalyzer struct {
	invoker       ModelInvoker
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewGapAnalyzer(invoker ModelInvoker, log *zap.Logger) GapAnalyzer {
	return &gapAnalyzer{
		invoker:       invoker,
		promptBuilder: NewPromptBuilder(),
		logger:        logger.OrNop(log),
	}
}

// Analyze asks the model for a structured gap assessment. It never fails: a
// model error or an unparseable reply produces the fallback analysis.
func (g *gapAnalyzer) Analyze(ctx context.Context, cvKeywords, jobKeywords []string, cvText, jobText string) models.GapAnalysis {
	prompt := g.promptBuilder.BuildGapAnalysisPrompt(cvKeywords, jobKeywords, cvText, jobText)

	reply, err := g.invoker.Invoke(ctx, prompt)
	if err != nil {
		g.logger.Warn("gap analysis call failed", zap.Error(err))
		reply = ""
	}

	analysis, err := ParseGapAnalysis(reply)
	if err != nil {
		g.logger.Warn("using fallback gap analysis",
			zap.Error(err),
			zap.String("response_preview", logger.TruncateForLog(reply, defaultMaxLogLength)),
		)
		return FallbackGapAnalysis(cvKeywords, jobKeywords)
	}

	return analysis
}

type gapAnalysisPayload struct {
	MatchAnalysis     string   `json:"match_analysis"`
	MissingCritical   []string `json:"missing_critical"`
	Recommendations   []string `json:"recommendations"`
	SynonymMatches    []string `json:"synonym_matches"`
	PriorityAdditions []string `json:"priority_additions"`
}

// ParseGapAnalysis decodes a model reply into a gap analysis. An enclosing
// markdown code fence is stripped; what remains must be exactly one JSON
// object. Absent fields stay empty.
func ParseGapAnalysis(raw string) (models.GapAnalysis, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return models.GapAnalysis{}, errors.New("empty model response")
	}
	if !strings.HasPrefix(cleaned, "{") || !strings.HasSuffix(cleaned, "}") {
		return models.GapAnalysis{}, errors.New("model response is not a JSON object")
	}

	decoder := json.NewDecoder(strings.NewReader(cleaned))

	var payload gapAnalysisPayload
	if err := decoder.Decode(&payload); err != nil {
		return models.GapAnalysis{}, fmt.Errorf("failed to unmarshal gap analysis: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return models.GapAnalysis{}, errors.New("unexpected data after gap analysis object")
	}

	return models.GapAnalysis{
		Source:            models.GapSourceParsed,
		MatchAnalysis:     strings.TrimSpace(payload.MatchAnalysis),
		MissingCritical:   nonNil(payload.MissingCritical),
		Recommendations:   nonNil(payload.Recommendations),
		SynonymMatches:    nonNil(payload.SynonymMatches),
		PriorityAdditions: nonNil(payload.PriorityAdditions),
	}, nil
}

// FallbackGapAnalysis builds the analysis from the keyword sets alone.
func FallbackGapAnalysis(cvKeywords, jobKeywords []string) models.GapAnalysis {
	missing := AnalyzeKeywords(cvKeywords, jobKeywords).Missing

	return models.GapAnalysis{
		Source:            models.GapSourceFallback,
		MatchAnalysis:     fallbackMatchAnalysis,
		MissingCritical:   headCopy(missing, fallbackCriticalLimit),
		Recommendations:   headCopy(fallbackRecommendations, len(fallbackRecommendations)),
		SynonymMatches:    []string{},
		PriorityAdditions: headCopy(missing, fallbackPriorityLimit),
	}
}

// extractJSON strips a markdown code fence wrapping the whole reply.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```JSON")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	}
	return strings.TrimSpace(raw)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func headCopy(items []string, n int) []string {
	head := firstN(items, n)
	out := make([]string, len(head))
	copy(out, head)
	return out
}
