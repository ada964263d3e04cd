package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/pdf2ai/internal/models"
	"alfredoptarigan/pdf2ai/mocks"
)

const gapReply = `{
  "match_analysis": "Solid backend profile",
  "missing_critical": ["kubernetes", "terraform"],
  "recommendations": ["Mention container orchestration"],
  "synonym_matches": ["postgres"],
  "priority_additions": ["kubernetes"]
}`

func TestParseGapAnalysisFencedJSON(t *testing.T) {
	analysis, err := ParseGapAnalysis("\n```json\n" + gapReply + "\n```\n")
	require.NoError(t, err)

	assert.Equal(t, models.GapSourceParsed, analysis.Source)
	assert.Equal(t, "Solid backend profile", analysis.MatchAnalysis)
	assert.Equal(t, []string{"kubernetes", "terraform"}, analysis.MissingCritical)
	assert.Equal(t, []string{"Mention container orchestration"}, analysis.Recommendations)
	assert.Equal(t, []string{"postgres"}, analysis.SynonymMatches)
	assert.Equal(t, []string{"kubernetes"}, analysis.PriorityAdditions)
	assert.False(t, analysis.IsFallback())
}

func TestParseGapAnalysisAbsentFieldsStayEmpty(t *testing.T) {
	analysis, err := ParseGapAnalysis(`{"match_analysis": "short"}`)
	require.NoError(t, err)

	assert.Equal(t, "short", analysis.MatchAnalysis)
	assert.NotNil(t, analysis.MissingCritical)
	assert.Empty(t, analysis.MissingCritical)
	assert.Empty(t, analysis.Recommendations)
	assert.Empty(t, analysis.SynonymMatches)
	assert.Empty(t, analysis.PriorityAdditions)
}

func TestParseGapAnalysisRejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "prose", raw: "I cannot help with that."},
		{name: "array", raw: `["kubernetes", "terraform"]`},
		{name: "wrong list type", raw: `{"missing_critical": "kubernetes"}`},
		{name: "wrong summary type", raw: `{"match_analysis": 42}`},
		{name: "truncated", raw: `{"match_analysis": "cut off", "missing_critical": ["a"`},
		{name: "object inside array", raw: `[{"match_analysis":"from inside an array","missing_critical":["x"]}]`},
		{name: "refusal quoting the format", raw: `I could not analyze this. Example format: {"match_analysis": "Brief analysis"} Sorry.`},
		{name: "prose around fence", raw: "Here you go:\n```json\n" + gapReply + "\n```\nGood luck!"},
		{name: "two objects", raw: `{"match_analysis": "first"} {"match_analysis": "second"}`},
		{name: "unterminated fence", raw: "```json\n{\"match_analysis\": \"open\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGapAnalysis(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestFallbackGapAnalysis(t *testing.T) {
	analysis := FallbackGapAnalysis([]string{"a", "b"}, []string{"a", "c", "d"})

	assert.Equal(t, models.GapSourceFallback, analysis.Source)
	assert.Equal(t, fallbackMatchAnalysis, analysis.MatchAnalysis)
	assert.Equal(t, []string{"c", "d"}, analysis.MissingCritical)
	assert.Equal(t, []string{"c", "d"}, analysis.PriorityAdditions)
	assert.Equal(t, []string{"Add missing keywords to your CV", "Focus on relevant experience"}, analysis.Recommendations)
	assert.NotNil(t, analysis.SynonymMatches)
	assert.Empty(t, analysis.SynonymMatches)

	assert.Equal(t, analysis, FallbackGapAnalysis([]string{"a", "b"}, []string{"a", "c", "d"}))
}

func TestFallbackGapAnalysisLimits(t *testing.T) {
	job := []string{"one", "two", "three", "four", "five", "six", "seven"}

	analysis := FallbackGapAnalysis(nil, job)

	assert.Equal(t, job[:5], analysis.MissingCritical)
	assert.Equal(t, job[:3], analysis.PriorityAdditions)
}

func TestGapAnalyzerFallsBackOnMalformedReply(t *testing.T) {
	invoker := new(mocks.MockModelInvoker)
	invoker.On("Invoke", mock.Anything, mock.Anything).Return("{not valid json", nil)

	analyzer := NewGapAnalyzer(invoker, nil)
	cv := []string{"a", "b"}
	job := []string{"a", "c", "d"}

	analysis := analyzer.Analyze(context.Background(), cv, job, "cv text", "job text")

	assert.Equal(t, FallbackGapAnalysis(cv, job), analysis)
	assert.Equal(t, []string{"c", "d"}, analysis.MissingCritical)
}

func TestGapAnalyzerFallsBackOnInvokerError(t *testing.T) {
	invoker := new(mocks.MockModelInvoker)
	invoker.On("Invoke", mock.Anything, mock.Anything).Return("", errors.New("timeout"))

	analyzer := NewGapAnalyzer(invoker, nil)

	analysis := analyzer.Analyze(context.Background(), []string{"go"}, []string{"rust"}, "", "")

	assert.True(t, analysis.IsFallback())
	assert.Equal(t, []string{"rust"}, analysis.MissingCritical)
}

func TestGapAnalyzerPromptContents(t *testing.T) {
	invoker := new(mocks.MockModelInvoker)

	cv := make([]string, 0, 60)
	for i := 0; i < 60; i++ {
		cv = append(cv, "skill")
	}

	invoker.On("Invoke", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, `"missing_critical"`) &&
			strings.Count(prompt, "skill") == gapKeywordLimit &&
			strings.Count(prompt, "ç") == gapTextLimit
	})).Return(gapReply, nil)

	analyzer := NewGapAnalyzer(invoker, nil)

	analysis := analyzer.Analyze(context.Background(), cv, []string{"kubernetes"}, strings.Repeat("ç", 2000), "job")

	assert.Equal(t, models.GapSourceParsed, analysis.Source)
	invoker.AssertExpectations(t)
}
