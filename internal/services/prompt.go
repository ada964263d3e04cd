package services

import (
	"fmt"
	"strings"
)

const (
	keywordTextLimit  = 3000
	gapKeywordLimit   = 50
	gapTextLimit      = 1000
	contextLabelPlain = "professional"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildKeywordPrompt creates prompt for keyword extraction from a CV or job advert
func (pb *PromptBuilder) BuildKeywordPrompt(text, contextLabel string) string {
	if strings.TrimSpace(contextLabel) == "" {
		contextLabel = contextLabelPlain
	}

	return fmt.Sprintf(`Please analyze the following %s text and extract the most important keywords and skills.
Focus on:
- Technical skills and technologies
- Professional competencies
- Industry-specific terms
- Job-relevant qualifications
- Tools and software
- Certifications and methodologies

Return only a comma-separated list of keywords, no explanations:

Text to analyze:
%s`, contextLabel, truncateRunes(text, keywordTextLimit))
}

// BuildGapAnalysisPrompt creates prompt for the structured keyword gap analysis
func (pb *PromptBuilder) BuildGapAnalysisPrompt(cvKeywords, jobKeywords []string, cvText, jobText string) string {
	return fmt.Sprintf(`Analyze this CV and job advert for keyword optimization. Provide a JSON response with the following structure:

{
    "match_analysis": "Brief analysis of how well the CV matches the job requirements",
    "missing_critical": ["list", "of", "most", "important", "missing", "keywords"],
    "recommendations": ["specific", "actionable", "recommendations"],
    "synonym_matches": ["keywords", "that", "are", "similar", "but", "different", "words"],
    "priority_additions": ["top", "3", "keywords", "to", "add", "immediately"]
}

CV Keywords: %s
Job Keywords: %s

Job Requirements Summary:
%s

CV Summary:
%s

Return ONLY the JSON object, no markdown formatting.`,
		strings.Join(firstN(cvKeywords, gapKeywordLimit), ", "),
		strings.Join(firstN(jobKeywords, gapKeywordLimit), ", "),
		truncateRunes(jobText, gapTextLimit),
		truncateRunes(cvText, gapTextLimit),
	)
}

// BuildSummaryPrompt creates prompt for a plain document summary
func (pb *PromptBuilder) BuildSummaryPrompt(text string) string {
	return "Summarize the following text concisely and clearly:\n\n" + text
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
