package services

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"alfredoptarigan/pdf2ai/internal/logger"
)

const minKeywordLength = 3

type KeywordExtractor interface {
	ExtractKeywords(ctx context.Context, text, contextLabel string) []string
}

type keywordExtractor struct {
	invoker       ModelInvoker
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewKeywordExtractor(invoker ModelInvoker, log *zap.Logger) KeywordExtractor {
	return &keywordExtractor{
		invoker:       invoker,
		promptBuilder: NewPromptBuilder(),
		logger:        logger.OrNop(log),
	}
}

// ExtractKeywords asks the model for a comma-separated keyword list. A failed
// call or an empty reply yields an empty list.
func (k *keywordExtractor) ExtractKeywords(ctx context.Context, text, contextLabel string) []string {
	prompt := k.promptBuilder.BuildKeywordPrompt(text, contextLabel)

	reply, err := k.invoker.Invoke(ctx, prompt)
	if err != nil {
		k.logger.Warn("keyword extraction failed",
			zap.String("context", contextLabel),
			zap.Error(err),
		)
		return []string{}
	}

	keywords := ParseKeywords(reply)
	k.logger.Debug("keywords extracted",
		zap.String("context", contextLabel),
		zap.Int("count", len(keywords)),
	)
	return keywords
}

// ParseKeywords splits a comma-separated model reply into normalized keywords.
func ParseKeywords(reply string) []string {
	if strings.TrimSpace(reply) == "" {
		return []string{}
	}
	return NormalizeKeywords(strings.Split(reply, ","))
}

// NormalizeKeywords trims and lower-cases each token and keeps only tokens
// longer than two characters made of letters and spaces. Order and duplicates
// are preserved. Tokens such as "c++" or "python3" are dropped.
func NormalizeKeywords(tokens []string) []string {
	keywords := make([]string, 0, len(tokens))
	for _, token := range tokens {
		kw := strings.ToLower(strings.TrimSpace(token))
		if !isKeyword(kw) {
			continue
		}
		keywords = append(keywords, kw)
	}
	return keywords
}

func isKeyword(token string) bool {
	if utf8.RuneCountInString(token) < minKeywordLength {
		return false
	}
	for _, r := range token {
		if r != ' ' && !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
