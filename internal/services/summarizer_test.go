package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/pdf2ai/mocks"
)

func TestSummarizeSuccess(t *testing.T) {
	parser := new(mocks.MockPDFParser)
	invoker := new(mocks.MockModelInvoker)

	parser.On("ExtractText", "report.pdf").Return("Quarterly numbers went up.", nil)
	invoker.On("Invoke", mock.Anything, "Summarize the following text concisely and clearly:\n\nQuarterly numbers went up.").
		Return("  Numbers rose.  ", nil)
	invoker.On("Model").Return("gemma3")

	summarizer := NewSummarizerService(parser, invoker, nil)

	summary, err := summarizer.Summarize(context.Background(), "report.pdf")
	require.NoError(t, err)

	assert.Equal(t, "Numbers rose.", summary.Text)
	assert.Equal(t, "report.pdf", summary.Source)
	assert.Equal(t, "gemma3", summary.Model)
	assert.Equal(t, "gemma3", summarizer.Model())
}

func TestSummarizeExtractionFailure(t *testing.T) {
	parser := new(mocks.MockPDFParser)
	invoker := new(mocks.MockModelInvoker)

	parser.On("ExtractText", "empty.pdf").Return("", fmt.Errorf("%w: no text content found in PDF", ErrExtractionFailed))

	summarizer := NewSummarizerService(parser, invoker, nil)

	_, err := summarizer.Summarize(context.Background(), "empty.pdf")
	assert.ErrorIs(t, err, ErrExtractionFailed)
	invoker.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything)
}

func TestSummarizeInvocationFailures(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{name: "invoker error", err: errors.New("connection refused")},
		{name: "empty reply", reply: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := new(mocks.MockPDFParser)
			invoker := new(mocks.MockModelInvoker)

			parser.On("ExtractText", "doc.pdf").Return("text", nil)
			invoker.On("Invoke", mock.Anything, mock.Anything).Return(tt.reply, tt.err)

			summarizer := NewSummarizerService(parser, invoker, nil)

			summary, err := summarizer.Summarize(context.Background(), "doc.pdf")
			assert.Nil(t, summary)
			assert.ErrorIs(t, err, ErrInvocationFailed)
		})
	}
}
