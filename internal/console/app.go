package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"alfredoptarigan/pdf2ai/internal/logger"
	"alfredoptarigan/pdf2ai/internal/services"
)

const (
	MenuSummarize = "📄 Summarise PDF - Get an AI-powered summary of your PDF"
	MenuCompare   = "🎯 Compare CV with Job - Compare your CV against a job advert"
	MenuExit      = "❌ Exit"

	completionBanner = "✨ AI Analysis Complete! Your CV is now optimized for ATS!"
)

// App drives the summarize and compare workflows for a terminal user.
type App struct {
	summarizer services.SummarizerService
	comparator services.ComparatorService
	logger     *zap.Logger
	in         *bufio.Reader
	out        io.Writer
	prompter   prompter
}

// NewApp reads all terminal input through one buffered reader shared by the
// menu prompts and the job advert capture.
func NewApp(
	summarizer services.SummarizerService,
	comparator services.ComparatorService,
	log *zap.Logger,
	in io.Reader,
	out io.Writer,
) *App {
	if in == nil {
		in = os.Stdin
	}
	shared := sharedReader(in)

	return &App{
		summarizer: summarizer,
		comparator: comparator,
		logger:     logger.OrNop(log),
		in:         shared,
		out:        out,
		prompter:   terminalPrompter{in: shared},
	}
}

// RunMenu shows the feature menu until the user exits or interrupts it.
// Failed actions are reported and the menu is shown again.
func (a *App) RunMenu(ctx context.Context) error {
	fmt.Fprintln(a.out, "\n🚀 PDF2AI - AI-Powered PDF Analysis and CV Optimization Tool")

	items := []string{MenuSummarize, MenuCompare, MenuExit}

	for {
		choice, err := a.prompter.Select("Choose a feature", items)
		if err != nil {
			if isInterrupt(err) {
				a.goodbye()
				return nil
			}
			return err
		}

		switch choice {
		case MenuExit:
			a.goodbye()
			return nil
		case MenuSummarize:
			path, err := a.prompter.PDFPath()
			if err != nil {
				if isInterrupt(err) {
					continue
				}
				return err
			}
			_ = a.Summarize(ctx, path)
		case MenuCompare:
			path, err := a.prompter.PDFPath()
			if err != nil {
				if isInterrupt(err) {
					continue
				}
				return err
			}

			fmt.Fprintf(a.out, "\n🎯 Starting CV-Job comparison with: %s\n", path)
			err = a.Compare(ctx, path, a.readJobAdvert)
			if errors.Is(err, ErrJobAdvertInput) {
				return err
			}
		}
	}
}

// Summarize prints the model summary of the PDF at path.
func (a *App) Summarize(ctx context.Context, path string) error {
	fmt.Fprintf(a.out, "\n🤖 Processing PDF: %s\n", path)
	fmt.Fprintf(a.out, "\n🤖 Generating AI summary using %s...\n", a.summarizer.Model())

	summary, err := a.summarizer.Summarize(ctx, path)
	if err != nil {
		a.reportError("summarize", err)
		return err
	}

	rule := strings.Repeat("=", 50)
	fmt.Fprintln(a.out, "\n"+rule)
	fmt.Fprintln(a.out, "📄 AI SUMMARY:")
	fmt.Fprintln(a.out, rule)
	fmt.Fprintln(a.out, summary.Text)
	fmt.Fprintln(a.out, rule)

	return nil
}

// Compare extracts the CV first and asks jobText for the advert only once
// the CV is known to be readable. It then prints the comparison report.
func (a *App) Compare(ctx context.Context, cvPath string, jobText func() (string, error)) error {
	cv, err := a.comparator.ExtractCV(cvPath)
	if err != nil {
		a.reportError("compare", err)
		return err
	}

	text, err := jobText()
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\n🤖 Analyzing CV and job advert...")

	comparison, err := a.comparator.CompareDocument(ctx, cv, text)
	if err != nil {
		a.reportError("compare", err)
		return err
	}

	fmt.Fprint(a.out, "\n"+comparison.Report.Text())
	fmt.Fprintln(a.out, completionBanner)

	return nil
}

func (a *App) readJobAdvert() (string, error) {
	return ReadJobAdvert(a.in, a.out)
}

func (a *App) reportError(action string, err error) {
	a.logger.Debug("action failed", zap.String("action", action), zap.Error(err))

	switch {
	case errors.Is(err, services.ErrExtractionFailed):
		fmt.Fprintf(a.out, "❌ Failed to extract text from PDF: %v\n", err)
	case errors.Is(err, services.ErrInputMissing):
		fmt.Fprintln(a.out, "❌ No job advert text provided.")
	case errors.Is(err, services.ErrInvocationFailed):
		fmt.Fprintf(a.out, "❌ Model call failed: %v\n", err)
	default:
		fmt.Fprintf(a.out, "❌ Error: %v\n", err)
	}
}

func (a *App) goodbye() {
	fmt.Fprintln(a.out, "\n👋 Goodbye!")
}

type prompter interface {
	Select(label string, items []string) (string, error)
	PDFPath() (string, error)
}

// terminalPrompter runs promptui prompts over the shared input.
type terminalPrompter struct {
	in *bufio.Reader
}

func (p terminalPrompter) Select(label string, items []string) (string, error) {
	menu := promptui.Select{
		Label: label,
		Items: items,
		Stdin: newLineGate(p.in),
	}

	_, choice, err := menu.Run()
	return choice, err
}

func (p terminalPrompter) PDFPath() (string, error) {
	prompt := promptui.Prompt{
		Label: "📄 Enter the path to your PDF file",
		Stdin: newLineGate(p.in),
		Validate: func(input string) error {
			_, err := ValidatePDFPath(input)
			return err
		},
	}

	raw, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return ValidatePDFPath(raw)
}

func isInterrupt(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF)
}
