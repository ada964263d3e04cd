package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	quitCommand        = "quit"
	blankLinesToFinish = 2
)

var (
	ErrEmptyPath      = errors.New("please provide a PDF file path")
	ErrNotPDF         = errors.New("please provide a valid PDF file (must end with .pdf)")
	ErrJobAdvertInput = errors.New("reading job advert")
)

// ValidatePDFPath trims and expands a user supplied path and checks that it
// names an existing .pdf file.
func ValidatePDFPath(raw string) (string, error) {
	path := strings.TrimSpace(raw)
	if path == "" {
		return "", ErrEmptyPath
	}

	path, err := expandHome(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("PDF file '%s' not found, please check the path and try again", path)
	}
	if info.IsDir() {
		return "", fmt.Errorf("'%s' is a directory", path)
	}

	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return "", ErrNotPDF
	}

	return path, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ReadJobAdvert captures pasted text until two consecutive blank lines or EOF.
// A line reading "quit" cancels the capture and returns an empty string.
// When r is a *bufio.Reader nothing past the final line is consumed.
func ReadJobAdvert(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 60))
	fmt.Fprintln(w, "JOB ADVERT INPUT")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "Please paste the job advert text below.")
	fmt.Fprintln(w, "When finished, press Enter twice (empty line) to continue:")
	fmt.Fprintln(w, "(Or type 'quit' to cancel)")
	fmt.Fprintln(w, strings.Repeat("-", 60))

	reader := sharedReader(r)

	var lines []string
	blank := 0

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %w", ErrJobAdvertInput, err)
		}
		if line == "" && err != nil {
			break
		}

		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		trimmed := strings.TrimSpace(line)

		if strings.EqualFold(trimmed, quitCommand) {
			fmt.Fprintln(w, "Input cancelled.")
			return "", nil
		}
		if trimmed == "" {
			blank++
			if blank >= blankLinesToFinish {
				break
			}
		} else {
			blank = 0
		}
		lines = append(lines, line)

		if err != nil {
			break
		}
	}

	text := strings.TrimSpace(strings.Join(lines, "\n"))
	fmt.Fprintf(w, "\n✓ Job advert captured: %d characters\n", utf8.RuneCountInString(text))
	return text, nil
}

func sharedReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}
