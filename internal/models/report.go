package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReportSection is one titled block of a rendered report.
type ReportSection struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// Report is an output-agnostic render tree; Text flattens it for terminals and plain bodies.
type Report struct {
	Title    string          `json:"title"`
	Sections []ReportSection `json:"sections"`
}

const reportRule = "============================================================"

func (r *Report) Text() string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(reportRule + "\n")
	b.WriteString(r.Title + "\n")
	b.WriteString(reportRule + "\n")

	for _, section := range r.Sections {
		b.WriteString("\n")
		if section.Title != "" {
			b.WriteString(section.Title + "\n")
		}
		for _, line := range section.Lines {
			b.WriteString("   " + line + "\n")
		}
	}

	b.WriteString("\n" + reportRule + "\n")
	return b.String()
}

// Section returns the section with the given title, if present.
func (r *Report) Section(title string) (ReportSection, bool) {
	if r == nil {
		return ReportSection{}, false
	}
	for _, s := range r.Sections {
		if s.Title == title {
			return s, true
		}
	}
	return ReportSection{}, false
}

// Comparison is the full outcome of one CV versus job advert run.
type Comparison struct {
	ID        uuid.UUID    `json:"id"`
	CVSource  string       `json:"cv_source"`
	Stats     KeywordStats `json:"stats"`
	Analysis  GapAnalysis  `json:"analysis"`
	Report    *Report      `json:"report"`
	CreatedAt time.Time    `json:"created_at"`
}
