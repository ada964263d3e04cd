package models

// GapSource tells whether a gap analysis came from the model or from the fallback.
type GapSource string

const (
	GapSourceParsed   GapSource = "parsed"
	GapSourceFallback GapSource = "fallback"
)

// GapAnalysis is the structured keyword gap assessment. Any list may be empty.
type GapAnalysis struct {
	Source            GapSource `json:"source"`
	MatchAnalysis     string    `json:"match_analysis"`
	MissingCritical   []string  `json:"missing_critical"`
	Recommendations   []string  `json:"recommendations"`
	SynonymMatches    []string  `json:"synonym_matches"`
	PriorityAdditions []string  `json:"priority_additions"`
}

// IsFallback reports whether the analysis was computed without the model.
func (g GapAnalysis) IsFallback() bool {
	return g.Source == GapSourceFallback
}
