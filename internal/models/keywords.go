package models

// MatchTier is the qualitative label shown next to a match percentage.
type MatchTier string

const (
	TierNone      MatchTier = ""
	TierLow       MatchTier = "low"
	TierModerate  MatchTier = "moderate"
	TierGood      MatchTier = "good"
	TierExcellent MatchTier = "excellent"
)

// TierFor maps a match percentage onto its tier. Lower bounds are inclusive.
func TierFor(percentage float64) MatchTier {
	switch {
	case percentage < 30:
		return TierLow
	case percentage < 50:
		return TierModerate
	case percentage < 70:
		return TierGood
	default:
		return TierExcellent
	}
}

// Headline is the one-line verdict printed for a tier.
func (t MatchTier) Headline() string {
	switch t {
	case TierLow:
		return "💡 LOW - Significant keyword gaps identified"
	case TierModerate:
		return "⚠️  MODERATE - Good foundation, needs enhancement"
	case TierGood:
		return "👍 GOOD - Strong keyword alignment"
	case TierExcellent:
		return "🎉 EXCELLENT - Outstanding keyword coverage!"
	default:
		return ""
	}
}

// KeywordStats holds the set comparison between CV and job advert keywords.
// Matches and Missing follow the order of first appearance in the job list.
type KeywordStats struct {
	CVKeywordCount  int       `json:"cv_keyword_count"`
	JobKeywordCount int       `json:"job_keyword_count"`
	Matches         []string  `json:"matches"`
	Missing         []string  `json:"missing"`
	MatchPercentage float64   `json:"match_percentage"`
	HasJobKeywords  bool      `json:"has_job_keywords"`
	Tier            MatchTier `json:"tier,omitempty"`
}
