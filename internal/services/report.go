package services

import (
	"fmt"
	"sort"
	"strings"

	"alfredoptarigan/pdf2ai/internal/models"
)

const (
	ReportTitle = "🤖 AI KEYWORD ANALYSIS RESULTS"

	SectionStatistics      = "📈 STATISTICS:"
	SectionAnalysis        = "🧠 AI ANALYSIS:"
	SectionCritical        = "🔥 AI-IDENTIFIED CRITICAL MISSING KEYWORDS:"
	SectionSynonyms        = "🔄 AI-DETECTED SIMILAR CONCEPTS:"
	SectionRecommendations = "💼 AI-POWERED RECOMMENDATIONS:"
	SectionPriority        = "🎯 IMMEDIATE PRIORITY ADDITIONS:"
	SectionNextSteps       = "🚀 NEXT STEPS:"

	matchingPerRow       = 4
	criticalDisplayLimit = 10
	synonymDisplayLimit  = 5
	recommendationLimit  = 5
)

var nextSteps = []string{
	"1. Add the priority keywords to your CV",
	"2. Incorporate missing keywords naturally into job descriptions",
	"3. Update your skills section with relevant technologies",
	"4. Use keyword variations to avoid over-repetition",
	"5. Re-run this analysis after updates to track improvement",
}

// RenderReport lays out the comparison results. Empty optional sections are omitted.
func RenderReport(stats models.KeywordStats, gaps models.GapAnalysis) *models.Report {
	report := &models.Report{Title: ReportTitle}

	report.Sections = append(report.Sections, models.ReportSection{
		Title: SectionStatistics,
		Lines: []string{
			fmt.Sprintf("• AI-extracted CV keywords: %d", stats.CVKeywordCount),
			fmt.Sprintf("• AI-extracted job keywords: %d", stats.JobKeywordCount),
			fmt.Sprintf("• Direct keyword matches: %d", len(stats.Matches)),
			fmt.Sprintf("• Missing keywords: %d", len(stats.Missing)),
		},
	})

	if stats.HasJobKeywords {
		report.Sections = append(report.Sections, models.ReportSection{
			Title: ScoreSectionTitle(stats.MatchPercentage),
			Lines: []string{stats.Tier.Headline()},
		})
	}

	if summary := strings.TrimSpace(gaps.MatchAnalysis); summary != "" {
		report.Sections = append(report.Sections, models.ReportSection{
			Title: SectionAnalysis,
			Lines: []string{summary},
		})
	}

	if len(stats.Matches) > 0 {
		report.Sections = append(report.Sections, models.ReportSection{
			Title: MatchingSectionTitle(len(stats.Matches)),
			Lines: matchingRows(stats.Matches),
		})
	}

	if len(gaps.MissingCritical) > 0 {
		critical := firstN(gaps.MissingCritical, criticalDisplayLimit)
		lines := make([]string, 0, len(critical))
		for i, kw := range critical {
			lines = append(lines, fmt.Sprintf("%2d. %s", i+1, kw))
		}
		report.Sections = append(report.Sections, models.ReportSection{Title: SectionCritical, Lines: lines})
	}

	if len(gaps.SynonymMatches) > 0 {
		synonyms := firstN(gaps.SynonymMatches, synonymDisplayLimit)
		lines := make([]string, 0, len(synonyms))
		for _, kw := range synonyms {
			lines = append(lines, "• "+kw)
		}
		report.Sections = append(report.Sections, models.ReportSection{Title: SectionSynonyms, Lines: lines})
	}

	if len(gaps.Recommendations) > 0 {
		recommendations := firstN(gaps.Recommendations, recommendationLimit)
		lines := make([]string, 0, len(recommendations))
		for i, rec := range recommendations {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, rec))
		}
		report.Sections = append(report.Sections, models.ReportSection{Title: SectionRecommendations, Lines: lines})
	}

	if len(gaps.PriorityAdditions) > 0 {
		report.Sections = append(report.Sections, models.ReportSection{
			Title: SectionPriority,
			Lines: []string{"Add these keywords ASAP: " + strings.Join(gaps.PriorityAdditions, ", ")},
		})
	}

	report.Sections = append(report.Sections, models.ReportSection{
		Title: SectionNextSteps,
		Lines: append([]string(nil), nextSteps...),
	})

	return report
}

func ScoreSectionTitle(percentage float64) string {
	return fmt.Sprintf("🎯 AI KEYWORD MATCH SCORE: %.1f%%", percentage)
}

func MatchingSectionTitle(count int) string {
	return fmt.Sprintf("✅ MATCHING KEYWORDS (%d):", count)
}

func matchingRows(matches []string) []string {
	sorted := append([]string(nil), matches...)
	sort.Strings(sorted)

	rows := make([]string, 0, (len(sorted)+matchingPerRow-1)/matchingPerRow)
	for i := 0; i < len(sorted); i += matchingPerRow {
		end := i + matchingPerRow
		if end > len(sorted) {
			end = len(sorted)
		}

		cells := make([]string, 0, end-i)
		for _, kw := range sorted[i:end] {
			cells = append(cells, fmt.Sprintf("%-15s", kw))
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return rows
}
