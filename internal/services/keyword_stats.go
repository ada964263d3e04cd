package services

import "alfredoptarigan/pdf2ai/internal/models"

// AnalyzeKeywords compares the CV and job keyword sets. Counts are list
// lengths; matches, missing and the percentage are computed on sets.
func AnalyzeKeywords(cvKeywords, jobKeywords []string) models.KeywordStats {
	cvSet := make(map[string]struct{}, len(cvKeywords))
	for _, kw := range cvKeywords {
		cvSet[kw] = struct{}{}
	}

	jobSet := make(map[string]struct{}, len(jobKeywords))
	matches := []string{}
	missing := []string{}

	for _, kw := range jobKeywords {
		if _, seen := jobSet[kw]; seen {
			continue
		}
		jobSet[kw] = struct{}{}

		if _, ok := cvSet[kw]; ok {
			matches = append(matches, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	stats := models.KeywordStats{
		CVKeywordCount:  len(cvKeywords),
		JobKeywordCount: len(jobKeywords),
		Matches:         matches,
		Missing:         missing,
		HasJobKeywords:  len(jobSet) > 0,
	}

	if stats.HasJobKeywords {
		stats.MatchPercentage = float64(len(matches)) / float64(len(jobSet)) * 100
		stats.Tier = models.TierFor(stats.MatchPercentage)
	}

	return stats
}
