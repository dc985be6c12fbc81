package categorization

import "math"

// AccuracyStats buckets a batch of categorization verdicts by confidence.
// High is 80 and above, medium 40 to 79, low everything under 40.
type AccuracyStats struct {
	Total                  int            `json:"total"`
	HighConfidence         int            `json:"highConfidence"`
	MediumConfidence       int            `json:"mediumConfidence"`
	LowConfidence          int            `json:"lowConfidence"`
	Categories             map[string]int `json:"categories"`
	HighConfidencePercent  int            `json:"highConfidencePercent"`
	MediumConfidencePercent int           `json:"mediumConfidencePercent"`
	LowConfidencePercent   int            `json:"lowConfidencePercent"`
}

// AnalyzeAccuracy summarizes how confident the categorizer was across a
// batch. Percentages are rounded independently and may not sum to 100.
func AnalyzeAccuracy(infos []CategoryInfo) AccuracyStats {
	stats := AccuracyStats{
		Total:      len(infos),
		Categories: make(map[string]int),
	}
	for _, info := range infos {
		switch {
		case info.Confidence >= 80:
			stats.HighConfidence++
		case info.Confidence >= 40:
			stats.MediumConfidence++
		default:
			stats.LowConfidence++
		}
		stats.Categories[info.Category]++
	}
	if stats.Total > 0 {
		stats.HighConfidencePercent = percent(stats.HighConfidence, stats.Total)
		stats.MediumConfidencePercent = percent(stats.MediumConfidence, stats.Total)
		stats.LowConfidencePercent = percent(stats.LowConfidence, stats.Total)
	}
	return stats
}

func percent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}
