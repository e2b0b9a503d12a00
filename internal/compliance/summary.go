package compliance

// Summarize scores findings and tallies them by severity and service.
// It fails under the same conditions as ComputeScore.
func Summarize(findings []Finding, weights WeightTable, maxScore float64) (Summary, error) {
	score, err := ComputeScore(findings, weights, maxScore)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Score:                score,
		Posture:              PostureFor(score.Score, score.MaxScore),
		TotalFindings:        len(findings),
		TotalRecommendations: len(findings),
		ByService:            make(map[Service]int),
	}
	for _, f := range findings {
		switch f.Severity {
		case SeverityCritical:
			s.CriticalCount++
		case SeverityHigh:
			s.HighCount++
		case SeverityMedium:
			s.MediumCount++
		case SeverityLow:
			s.LowCount++
		case SeverityInfo:
			s.InfoCount++
		}
		s.ByService[f.Service]++
	}
	return s, nil
}

// FilterBySeverity keeps findings at or above min. Findings with an unknown
// severity are kept so that scoring still reports them.
func FilterBySeverity(findings []Finding, min Severity) []Finding {
	if !min.Valid() {
		return findings
	}
	var result []Finding
	for _, f := range findings {
		if !f.Severity.Valid() || f.Severity.Rank() >= min.Rank() {
			result = append(result, f)
		}
	}
	return result
}
