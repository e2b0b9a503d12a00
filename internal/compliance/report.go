package compliance

// Evaluate builds the scoring sections of a report: summary, ranked
// recommendations, and checklist status. Metadata and input fields are left
// to the caller.
func Evaluate(findings []Finding, weights WeightTable, maxScore float64, reqs []Requirement) (*Report, error) {
	summary, err := Summarize(findings, weights, maxScore)
	if err != nil {
		return nil, err
	}
	if findings == nil {
		findings = []Finding{}
	}
	return &Report{
		Summary:         summary,
		Findings:        findings,
		Recommendations: RankRecommendations(findings),
		Requirements:    RequirementStatuses(reqs, findings),
		Weights:         weights,
	}, nil
}
