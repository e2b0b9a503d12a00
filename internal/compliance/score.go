package compliance

import (
	"fmt"
	"math"
)

// ComputeScore subtracts the weighted penalty of every finding from maxScore
// and floors the result at 0. Penalties are uncapped per finding, so a flood
// of low-severity findings can reach 0 just like critical ones.
//
// Any finding whose severity is unknown or missing from weights aborts the
// whole call with a *ConfigurationError. An empty finding set scores maxScore.
func ComputeScore(findings []Finding, weights WeightTable, maxScore float64) (ComplianceScore, error) {
	if !(maxScore > 0) || math.IsInf(maxScore, 0) {
		return ComplianceScore{}, &ConfigurationError{Reason: fmt.Sprintf("max score must be a positive finite number, got %g", maxScore)}
	}
	for sev, w := range weights {
		if err := CheckWeight(sev, w); err != nil {
			return ComplianceScore{}, err
		}
	}

	buckets := make(map[Severity]SeverityBucket)
	var penalty float64
	for _, f := range findings {
		if f.Severity == "" {
			return ComplianceScore{}, &ConfigurationError{FindingID: f.ID, Reason: "finding " + f.ID + " has no severity"}
		}
		if !f.Severity.Valid() {
			return ComplianceScore{}, &ConfigurationError{Severity: f.Severity, FindingID: f.ID, Reason: "unknown severity"}
		}
		w, ok := weights[f.Severity]
		if !ok {
			return ComplianceScore{}, &ConfigurationError{Severity: f.Severity, FindingID: f.ID, Reason: "no weight defined for severity"}
		}
		penalty += w
		b := buckets[f.Severity]
		b.Count++
		b.Penalty += w
		buckets[f.Severity] = b
	}

	score := maxScore - penalty
	if score < 0 {
		score = 0
	}
	return ComplianceScore{
		Score:        score,
		MaxScore:     maxScore,
		TotalPenalty: penalty,
		BySeverity:   buckets,
	}, nil
}

// CheckWeight rejects weights that are negative or not finite.
func CheckWeight(sev Severity, w float64) error {
	switch {
	case math.IsNaN(w) || math.IsInf(w, 0):
		return &ConfigurationError{Severity: sev, Reason: "non-finite weight for severity"}
	case w < 0:
		return &ConfigurationError{Severity: sev, Reason: "negative weight for severity"}
	}
	return nil
}
