// Package schema validates findings input and report output for structural
// consistency.
package schema

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Chris443C/AWS-Log-Management-Review/internal/compliance"
)

// ValidationError describes a single schema violation.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// ValidateFindings checks each finding for required fields, known enum
// values, and unique IDs.
func ValidateFindings(findings []compliance.Finding) []ValidationError {
	var errs []ValidationError

	ids := make(map[string]bool)
	for i, f := range findings {
		prefix := fmt.Sprintf("findings[%d]", i)
		if f.ID == "" {
			errs = append(errs, ValidationError{prefix + ".id", "required"})
		} else if hasControl(f.ID) {
			errs = append(errs, ValidationError{prefix + ".id", fmt.Sprintf("contains control characters: %q", f.ID)})
		} else if ids[f.ID] {
			errs = append(errs, ValidationError{prefix + ".id", fmt.Sprintf("duplicate ID: %q", f.ID)})
		} else {
			ids[f.ID] = true
		}
		if f.Severity == "" {
			errs = append(errs, ValidationError{prefix + ".severity", "required"})
		} else if !f.Severity.Valid() {
			errs = append(errs, ValidationError{prefix + ".severity", fmt.Sprintf("invalid: %q", f.Severity)})
		}
		if !f.Service.Valid() {
			errs = append(errs, ValidationError{prefix + ".service", fmt.Sprintf("invalid: %q", f.Service)})
		}
		if f.Description == "" {
			errs = append(errs, ValidationError{prefix + ".description", "required"})
		}
		if hasControl(f.RequirementRef) {
			errs = append(errs, ValidationError{prefix + ".requirement_ref", fmt.Sprintf("contains control characters: %q", f.RequirementRef)})
		}
	}

	return errs
}

// hasControl reports whether s contains control characters such as newlines.
// IDs and refs are copied into single-line outputs.
func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// ValidateReport checks that a report's summary and recommendations agree
// with its findings and weights.
func ValidateReport(r *compliance.Report) []ValidationError {
	var errs []ValidationError

	if r.Tool == "" {
		errs = append(errs, ValidationError{"tool", "required"})
	}
	if r.Version == "" {
		errs = append(errs, ValidationError{"version", "required"})
	}
	if r.Meta.RunID == "" {
		errs = append(errs, ValidationError{"meta.run_id", "required"})
	}

	expected, err := compliance.Summarize(r.Findings, r.Weights, r.Summary.Score.MaxScore)
	if err != nil {
		errs = append(errs, ValidationError{"summary", err.Error()})
		return errs
	}
	if r.Summary.Score.Score != expected.Score.Score {
		errs = append(errs, ValidationError{"summary.compliance.score", fmt.Sprintf("score %g does not match computed %g", r.Summary.Score.Score, expected.Score.Score)})
	}
	if r.Summary.Posture != expected.Posture {
		errs = append(errs, ValidationError{"summary.posture", fmt.Sprintf("expected %s, got %s", expected.Posture, r.Summary.Posture)})
	}

	counts := []struct {
		path      string
		got, want int
	}{
		{"summary.total_findings", r.Summary.TotalFindings, expected.TotalFindings},
		{"summary.critical_count", r.Summary.CriticalCount, expected.CriticalCount},
		{"summary.high_count", r.Summary.HighCount, expected.HighCount},
		{"summary.medium_count", r.Summary.MediumCount, expected.MediumCount},
		{"summary.low_count", r.Summary.LowCount, expected.LowCount},
		{"summary.info_count", r.Summary.InfoCount, expected.InfoCount},
		{"summary.total_recommendations", r.Summary.TotalRecommendations, len(r.Recommendations)},
	}
	for _, c := range counts {
		if c.got != c.want {
			errs = append(errs, ValidationError{c.path, fmt.Sprintf("expected %d, got %d", c.want, c.got)})
		}
	}

	if len(r.Recommendations) != len(r.Findings) {
		errs = append(errs, ValidationError{"recommendations", fmt.Sprintf("expected one per finding (%d), got %d", len(r.Findings), len(r.Recommendations))})
	}
	for i := 1; i < len(r.Recommendations); i++ {
		prev, cur := r.Recommendations[i-1], r.Recommendations[i]
		if prev.Severity.Rank() < cur.Severity.Rank() {
			errs = append(errs, ValidationError{fmt.Sprintf("recommendations[%d]", i), fmt.Sprintf("%s ranked after %s", cur.Severity, prev.Severity)})
		}
	}

	return errs
}
