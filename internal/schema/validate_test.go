package schema

import (
	"strings"
	"testing"

	"github.com/Chris443C/AWS-Log-Management-Review/internal/compliance"
)

func validFindings() []compliance.Finding {
	return []compliance.Finding{
		{ID: "CT-1", Service: compliance.ServiceCloudTrail, Severity: compliance.SeverityCritical, Description: "No trails", RequirementRef: "10.2.1-10.2.7"},
		{ID: "S3-1", Service: compliance.ServiceS3, Severity: compliance.SeverityMedium, Description: "Bucket logs off", RequirementRef: "10.2.1"},
	}
}

func validReport(t *testing.T) *compliance.Report {
	t.Helper()
	r, err := compliance.Evaluate(validFindings(), compliance.DefaultWeights(), compliance.DefaultMaxScore, nil)
	if err != nil {
		t.Fatal(err)
	}
	r.Tool = "logreview"
	r.Version = "1.0"
	r.Meta.RunID = "run-1"
	return r
}

func TestValidateFindingsValid(t *testing.T) {
	for _, e := range ValidateFindings(validFindings()) {
		t.Errorf("unexpected error: %s", e)
	}
}

func TestValidateFindingsErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(fs []compliance.Finding)
		wantErr string
	}{
		{"missing id", func(fs []compliance.Finding) { fs[0].ID = "" }, "findings[0].id"},
		{"duplicate id", func(fs []compliance.Finding) { fs[1].ID = "CT-1" }, "duplicate"},
		{"missing severity", func(fs []compliance.Finding) { fs[0].Severity = "" }, "findings[0].severity: required"},
		{"bad severity", func(fs []compliance.Finding) { fs[1].Severity = "catastrophic" }, "catastrophic"},
		{"bad service", func(fs []compliance.Finding) { fs[0].Service = "Lambda" }, "findings[0].service"},
		{"missing description", func(fs []compliance.Finding) { fs[1].Description = "" }, "findings[1].description"},
		{"newline in id", func(fs []compliance.Finding) { fs[0].ID = "CT-1\ntouch /tmp/x" }, "findings[0].id: contains control characters"},
		{"newline in requirement ref", func(fs []compliance.Finding) { fs[1].RequirementRef = "10.2.1\r\necho hi" }, "findings[1].requirement_ref"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := validFindings()
			tt.mutate(fs)
			errs := ValidateFindings(fs)
			if len(errs) == 0 {
				t.Fatal("expected validation errors")
			}
			found := false
			for _, e := range errs {
				if strings.Contains(e.Error(), tt.wantErr) {
					found = true
				}
			}
			if !found {
				t.Errorf("no error containing %q in %v", tt.wantErr, errs)
			}
		})
	}
}

func TestValidateReportValid(t *testing.T) {
	for _, e := range ValidateReport(validReport(t)) {
		t.Errorf("unexpected error: %s", e)
	}
}

func TestValidateReportScoreMismatch(t *testing.T) {
	r := validReport(t)
	r.Summary.Score.Score = 99
	errs := ValidateReport(r)
	if len(errs) == 0 {
		t.Fatal("expected score mismatch error")
	}
	if errs[0].Path != "summary.compliance.score" {
		t.Errorf("path = %s", errs[0].Path)
	}
}

func TestValidateReportCountMismatch(t *testing.T) {
	r := validReport(t)
	r.Summary.CriticalCount = 5
	if len(ValidateReport(r)) == 0 {
		t.Error("expected count mismatch error")
	}
}

func TestValidateReportOrder(t *testing.T) {
	r := validReport(t)
	r.Recommendations[0], r.Recommendations[1] = r.Recommendations[1], r.Recommendations[0]
	errs := ValidateReport(r)
	if len(errs) == 0 {
		t.Fatal("expected ordering error")
	}
}

func TestValidateReportMissingMeta(t *testing.T) {
	r := validReport(t)
	r.Tool = ""
	r.Meta.RunID = ""
	if len(ValidateReport(r)) != 2 {
		t.Errorf("expected 2 errors, got %v", ValidateReport(r))
	}
}

func TestValidateReportBadWeights(t *testing.T) {
	r := validReport(t)
	r.Weights = compliance.WeightTable{compliance.SeverityCritical: 10}
	errs := ValidateReport(r)
	if len(errs) != 1 || errs[0].Path != "summary" {
		t.Errorf("expected single summary error, got %v", errs)
	}
}
