package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Chris443C/AWS-Log-Management-Review/internal/compliance"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

func sampleReport(t *testing.T) *compliance.Report {
	t.Helper()
	findings := []compliance.Finding{
		{ID: "CLOUDTRAIL-001", Service: compliance.ServiceCloudTrail, Severity: compliance.SeverityCritical,
			Description: "No CloudTrail trails found", RequirementRef: "10.2.1-10.2.7"},
		{ID: "S3-001", Service: compliance.ServiceS3, Severity: compliance.SeverityMedium,
			Description: "Bucket <logs> | missing access logging", RequirementRef: "10.2.1",
			RemediationHint: "Enable access logging for bucket logs"},
	}
	reqs := []compliance.Requirement{
		{Ref: "10.2.1", Description: "Audit logs capture user access"},
		{Ref: "10.5.1.2", Description: "Retain audit logs for 12 months"},
	}
	r, err := compliance.Evaluate(findings, compliance.DefaultWeights(), compliance.DefaultMaxScore, reqs)
	if err != nil {
		t.Fatal(err)
	}
	r.Tool = "logreview"
	r.Version = "1.0"
	r.Meta.RunID = "run-1"
	r.Meta.Standard = "PCI DSS v4.0.1"
	return r
}

func emptyReport(t *testing.T) *compliance.Report {
	t.Helper()
	r, err := compliance.Evaluate(nil, compliance.DefaultWeights(), compliance.DefaultMaxScore, nil)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleReport(t))

	checks := []string{
		"# AWS Log Management Review",
		"**Standard:** PCI DSS v4.0.1",
		"**Compliance Score:** 86 / 100",
		"**Risk Posture:** MODERATE",
		"1 critical, 0 high, 1 medium, 0 low, 0 info",
		"## Severity Breakdown",
		"| critical | 1 | 10 |",
		"| **total** | **2** | **14** |",
		"1. **[P1 / critical]**",
		"2. **[P3 / medium]** Enable access logging for bucket logs",
		"req 10.2.1-10.2.7",
		"Bucket <logs> \\| missing access logging",
		"## Requirement Status",
		"| 10.2.1 | Audit logs capture user access | ✗ Non-Compliant |",
		"| 10.5.1.2 | Retain audit logs for 12 months | ✓ Compliant |",
	}
	for _, c := range checks {
		if !strings.Contains(md, c) {
			t.Errorf("markdown missing %q", c)
		}
	}
}

func TestMarkdownNoFindings(t *testing.T) {
	md := Markdown(emptyReport(t))
	if !strings.Contains(md, "No findings. All checks passed.") {
		t.Error("expected empty-findings message")
	}
	if strings.Contains(md, "## Recommendations") {
		t.Error("recommendations section should be omitted")
	}
	if !strings.Contains(md, "**Compliance Score:** 100 / 100") {
		t.Error("expected perfect score")
	}
}

func TestJSON(t *testing.T) {
	data, err := JSON(sampleReport(t))
	if err != nil {
		t.Fatal(err)
	}
	var decoded compliance.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Summary.Score.Score != 86 {
		t.Errorf("score = %g, want 86", decoded.Summary.Score.Score)
	}
	if len(decoded.Recommendations) != 2 || decoded.Recommendations[0].FindingRef != "CLOUDTRAIL-001" {
		t.Errorf("recommendations = %+v", decoded.Recommendations)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Error("expected trailing newline")
	}
	if !bytes.Contains(data, []byte(`"compliance": {`)) {
		t.Error("expected compliance key in summary")
	}
}

func TestYAML(t *testing.T) {
	data, err := YAML(sampleReport(t))
	if err != nil {
		t.Fatal(err)
	}
	var decoded compliance.Report
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.Summary.Posture != compliance.PostureModerate {
		t.Errorf("posture = %s, want MODERATE", decoded.Summary.Posture)
	}
	if decoded.Meta.RunID != "run-1" {
		t.Errorf("run id = %q", decoded.Meta.RunID)
	}
}

func TestHTML(t *testing.T) {
	data, err := HTML(sampleReport(t))
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)

	checks := []string{
		"<!DOCTYPE html>",
		"Standard: PCI DSS v4.0.1",
		"Compliance Score: 86 / 100",
		`class="posture-MODERATE"`,
		"<td>P1</td>",
		"Enable access logging for bucket logs",
		"Bucket &lt;logs&gt; | missing access logging",
		"Non-Compliant (CLOUDTRAIL-001, S3-001)",
		"&#10003; Compliant",
	}
	for _, c := range checks {
		if !strings.Contains(html, c) {
			t.Errorf("html missing %q", c)
		}
	}
	if strings.Contains(html, "<logs>") {
		t.Error("finding text must be escaped")
	}
}

func TestHTMLNoFindings(t *testing.T) {
	data, err := HTML(emptyReport(t))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "No findings. All checks passed.") {
		t.Error("expected empty-findings message")
	}
}

func TestConsole(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	Console(&buf, sampleReport(t), 1)
	out := buf.String()

	checks := []string{
		"Compliance score: 86 / 100 (MODERATE)",
		"Findings: 2  Recommendations: 2",
		"P1 critical [CloudTrail]",
		"...and 1 more",
		"1/2 requirements compliant",
	}
	for _, c := range checks {
		if !strings.Contains(out, c) {
			t.Errorf("console output missing %q\n%s", c, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("expected no escape codes with color disabled")
	}
}
