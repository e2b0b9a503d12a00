package findings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Chris443C/AWS-Log-Management-Review/internal/compliance"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "findings.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadArray(t *testing.T) {
	path := writeTempFile(t, `[
  {"id": "F-1", "service": "cloudtrail", "severity": "CRITICAL", "description": "No trails", "requirement_ref": "10.2.1-10.2.7"},
  {"id": "F-2", "service": "S3", "severity": "medium", "description": "Bucket logs off", "requirement_ref": "10.2.1", "remediation_hint": "Enable access logging"}
]`)

	doc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Format != FormatArray {
		t.Errorf("format = %s, want array", doc.Format)
	}
	if len(doc.Findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(doc.Findings))
	}
	f := doc.Findings[0]
	if f.Service != compliance.ServiceCloudTrail {
		t.Errorf("service = %q, want CloudTrail", f.Service)
	}
	if f.Severity != compliance.SeverityCritical {
		t.Errorf("severity = %q, want critical", f.Severity)
	}
	if doc.Findings[1].RemediationHint != "Enable access logging" {
		t.Errorf("hint = %q", doc.Findings[1].RemediationHint)
	}
	if !strings.HasPrefix(doc.Hash, "sha256:") {
		t.Errorf("expected sha256 prefix, got %s", doc.Hash)
	}
	if doc.FilePath != path {
		t.Errorf("file path = %q", doc.FilePath)
	}
}

func TestParseKeepsUnknownValues(t *testing.T) {
	doc, err := Parse([]byte(`[{"id": "F-1", "service": "Lambda", "severity": "Catastrophic"}]`))
	if err != nil {
		t.Fatal(err)
	}
	f := doc.Findings[0]
	if f.Service != "Lambda" {
		t.Errorf("service = %q, want Lambda kept verbatim", f.Service)
	}
	if f.Severity != "catastrophic" {
		t.Errorf("severity = %q, want catastrophic", f.Severity)
	}
}

func TestParseWrapped(t *testing.T) {
	doc, err := Parse([]byte(`{
  "findings": [{"id": "F-1", "service": "S3", "severity": "low", "description": "d", "requirement_ref": "10.2.1"}],
  "resources": {"s3": ["logs-bucket", "data-bucket"]}
}`))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Format != FormatWrapped {
		t.Errorf("format = %s, want wrapped", doc.Format)
	}
	if len(doc.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(doc.Findings))
	}
	if got := doc.Resources[compliance.ServiceS3]; len(got) != 2 {
		t.Errorf("S3 resources = %v", got)
	}
}

const legacyDoc = `{
  "cloudtrail": {
    "enabled": false,
    "issues": [
      {"severity": "HIGH", "description": "No CloudTrail trails found", "pci_reference": "10.2.1-10.2.7", "recommendation": "Enable CloudTrail for API activity logging"}
    ]
  },
  "s3_logging": {
    "buckets_analyzed": 2,
    "buckets_without_logging": ["a", "b"],
    "issues": [
      {"severity": "MEDIUM", "description": "S3 bucket a does not have access logging enabled", "pci_reference": "10.2.1", "recommendation": "Enable access logging for bucket a"},
      {"severity": "MEDIUM", "description": "S3 bucket b does not have access logging enabled", "pci_reference": "10.2.1", "recommendation": "Enable access logging for bucket b"}
    ]
  },
  "cloudwatch_logs": {"log_groups": 1, "log_groups_without_retention": ["/aws/lambda/x"], "issues": []},
  "lambda_logging": {"issues": []},
  "timestamp": "2025-01-01T00:00:00",
  "total_issues": 3
}`

func TestParseLegacy(t *testing.T) {
	doc, err := Parse([]byte(legacyDoc))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Format != FormatLegacy {
		t.Errorf("format = %s, want legacy", doc.Format)
	}
	if len(doc.Findings) != 3 {
		t.Fatalf("expected 3 findings, got %d", len(doc.Findings))
	}
	wantIDs := []string{"CLOUDTRAIL-001", "S3-001", "S3-002"}
	for i, id := range wantIDs {
		if doc.Findings[i].ID != id {
			t.Errorf("[%d].ID = %q, want %q", i, doc.Findings[i].ID, id)
		}
	}
	ct := doc.Findings[0]
	if ct.Severity != compliance.SeverityHigh || ct.RequirementRef != "10.2.1-10.2.7" {
		t.Errorf("unexpected CloudTrail finding: %+v", ct)
	}
	if ct.RemediationHint != "Enable CloudTrail for API activity logging" {
		t.Errorf("hint = %q", ct.RemediationHint)
	}
	if got := doc.Resources[compliance.ServiceS3]; len(got) != 2 {
		t.Errorf("S3 resources = %v", got)
	}
	if got := doc.Resources[compliance.ServiceCloudWatch]; len(got) != 1 || got[0] != "/aws/lambda/x" {
		t.Errorf("CloudWatch resources = %v", got)
	}
	if len(doc.Warnings) != 1 || !strings.Contains(doc.Warnings[0], "lambda_logging") {
		t.Errorf("warnings = %v", doc.Warnings)
	}
}

func TestParseAnalyzerOutput(t *testing.T) {
	data := `{"findings": ` + legacyDoc + `, "recommendations": []}`
	doc, err := Parse([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Format != FormatLegacy || len(doc.Findings) != 3 {
		t.Errorf("format = %s, findings = %d", doc.Format, len(doc.Findings))
	}
}

func TestParseEmptyArray(t *testing.T) {
	doc, err := Parse([]byte("[]"))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Findings == nil || len(doc.Findings) != 0 {
		t.Errorf("expected empty non-nil findings, got %v", doc.Findings)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", "   "},
		{"scalar", "42"},
		{"bad json", "[{"},
		{"bad section", `{"cloudtrail": {"issues": "nope"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/findings.json")
	if err == nil {
		t.Error("expected error for missing file")
	}
}
