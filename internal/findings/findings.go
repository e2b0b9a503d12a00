// Package findings reads, hashes, and normalizes findings documents produced
// by the AWS inspection step.
package findings

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Chris443C/AWS-Log-Management-Review/internal/compliance"
)

// Format names the document layout a findings file was parsed from.
type Format string

const (
	FormatArray   Format = "array"
	FormatWrapped Format = "wrapped"
	FormatLegacy  Format = "legacy"
)

// Document holds a loaded findings file with its content and metadata.
type Document struct {
	FilePath  string
	Hash      string
	Format    Format
	Findings  []compliance.Finding
	Resources map[compliance.Service][]string
	Warnings  []string
}

// Load reads a findings file and computes its SHA-256 hash.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("findings.Load: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("findings.Load: %s: %w", path, err)
	}
	doc.FilePath = path
	return doc, nil
}

// Parse decodes a findings document. Three layouts are accepted:
//
//	[ {finding}, ... ]
//	{ "findings": [ {finding}, ... ], "resources": { "S3": ["bucket"] } }
//	{ "cloudtrail": { "issues": [...] }, "s3_logging": {...}, ... }
//
// The last is the analyzer's native per-section layout; it may also appear
// nested under "findings".
func Parse(data []byte) (*Document, error) {
	h := sha256.Sum256(data)
	doc := &Document{
		Hash:      fmt.Sprintf("sha256:%x", h),
		Resources: make(map[compliance.Service][]string),
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	switch trimmed[0] {
	case '[':
		doc.Format = FormatArray
		if err := json.Unmarshal(trimmed, &doc.Findings); err != nil {
			return nil, fmt.Errorf("decode findings array: %w", err)
		}
	case '{':
		var top map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &top); err != nil {
			return nil, fmt.Errorf("decode findings object: %w", err)
		}
		if err := parseObject(doc, top); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("expected a JSON array or object")
	}

	if doc.Findings == nil {
		doc.Findings = []compliance.Finding{}
	}
	return doc, nil
}

func parseObject(doc *Document, top map[string]json.RawMessage) error {
	inner, ok := top["findings"]
	if !ok {
		doc.Format = FormatLegacy
		return parseLegacy(doc, top)
	}

	inner = bytes.TrimSpace(inner)
	if len(inner) > 0 && inner[0] == '{' {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(inner, &nested); err != nil {
			return fmt.Errorf("decode nested findings: %w", err)
		}
		doc.Format = FormatLegacy
		return parseLegacy(doc, nested)
	}

	doc.Format = FormatWrapped
	if err := json.Unmarshal(inner, &doc.Findings); err != nil {
		return fmt.Errorf("decode findings: %w", err)
	}
	if raw, ok := top["resources"]; ok {
		var res map[compliance.Service][]string
		if err := json.Unmarshal(raw, &res); err != nil {
			return fmt.Errorf("decode resources: %w", err)
		}
		for svc, names := range res {
			doc.Resources[svc] = append(doc.Resources[svc], names...)
		}
	}
	return nil
}

// legacySection describes one section of the analyzer's native layout.
type legacySection struct {
	key       string
	service   compliance.Service
	resources string
}

var legacySections = []legacySection{
	{"cloudtrail", compliance.ServiceCloudTrail, ""},
	{"s3_logging", compliance.ServiceS3, "buckets_without_logging"},
	{"cloudwatch_logs", compliance.ServiceCloudWatch, "log_groups_without_retention"},
	{"rds_logging", compliance.ServiceRDS, "instances_without_logging"},
	{"iam_logging", compliance.ServiceIAM, ""},
}

// legacyMeta are top-level keys that carry run metadata, not findings.
var legacyMeta = map[string]bool{"timestamp": true, "total_issues": true}

type legacyIssue struct {
	Severity       compliance.Severity `json:"severity"`
	Description    string              `json:"description"`
	PCIReference   string              `json:"pci_reference"`
	Recommendation string              `json:"recommendation"`
}

func parseLegacy(doc *Document, sections map[string]json.RawMessage) error {
	known := make(map[string]bool)
	for _, sec := range legacySections {
		known[sec.key] = true
		raw, ok := sections[sec.key]
		if !ok {
			continue
		}
		var body map[string]json.RawMessage
		if err := json.Unmarshal(raw, &body); err != nil {
			return fmt.Errorf("decode section %s: %w", sec.key, err)
		}

		if issuesRaw, ok := body["issues"]; ok {
			var issues []legacyIssue
			if err := json.Unmarshal(issuesRaw, &issues); err != nil {
				return fmt.Errorf("decode %s.issues: %w", sec.key, err)
			}
			prefix := strings.ToUpper(string(sec.service))
			for i, iss := range issues {
				doc.Findings = append(doc.Findings, compliance.Finding{
					ID:              fmt.Sprintf("%s-%03d", prefix, i+1),
					Service:         sec.service,
					Severity:        iss.Severity,
					Description:     iss.Description,
					RequirementRef:  iss.PCIReference,
					RemediationHint: iss.Recommendation,
				})
			}
		}

		if sec.resources == "" {
			continue
		}
		if resRaw, ok := body[sec.resources]; ok {
			var names []string
			if err := json.Unmarshal(resRaw, &names); err != nil {
				return fmt.Errorf("decode %s.%s: %w", sec.key, sec.resources, err)
			}
			doc.Resources[sec.service] = append(doc.Resources[sec.service], names...)
		}
	}

	var unknown []string
	for key := range sections {
		if !known[key] && !legacyMeta[key] && key != "recommendations" {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		doc.Warnings = append(doc.Warnings, fmt.Sprintf("ignored unknown section %q", key))
	}
	return nil
}
