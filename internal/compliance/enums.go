package compliance

import (
	"fmt"
	"strings"
)

// Severity is the ordinal risk classification of a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Severities lists every known severity from most to least severe.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}

func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return true
	}
	return false
}

// Rank returns the ordinal rank (critical=5 … info=1, unknown=0).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 5
	case SeverityHigh:
		return 4
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

func (s Severity) String() string {
	return string(s)
}

// UnmarshalText normalizes case so "HIGH" and "high" decode alike.
// Unknown values are kept as-is and rejected later by validation or scoring.
func (s *Severity) UnmarshalText(b []byte) error {
	*s = Severity(strings.ToLower(strings.TrimSpace(string(b))))
	return nil
}

// ParseSeverity parses a severity name case-insensitively.
// "moderate" is accepted as medium and "informational" as info.
func ParseSeverity(raw string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "critical":
		return SeverityCritical, nil
	case "high":
		return SeverityHigh, nil
	case "medium", "moderate":
		return SeverityMedium, nil
	case "low":
		return SeverityLow, nil
	case "info", "informational":
		return SeverityInfo, nil
	}
	return "", &ConfigurationError{Severity: Severity(raw), Reason: "unknown severity"}
}

// Service is the AWS service a finding was raised against.
type Service string

const (
	ServiceCloudTrail Service = "CloudTrail"
	ServiceS3         Service = "S3"
	ServiceCloudWatch Service = "CloudWatch"
	ServiceRDS        Service = "RDS"
	ServiceIAM        Service = "IAM"
	ServiceEC2        Service = "EC2"
	ServiceELB        Service = "ELB"
	ServiceWAF        Service = "WAF"
)

// Services lists every known service in report order.
var Services = []Service{
	ServiceCloudTrail, ServiceS3, ServiceCloudWatch, ServiceRDS,
	ServiceIAM, ServiceEC2, ServiceELB, ServiceWAF,
}

func (s Service) Valid() bool {
	switch s {
	case ServiceCloudTrail, ServiceS3, ServiceCloudWatch, ServiceRDS,
		ServiceIAM, ServiceEC2, ServiceELB, ServiceWAF:
		return true
	}
	return false
}

// UnmarshalText maps any casing of a known service to its canonical name.
func (s *Service) UnmarshalText(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if svc, err := ParseService(raw); err == nil {
		*s = svc
		return nil
	}
	*s = Service(raw)
	return nil
}

// ParseService parses a service name case-insensitively.
func ParseService(raw string) (Service, error) {
	for _, svc := range Services {
		if strings.EqualFold(raw, string(svc)) {
			return svc, nil
		}
	}
	return "", fmt.Errorf("compliance.ParseService: unknown service %q", raw)
}

// Posture is a coarse risk rating derived from the score.
type Posture string

const (
	PostureLow      Posture = "LOW"
	PostureModerate Posture = "MODERATE"
	PostureHigh     Posture = "HIGH"
	PostureCritical Posture = "CRITICAL"
)

// PostureFor rates a score relative to maxScore.
func PostureFor(score, maxScore float64) Posture {
	if maxScore <= 0 {
		return PostureCritical
	}
	pct := score / maxScore * 100
	switch {
	case pct >= 90:
		return PostureLow
	case pct >= 70:
		return PostureModerate
	case pct >= 50:
		return PostureHigh
	default:
		return PostureCritical
	}
}

// RequirementState is the outcome of one checklist requirement.
type RequirementState string

const (
	RequirementCompliant    RequirementState = "COMPLIANT"
	RequirementNonCompliant RequirementState = "NON_COMPLIANT"
)
