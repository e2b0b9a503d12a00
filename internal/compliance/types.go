// Package compliance scores AWS log-management findings and ranks the
// resulting recommendations.
package compliance

import "time"

// Finding is a single detected compliance gap for one AWS service.
type Finding struct {
	ID              string   `json:"id" yaml:"id"`
	Service         Service  `json:"service" yaml:"service"`
	Severity        Severity `json:"severity" yaml:"severity"`
	Description     string   `json:"description" yaml:"description"`
	RequirementRef  string   `json:"requirement_ref" yaml:"requirement_ref"`
	RemediationHint string   `json:"remediation_hint,omitempty" yaml:"remediation_hint,omitempty"`
}

// WeightTable maps each severity to the penalty subtracted per finding.
type WeightTable map[Severity]float64

// DefaultMaxScore is the score of a run with no findings.
const DefaultMaxScore = 100.0

// DefaultWeights is the penalty table used when no profile overrides it.
func DefaultWeights() WeightTable {
	return WeightTable{
		SeverityCritical: 10,
		SeverityHigh:     7,
		SeverityMedium:   4,
		SeverityLow:      2,
		SeverityInfo:     0,
	}
}

// ComplianceScore is the scalar score plus its per-severity breakdown.
type ComplianceScore struct {
	Score        float64                     `json:"score" yaml:"score"`
	MaxScore     float64                     `json:"max_score" yaml:"max_score"`
	TotalPenalty float64                     `json:"total_penalty" yaml:"total_penalty"`
	BySeverity   map[Severity]SeverityBucket `json:"by_severity" yaml:"by_severity"`
}

// SeverityBucket counts findings of one severity and the penalty they carry.
type SeverityBucket struct {
	Count   int     `json:"count" yaml:"count"`
	Penalty float64 `json:"penalty" yaml:"penalty"`
}

// Recommendation is the actionable remediation derived from one finding.
type Recommendation struct {
	FindingRef     string   `json:"finding_ref" yaml:"finding_ref"`
	Priority       int      `json:"priority" yaml:"priority"`
	Severity       Severity `json:"severity" yaml:"severity"`
	Service        Service  `json:"service" yaml:"service"`
	RequirementRef string   `json:"requirement_ref" yaml:"requirement_ref"`
	ActionText     string   `json:"action_text" yaml:"action_text"`
}

// Summary holds the score, severity counts, and risk posture of a run.
type Summary struct {
	Score                ComplianceScore `json:"compliance" yaml:"compliance"`
	Posture              Posture         `json:"posture" yaml:"posture"`
	TotalFindings        int             `json:"total_findings" yaml:"total_findings"`
	TotalRecommendations int             `json:"total_recommendations" yaml:"total_recommendations"`
	CriticalCount        int             `json:"critical_count" yaml:"critical_count"`
	HighCount            int             `json:"high_count" yaml:"high_count"`
	MediumCount          int             `json:"medium_count" yaml:"medium_count"`
	LowCount             int             `json:"low_count" yaml:"low_count"`
	InfoCount            int             `json:"info_count" yaml:"info_count"`
	ByService            map[Service]int `json:"by_service" yaml:"by_service"`
}

// Requirement is one entry of a compliance checklist, e.g. PCI DSS 10.2.1.
type Requirement struct {
	Ref         string `json:"ref" yaml:"ref"`
	Description string `json:"description" yaml:"description"`
}

// RequirementStatus is the evaluated state of one checklist requirement.
type RequirementStatus struct {
	Ref         string           `json:"ref" yaml:"ref"`
	Description string           `json:"description" yaml:"description"`
	State       RequirementState `json:"state" yaml:"state"`
	FindingRefs []string         `json:"finding_refs,omitempty" yaml:"finding_refs,omitempty"`
}

// Report is the top-level output of a scoring run.
type Report struct {
	Tool            string              `json:"tool" yaml:"tool"`
	Version         string              `json:"version" yaml:"version"`
	Meta            Meta                `json:"meta" yaml:"meta"`
	Input           Input               `json:"input" yaml:"input"`
	Summary         Summary             `json:"summary" yaml:"summary"`
	Findings        []Finding           `json:"findings" yaml:"findings"`
	Recommendations []Recommendation    `json:"recommendations" yaml:"recommendations"`
	Requirements    []RequirementStatus `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	Weights         WeightTable         `json:"weights" yaml:"weights"`
}

// Meta records when and as which run the report was produced.
type Meta struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Standard    string    `json:"standard,omitempty" yaml:"standard,omitempty"`
}

// Input describes the findings file and settings used for the run.
type Input struct {
	FindingsFile string `json:"findings_file" yaml:"findings_file"`
	FindingsHash string `json:"findings_hash" yaml:"findings_hash"`
	Format       string `json:"format" yaml:"format"`
	Profile      string `json:"profile" yaml:"profile"`
	WeightsFile  string `json:"weights_file,omitempty" yaml:"weights_file,omitempty"`
	MinSeverity  string `json:"min_severity,omitempty" yaml:"min_severity,omitempty"`
}
