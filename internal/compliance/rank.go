package compliance

import (
	"sort"
	"strings"
)

// defaultActions is used when a finding carries no remediation hint.
var defaultActions = map[Service]string{
	ServiceCloudTrail: "Enable a multi-region CloudTrail trail with log file validation.",
	ServiceS3:         "Enable server access logging on the affected S3 buckets.",
	ServiceCloudWatch: "Set a retention policy of at least 365 days on the affected log groups.",
	ServiceRDS:        "Export RDS engine logs to CloudWatch Logs.",
	ServiceIAM:        "Enable IAM credential reports and monitor privileged activity.",
	ServiceEC2:        "Enable VPC flow logs for the affected network interfaces.",
	ServiceELB:        "Enable access logging on the affected load balancers.",
	ServiceWAF:        "Enable WAF logging to a protected destination.",
}

// Priority maps severity to a 1-based priority (1 = act first).
func Priority(s Severity) int {
	if r := s.Rank(); r > 0 {
		return 6 - r
	}
	return 6
}

// RankRecommendations derives one recommendation per finding, ordered by
// severity descending then requirement_ref ascending. Remaining ties keep
// input order. The input slice is not modified.
func RankRecommendations(findings []Finding) []Recommendation {
	recs := make([]Recommendation, 0, len(findings))
	for _, f := range findings {
		recs = append(recs, Recommendation{
			FindingRef:     f.ID,
			Priority:       Priority(f.Severity),
			Severity:       f.Severity,
			Service:        f.Service,
			RequirementRef: f.RequirementRef,
			ActionText:     actionText(f),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		ri := recs[i].Severity.Rank()
		rj := recs[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return CompareRequirementRefs(recs[i].RequirementRef, recs[j].RequirementRef) < 0
	})
	return recs
}

func actionText(f Finding) string {
	if hint := strings.TrimSpace(f.RemediationHint); hint != "" {
		return hint
	}
	if a, ok := defaultActions[f.Service]; ok {
		return a
	}
	return "Review and remediate: " + f.Description
}

// CompareRequirementRefs orders refs such as "10.2.1" and "10.5.1.2".
// Digit runs compare numerically so "10.2.2" sorts before "10.2.10";
// everything else compares lexically.
func CompareRequirementRefs(a, b string) int {
	ta, tb := tokenizeRef(a), tokenizeRef(b)
	for i := 0; i < len(ta) && i < len(tb); i++ {
		if c := compareToken(ta[i], tb[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(ta) < len(tb):
		return -1
	case len(ta) > len(tb):
		return 1
	}
	return strings.Compare(a, b)
}

func tokenizeRef(ref string) []string {
	var tokens []string
	var cur strings.Builder
	digits := false
	for _, r := range ref {
		d := isASCIIDigit(r)
		if cur.Len() > 0 && d != digits {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
		digits = d
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isDigitRun(s string) bool {
	for _, r := range s {
		if !isASCIIDigit(r) {
			return false
		}
	}
	return s != ""
}

// compareToken orders digit runs by numeric value without parsing, so runs
// of any length compare correctly. Other tokens compare lexically.
func compareToken(a, b string) int {
	if !isDigitRun(a) || !isDigitRun(b) {
		return strings.Compare(a, b)
	}
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return strings.Compare(a, b)
}
