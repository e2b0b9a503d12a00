package compliance

import "strings"

// NonCompliantRequirements returns the distinct requirement refs cited by
// findings, in first-seen order.
func NonCompliantRequirements(findings []Finding) []string {
	seen := make(map[string]bool)
	var refs []string
	for _, f := range findings {
		ref := strings.TrimSpace(f.RequirementRef)
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	return refs
}

// RequirementStatuses evaluates each checklist requirement against the
// findings. A requirement is non-compliant when any finding cites it directly
// or through a range such as "10.2.1-10.2.7".
func RequirementStatuses(reqs []Requirement, findings []Finding) []RequirementStatus {
	statuses := make([]RequirementStatus, 0, len(reqs))
	for _, req := range reqs {
		st := RequirementStatus{
			Ref:         req.Ref,
			Description: req.Description,
			State:       RequirementCompliant,
		}
		for _, f := range findings {
			if refCovers(f.RequirementRef, req.Ref) {
				st.FindingRefs = append(st.FindingRefs, f.ID)
			}
		}
		if len(st.FindingRefs) > 0 {
			st.State = RequirementNonCompliant
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// refCovers reports whether a finding's ref (possibly a range or a
// comma-separated list) includes the requirement ref.
func refCovers(findingRef, reqRef string) bool {
	for _, part := range strings.Split(findingRef, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		if !isRange {
			if part == reqRef {
				return true
			}
			continue
		}
		lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
		if !samePrefix(lo, hi) || !samePrefix(lo, reqRef) {
			continue
		}
		if CompareRequirementRefs(lo, reqRef) <= 0 && CompareRequirementRefs(reqRef, hi) <= 0 {
			return true
		}
	}
	return false
}

// samePrefix reports whether two dotted refs share everything but the last
// component, e.g. 10.2.1 and 10.2.7.
func samePrefix(a, b string) bool {
	ia := strings.LastIndex(a, ".")
	ib := strings.LastIndex(b, ".")
	if ia < 0 || ib < 0 {
		return ia == ib
	}
	return a[:ia] == b[:ib]
}
