// Package render produces report output in the supported formats.
package render

import (
	"fmt"
	"strings"

	"github.com/Chris443C/AWS-Log-Management-Review/internal/compliance"
)

// Markdown renders a report as a Markdown document.
func Markdown(r *compliance.Report) string {
	var b strings.Builder
	s := r.Summary

	b.WriteString("# AWS Log Management Review\n\n")
	if r.Meta.Standard != "" {
		fmt.Fprintf(&b, "**Standard:** %s\n", r.Meta.Standard)
	}
	fmt.Fprintf(&b, "**Compliance Score:** %s / %s\n", formatScore(s.Score.Score), formatScore(s.Score.MaxScore))
	fmt.Fprintf(&b, "**Risk Posture:** %s\n", s.Posture)
	fmt.Fprintf(&b, "**Findings:** %d critical, %d high, %d medium, %d low, %d info\n\n",
		s.CriticalCount, s.HighCount, s.MediumCount, s.LowCount, s.InfoCount)

	if len(r.Findings) == 0 {
		b.WriteString("No findings. All checks passed.\n\n")
	} else {
		b.WriteString("## Severity Breakdown\n\n")
		b.WriteString("| Severity | Count | Penalty |\n")
		b.WriteString("| :--- | ---: | ---: |\n")
		for _, sev := range compliance.Severities {
			bucket := s.Score.BySeverity[sev]
			fmt.Fprintf(&b, "| %s | %d | %s |\n", sev, bucket.Count, formatScore(bucket.Penalty))
		}
		fmt.Fprintf(&b, "| **total** | **%d** | **%s** |\n\n", s.TotalFindings, formatScore(s.Score.TotalPenalty))

		b.WriteString("## Recommendations\n\n")
		for i, rec := range r.Recommendations {
			fmt.Fprintf(&b, "%d. **[P%d / %s]** %s", i+1, rec.Priority, rec.Severity, rec.ActionText)
			fmt.Fprintf(&b, " _(%s, %s", rec.Service, rec.FindingRef)
			if rec.RequirementRef != "" {
				fmt.Fprintf(&b, ", req %s", rec.RequirementRef)
			}
			b.WriteString(")_\n")
		}
		b.WriteString("\n")

		b.WriteString("## Findings\n\n")
		b.WriteString("| ID | Service | Severity | Requirement | Description |\n")
		b.WriteString("| :--- | :--- | :--- | :--- | :--- |\n")
		for _, f := range r.Findings {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				f.ID, f.Service, f.Severity, f.RequirementRef, escapeCell(f.Description))
		}
		b.WriteString("\n")
	}

	if len(r.Requirements) > 0 {
		b.WriteString("## Requirement Status\n\n")
		b.WriteString("| Requirement | Description | Status |\n")
		b.WriteString("| :--- | :--- | :--- |\n")
		for _, req := range r.Requirements {
			status := "✓ Compliant"
			if req.State == compliance.RequirementNonCompliant {
				status = "✗ Non-Compliant"
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", req.Ref, escapeCell(req.Description), status)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

// formatScore prints whole numbers without a decimal point.
func formatScore(v float64) string {
	return fmt.Sprintf("%g", v)
}
