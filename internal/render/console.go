package render

import (
	"fmt"
	"io"

	"github.com/Chris443C/AWS-Log-Management-Review/internal/compliance"
	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold).SprintfFunc()
	passColor   = color.New(color.FgGreen, color.Bold).SprintfFunc()
	failColor   = color.New(color.FgRed, color.Bold).SprintfFunc()

	criticalColor = color.New(color.BgRed, color.FgWhite, color.Bold).SprintfFunc()
	highColor     = color.New(color.FgRed, color.Bold).SprintfFunc()
	mediumColor   = color.New(color.FgYellow, color.Bold).SprintfFunc()
	lowColor      = color.New(color.FgBlue, color.Bold).SprintfFunc()
	infoColor     = color.New(color.FgWhite).SprintfFunc()
)

// ColorForSeverity returns the formatter used to print a severity label.
func ColorForSeverity(s compliance.Severity) func(string, ...interface{}) string {
	switch s {
	case compliance.SeverityCritical:
		return criticalColor
	case compliance.SeverityHigh:
		return highColor
	case compliance.SeverityMedium:
		return mediumColor
	case compliance.SeverityLow:
		return lowColor
	default:
		return infoColor
	}
}

func colorForPosture(p compliance.Posture) func(string, ...interface{}) string {
	switch p {
	case compliance.PostureLow:
		return passColor
	case compliance.PostureModerate:
		return mediumColor
	default:
		return failColor
	}
}

// Console writes a short terminal summary of the report. Colors follow
// color.NoColor, which callers toggle for --no-color and non-TTY output.
func Console(w io.Writer, r *compliance.Report, top int) {
	s := r.Summary
	postureColor := colorForPosture(s.Posture)

	fmt.Fprintf(w, "\n%s\n", headerColor("AWS Log Management Review"))
	fmt.Fprintf(w, "Compliance score: %s / %s (%s)\n",
		postureColor("%s", formatScore(s.Score.Score)), formatScore(s.Score.MaxScore), postureColor("%s", s.Posture))
	fmt.Fprintf(w, "Findings: %d  Recommendations: %d\n\n", s.TotalFindings, s.TotalRecommendations)

	for _, sev := range compliance.Severities {
		bucket := s.Score.BySeverity[sev]
		fmt.Fprintf(w, "  %s %-8s %3d  (-%s)\n", ColorForSeverity(sev)("■"), sev, bucket.Count, formatScore(bucket.Penalty))
	}

	if len(r.Recommendations) > 0 {
		if top <= 0 || top > len(r.Recommendations) {
			top = len(r.Recommendations)
		}
		fmt.Fprintf(w, "\n%s\n", headerColor("Top recommendations"))
		for _, rec := range r.Recommendations[:top] {
			fmt.Fprintf(w, "  P%d %s [%s] %s\n", rec.Priority, ColorForSeverity(rec.Severity)("%s", rec.Severity), rec.Service, rec.ActionText)
		}
		if top < len(r.Recommendations) {
			fmt.Fprintf(w, "  ...and %d more\n", len(r.Recommendations)-top)
		}
	}

	var failed int
	for _, req := range r.Requirements {
		if req.State == compliance.RequirementNonCompliant {
			failed++
		}
	}
	if len(r.Requirements) > 0 {
		msg := passColor("%d/%d requirements compliant", len(r.Requirements)-failed, len(r.Requirements))
		if failed > 0 {
			msg = failColor("%d/%d requirements compliant", len(r.Requirements)-failed, len(r.Requirements))
		}
		fmt.Fprintf(w, "\n%s\n", msg)
	}
}
