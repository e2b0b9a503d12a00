package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/Chris443C/AWS-Log-Management-Review/internal/compliance"
)

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>AWS Log Management Review</title>
<style>
body { font-family: Arial, sans-serif; margin: 40px; color: #333; }
.score { font-size: 24px; font-weight: bold; }
.posture-LOW { color: #28a745; }
.posture-MODERATE { color: #e0a800; }
.posture-HIGH { color: #fd7e14; }
.posture-CRITICAL { color: #dc3545; }
.sev-critical { background: #dc3545; color: #fff; }
.sev-high { color: #dc3545; font-weight: bold; }
.sev-medium { color: #e0a800; }
.sev-low { color: #17a2b8; }
.compliant { color: #28a745; }
.non-compliant { color: #dc3545; font-weight: bold; }
table { border-collapse: collapse; width: 100%; margin-top: 20px; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; }
</style>
</head>
<body>

<h1>AWS Log Management Review</h1>
{{with .Meta}}<p>{{if .Standard}}Standard: {{.Standard}}<br>{{end}}{{if not .GeneratedAt.IsZero}}Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}<br>{{end}}{{if .RunID}}Run: {{.RunID}}{{end}}</p>{{end}}

<div class="score">
Compliance Score: {{score .Summary.Score.Score}} / {{score .Summary.Score.MaxScore}}
</div>
<h2 class="posture-{{.Summary.Posture}}">Risk Posture: {{.Summary.Posture}}</h2>

<h3>Severity Breakdown</h3>
<table>
<tr><th>Severity</th><th>Count</th><th>Penalty</th></tr>
{{range $sev := severities}}{{$b := index $.Summary.Score.BySeverity $sev}}
<tr><td class="sev-{{$sev}}">{{$sev}}</td><td>{{$b.Count}}</td><td>{{score $b.Penalty}}</td></tr>
{{end}}
</table>

<h3>Recommendations</h3>
{{if .Recommendations}}
<table>
<tr><th>Priority</th><th>Severity</th><th>Service</th><th>Requirement</th><th>Action</th><th>Finding</th></tr>
{{range .Recommendations}}
<tr>
<td>P{{.Priority}}</td>
<td class="sev-{{.Severity}}">{{.Severity}}</td>
<td>{{.Service}}</td>
<td>{{.RequirementRef}}</td>
<td>{{.ActionText}}</td>
<td>{{.FindingRef}}</td>
</tr>
{{end}}
</table>
{{else}}
<p>No findings. All checks passed.</p>
{{end}}

{{if .Findings}}
<h3>Findings</h3>
<table>
<tr><th>ID</th><th>Service</th><th>Severity</th><th>Requirement</th><th>Description</th></tr>
{{range .Findings}}
<tr>
<td>{{.ID}}</td>
<td>{{.Service}}</td>
<td class="sev-{{.Severity}}">{{.Severity}}</td>
<td>{{.RequirementRef}}</td>
<td>{{.Description}}</td>
</tr>
{{end}}
</table>
{{end}}

{{if .Requirements}}
<h3>Requirement Status</h3>
<table>
<tr><th>Requirement</th><th>Description</th><th>Status</th></tr>
{{range .Requirements}}
<tr>
<td>{{.Ref}}</td>
<td>{{.Description}}</td>
{{if eq .State "NON_COMPLIANT"}}<td class="non-compliant">&#10007; Non-Compliant ({{join .FindingRefs ", "}})</td>{{else}}<td class="compliant">&#10003; Compliant</td>{{end}}
</tr>
{{end}}
</table>
{{end}}

</body>
</html>
`

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"score":      formatScore,
	"severities": func() []compliance.Severity { return compliance.Severities },
	"join":       strings.Join,
}).Parse(htmlTemplate))

// HTML renders a report as a standalone HTML page. All finding text is
// escaped by html/template.
func HTML(r *compliance.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("render.HTML: %w", err)
	}
	return buf.Bytes(), nil
}
