// Package redact masks credentials and account identifiers in finding text
// before it is written to reports.
package redact

import (
	"regexp"

	"github.com/Chris443C/AWS-Log-Management-Review/internal/compliance"
)

const mask = "[REDACTED]"

var patterns []*regexp.Regexp

// arnAccount matches the account-id field of an ARN.
var arnAccount = regexp.MustCompile(`(arn:aws[a-zA-Z-]*:[a-z0-9-]*:[a-z0-9-]*:)(\d{12})(:)`)

func init() {
	raw := []string{
		// Access key IDs (long-term and temporary)
		`\b(AKIA|ASIA)[0-9A-Z]{16}\b`,
		`(?i)(aws_secret_access_key|aws_secret|secret_access_key)\s*[:=]\s*[A-Za-z0-9/+=]{40}`,
		`(?i)(aws_session_token|x-amz-security-token)\s*[:=]\s*\S+`,
		`-----BEGIN [A-Z ]+PRIVATE KEY-----[\s\S]*?-----END [A-Z ]+PRIVATE KEY-----`,
		`Bearer\s+[A-Za-z0-9\-._~+/]+=*`,
		`(?i)(api[_-]?key|secret[_-]?key|token|password|passwd)\s*[:=]\s*\S+`,
	}
	for _, r := range raw {
		patterns = append(patterns, regexp.MustCompile(r))
	}
}

// Redact replaces secret patterns in text with [REDACTED] and masks the
// account id in ARNs.
func Redact(text string) string {
	for _, p := range patterns {
		text = p.ReplaceAllString(text, mask)
	}
	return arnAccount.ReplaceAllString(text, "${1}"+mask+"${3}")
}

// Findings returns a copy of findings with free-text fields redacted.
func Findings(findings []compliance.Finding) []compliance.Finding {
	out := make([]compliance.Finding, len(findings))
	for i, f := range findings {
		f.Description = Redact(f.Description)
		f.RemediationHint = Redact(f.RemediationHint)
		out[i] = f
	}
	return out
}
