package compliance

import "fmt"

// ConfigurationError reports a weight table or finding that cannot be scored.
// Scoring never defaults a missing weight; the caller must fix configuration.
type ConfigurationError struct {
	Severity  Severity
	FindingID string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Severity != "" && e.FindingID != "":
		return fmt.Sprintf("configuration error: %s %q (finding %s)", e.Reason, e.Severity, e.FindingID)
	case e.Severity != "":
		return fmt.Sprintf("configuration error: %s %q", e.Reason, e.Severity)
	default:
		return "configuration error: " + e.Reason
	}
}
