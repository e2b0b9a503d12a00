package render

import (
	"encoding/json"
	"fmt"

	"github.com/Chris443C/AWS-Log-Management-Review/internal/compliance"
	"gopkg.in/yaml.v3"
)

// JSON renders a report as indented JSON with a trailing newline.
func JSON(r *compliance.Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render.JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// YAML renders a report as a YAML document.
func YAML(r *compliance.Report) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("render.YAML: %w", err)
	}
	return data, nil
}
