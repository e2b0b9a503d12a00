// Package profile loads scoring profiles: a weight table, a max score, and
// the compliance checklist the findings are evaluated against.
package profile

import (
	"embed"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/Chris443C/AWS-Log-Management-Review/internal/compliance"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultName is the profile used when none is requested.
const DefaultName = "pci-dss"

// Profile defines how findings are weighted and which requirements are checked.
type Profile struct {
	Name         string                   `yaml:"name"`
	Version      int                      `yaml:"version"`
	Standard     string                   `yaml:"standard"`
	Description  string                   `yaml:"description"`
	MaxScore     float64                  `yaml:"max_score"`
	Weights      map[string]float64       `yaml:"weights"`
	Requirements []compliance.Requirement `yaml:"requirements"`
}

// LoadBuiltin loads a built-in profile by name.
func LoadBuiltin(name string) (*Profile, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: unknown profile %q: %w", name, err)
	}
	p, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: parse %q: %w", name, err)
	}
	if err := p.checkMaxScore(); err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: %q: %w", name, err)
	}
	return p, nil
}

// LoadFile loads a profile from a YAML file. Fields left out of the file
// fall back to the default profile, so a file may carry only `weights:`.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile.LoadFile: %w", err)
	}
	base, err := LoadBuiltin(DefaultName)
	if err != nil {
		return nil, err
	}
	override, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile.LoadFile: parse %s: %w", path, err)
	}
	if override.Name != "" {
		base.Name = override.Name
	} else {
		base.Name = "custom"
	}
	if override.Standard != "" {
		base.Standard = override.Standard
	}
	if override.Description != "" {
		base.Description = override.Description
	}
	if override.MaxScore != 0 {
		base.MaxScore = override.MaxScore
	}
	if override.Weights != nil {
		base.Weights = override.Weights
	}
	if override.Requirements != nil {
		base.Requirements = override.Requirements
	}
	if err := base.checkMaxScore(); err != nil {
		return nil, fmt.Errorf("profile.LoadFile: %s: %w", path, err)
	}
	return base, nil
}

func parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the names of all available built-in profiles.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names, nil
}

// checkMaxScore rejects a max score that is negative or not finite. Zero
// means unset and falls back to the default.
func (p *Profile) checkMaxScore() error {
	if p.MaxScore == 0 {
		return nil
	}
	if !(p.MaxScore > 0) || math.IsInf(p.MaxScore, 0) {
		return &compliance.ConfigurationError{Reason: fmt.Sprintf("max_score must be a positive finite number, got %g", p.MaxScore)}
	}
	return nil
}

// WeightTable converts the profile's weights into a compliance.WeightTable.
// Unknown severity names, aliases that repeat a severity, and negative or
// non-finite weights are configuration errors.
func (p *Profile) WeightTable() (compliance.WeightTable, error) {
	if len(p.Weights) == 0 {
		return nil, &compliance.ConfigurationError{Reason: fmt.Sprintf("profile %q defines no weights", p.Name)}
	}
	wt := make(compliance.WeightTable, len(p.Weights))
	keys := make(map[compliance.Severity]string, len(p.Weights))
	for name, w := range p.Weights {
		sev, err := compliance.ParseSeverity(name)
		if err != nil {
			return nil, err
		}
		if prev, dup := keys[sev]; dup {
			first, second := prev, name
			if second < first {
				first, second = second, first
			}
			return nil, &compliance.ConfigurationError{
				Severity: sev,
				Reason:   fmt.Sprintf("weights %q and %q both set severity", first, second),
			}
		}
		keys[sev] = name
		if err := compliance.CheckWeight(sev, w); err != nil {
			return nil, err
		}
		wt[sev] = w
	}
	return wt, nil
}

// EffectiveMaxScore returns the profile's max score, or the default when unset.
func (p *Profile) EffectiveMaxScore() float64 {
	if p.MaxScore > 0 {
		return p.MaxScore
	}
	return compliance.DefaultMaxScore
}

// Format renders a short human-readable description of the profile.
func Format(p *Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s", p.Name)
	if p.Standard != "" {
		fmt.Fprintf(&b, " (%s)", p.Standard)
	}
	b.WriteString("\n")
	if p.Description != "" {
		fmt.Fprintf(&b, "  %s\n", strings.TrimSpace(p.Description))
	}
	fmt.Fprintf(&b, "  max score: %g\n", p.EffectiveMaxScore())

	names := make([]string, 0, len(p.Weights))
	for n := range p.Weights {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		return compliance.Severity(names[i]).Rank() > compliance.Severity(names[j]).Rank()
	})
	b.WriteString("  weights:")
	for _, n := range names {
		fmt.Fprintf(&b, " %s=%g", n, p.Weights[n])
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  requirements: %d\n", len(p.Requirements))
	return b.String()
}
