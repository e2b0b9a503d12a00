package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Chris443C/AWS-Log-Management-Review/internal/compliance"
	"github.com/Chris443C/AWS-Log-Management-Review/internal/findings"
	"github.com/Chris443C/AWS-Log-Management-Review/internal/profile"
	"github.com/Chris443C/AWS-Log-Management-Review/internal/redact"
	"github.com/Chris443C/AWS-Log-Management-Review/internal/remediation"
	"github.com/Chris443C/AWS-Log-Management-Review/internal/render"
	"github.com/Chris443C/AWS-Log-Management-Review/internal/schema"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type reportFlags struct {
	format        string
	out           string
	outDir        string
	profileName   string
	weightsFile   string
	maxScore      float64
	hasMaxScore   bool
	minSeverity   string
	failBelow     float64
	hasFailBelow  bool
	redactEnabled bool
	scriptsDir    string
	region        string
	accountID     string
	top           int
	verbose       bool
	noColor       bool

	stdout io.Writer
	stderr io.Writer
}

func newReportCmd() *cobra.Command {
	f := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "report <findings-file>",
		Short: "Score a findings file and produce a compliance report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.hasMaxScore = cmd.Flags().Changed("max-score")
			f.hasFailBelow = cmd.Flags().Changed("fail-below")
			return runReport(args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "json", "Output format: json, yaml, md, html, or all")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.outDir, "out-dir", "", "Directory for report files; required with --format all")
	flags.StringVar(&f.profileName, "profile", profile.DefaultName, "Built-in profile name")
	flags.StringVar(&f.weightsFile, "weights", "", "YAML profile file overriding the built-in profile")
	flags.Float64Var(&f.maxScore, "max-score", compliance.DefaultMaxScore, "Score of a run with no findings")
	flags.StringVar(&f.minSeverity, "min-severity", "", "Drop findings below this severity before scoring")
	flags.Float64Var(&f.failBelow, "fail-below", 0, "Exit 2 if the compliance score is below this value")
	flags.BoolVar(&f.redactEnabled, "redact", true, "Redact secrets and account ids in finding text")
	flags.StringVar(&f.scriptsDir, "scripts-dir", "", "Also write remediation scripts to this directory")
	flags.StringVar(&f.region, "region", remediation.DefaultRegion, "AWS region used in remediation scripts")
	flags.StringVar(&f.accountID, "account-id", remediation.DefaultAccountID, "AWS account id used in remediation scripts")
	flags.IntVar(&f.top, "top", 5, "Recommendations shown in the terminal summary (0 for all)")
	flags.BoolVar(&f.verbose, "verbose", false, "Print processing steps to stderr")
	flags.BoolVar(&f.noColor, "no-color", false, "Disable colored terminal output")

	return cmd
}

func runReport(findingsPath string, f *reportFlags) error {
	stdout, stderr := f.stdout, f.stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	logger := log.New(stderr, "", 0)
	verbose := func(msg string, args ...any) {
		if f.verbose {
			logger.Printf(msg, args...)
		}
	}
	if f.noColor {
		color.NoColor = true
	}

	// 1. Load findings
	verbose("Loading findings: %s", findingsPath)
	doc, err := findings.Load(findingsPath)
	if err != nil {
		return exitError(3, "failed to load findings: %v", err)
	}
	verbose("Parsed %d findings (%s layout)", len(doc.Findings), doc.Format)
	for _, w := range doc.Warnings {
		logger.Printf("warning: %s", w)
	}

	// 2. Validate input
	if errs := schema.ValidateFindings(doc.Findings); len(errs) > 0 {
		logger.Println("Findings validation errors:")
		for _, e := range errs {
			logger.Printf("  %s", e)
		}
		return exitError(3, "findings file failed validation (%d errors)", len(errs))
	}

	// 3. Resolve profile and weights
	prof, err := loadProfile(f, verbose)
	if err != nil {
		return err
	}
	weights, err := prof.WeightTable()
	if err != nil {
		return exitError(3, "invalid weights: %v", err)
	}
	maxScore := prof.EffectiveMaxScore()
	if f.hasMaxScore {
		maxScore = f.maxScore
	}

	// 4. Filter and redact
	scored := doc.Findings
	if f.minSeverity != "" {
		threshold, err := compliance.ParseSeverity(f.minSeverity)
		if err != nil {
			return exitError(3, "invalid --min-severity: %v", err)
		}
		scored = compliance.FilterBySeverity(scored, threshold)
		verbose("Kept %d of %d findings at or above %s", len(scored), len(doc.Findings), threshold)
	}
	if f.redactEnabled {
		verbose("Redacting secrets")
		scored = redact.Findings(scored)
	}

	// 5. Score and rank
	rep, err := compliance.Evaluate(scored, weights, maxScore, prof.Requirements)
	if err != nil {
		var ce *compliance.ConfigurationError
		if errors.As(err, &ce) {
			return exitError(3, "%v", err)
		}
		return fmt.Errorf("evaluate findings: %w", err)
	}

	rep.Tool = "logreview"
	rep.Version = version
	rep.Meta = compliance.Meta{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Standard:    prof.Standard,
	}
	rep.Input = compliance.Input{
		FindingsFile: filepath.Base(findingsPath),
		FindingsHash: doc.Hash,
		Format:       string(doc.Format),
		Profile:      prof.Name,
		WeightsFile:  f.weightsFile,
		MinSeverity:  f.minSeverity,
	}

	if errs := schema.ValidateReport(rep); len(errs) > 0 {
		for _, e := range errs {
			logger.Printf("  %s", e)
		}
		return fmt.Errorf("report failed consistency check (%d errors)", len(errs))
	}
	verbose("Score %g / %g (%s)", rep.Summary.Score.Score, rep.Summary.Score.MaxScore, rep.Summary.Posture)

	// 6. Output
	if err := writeReport(rep, f, stdout, verbose); err != nil {
		return err
	}

	// 7. Remediation scripts
	if f.scriptsDir != "" {
		paths, err := remediation.WriteScripts(f.scriptsDir, rep.Recommendations, doc.Resources, remediation.Options{
			Region:      f.region,
			AccountID:   f.accountID,
			GeneratedAt: rep.Meta.GeneratedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to write remediation scripts: %w", err)
		}
		verbose("Wrote %d remediation scripts to %s", len(paths), f.scriptsDir)
	}

	render.Console(stderr, rep, f.top)

	// 8. Exit code based on --fail-below
	if f.hasFailBelow && rep.Summary.Score.Score < f.failBelow {
		return exitError(2, "compliance score %g is below %g", rep.Summary.Score.Score, f.failBelow)
	}
	return nil
}

func loadProfile(f *reportFlags, verbose func(string, ...any)) (*profile.Profile, error) {
	if f.weightsFile != "" {
		verbose("Loading weights: %s", f.weightsFile)
		p, err := profile.LoadFile(f.weightsFile)
		if err != nil {
			return nil, exitError(3, "failed to load weights: %v", err)
		}
		return p, nil
	}
	verbose("Loading profile: %s", f.profileName)
	p, err := profile.LoadBuiltin(f.profileName)
	if err != nil {
		return nil, exitError(3, "failed to load profile: %v", err)
	}
	return p, nil
}

var formatExt = map[string]string{
	"json": "json",
	"yaml": "yaml",
	"md":   "md",
	"html": "html",
}

// allFormats is the write order for --format all.
var allFormats = []string{"json", "yaml", "md", "html"}

func renderFormat(rep *compliance.Report, format string) ([]byte, error) {
	switch format {
	case "json":
		return render.JSON(rep)
	case "yaml":
		return render.YAML(rep)
	case "md":
		return []byte(render.Markdown(rep)), nil
	case "html":
		return render.HTML(rep)
	}
	return nil, exitError(3, "unknown format: %s", format)
}

func writeReport(rep *compliance.Report, f *reportFlags, stdout io.Writer, verbose func(string, ...any)) error {
	formats := []string{f.format}
	if f.format == "all" {
		if f.outDir == "" {
			return exitError(3, "--format all requires --out-dir")
		}
		formats = allFormats
	} else if _, ok := formatExt[f.format]; !ok {
		return exitError(3, "unknown format: %s", f.format)
	}

	if f.outDir != "" {
		if err := os.MkdirAll(f.outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	for _, format := range formats {
		data, err := renderFormat(rep, format)
		if err != nil {
			return err
		}
		path := f.out
		if f.outDir != "" && (path == "" || f.format == "all") {
			path = filepath.Join(f.outDir, "compliance_report."+formatExt[format])
		}
		if path == "" {
			if _, err := stdout.Write(data); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			continue
		}
		verbose("Writing %s report to %s", format, path)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
