// Package remediation generates bash scripts that apply the AWS CLI changes
// needed to close ranked recommendations.
package remediation

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"
	"unicode"

	"github.com/Chris443C/AWS-Log-Management-Review/internal/compliance"
)

//go:embed templates/*.sh.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("remediation").Funcs(template.FuncMap{
	"join":    strings.Join,
	"quote":   shellQuote,
	"comment": commentText,
}).ParseFS(templateFS, "templates/*.sh.tmpl"))

// MasterScript is the name of the script that runs every generated script.
const MasterScript = "run_all_remediation.sh"

// Defaults applied when Options leaves a field empty.
const (
	DefaultRegion        = "us-east-1"
	DefaultAccountID     = "123456789012"
	DefaultRetentionDays = 365
)

// Options controls values substituted into the generated scripts.
type Options struct {
	Region        string
	AccountID     string
	RetentionDays int
	GeneratedAt   time.Time
}

func (o Options) withDefaults() Options {
	if o.Region == "" {
		o.Region = DefaultRegion
	}
	if o.AccountID == "" {
		o.AccountID = DefaultAccountID
	}
	if o.RetentionDays <= 0 {
		o.RetentionDays = DefaultRetentionDays
	}
	if o.GeneratedAt.IsZero() {
		o.GeneratedAt = time.Now().UTC()
	}
	return o
}

type serviceScript struct {
	service  compliance.Service
	name     string
	template string
	title    string
}

// scripts lists the services with a canned script, in execution order.
var scripts = []serviceScript{
	{compliance.ServiceCloudTrail, "setup_cloudtrail.sh", "cloudtrail.sh.tmpl", "CloudTrail Setup Script"},
	{compliance.ServiceS3, "setup_s3_logging.sh", "s3.sh.tmpl", "S3 Access Logging Setup Script"},
	{compliance.ServiceCloudWatch, "setup_cloudwatch_retention.sh", "cloudwatch.sh.tmpl", "CloudWatch Logs Retention Setup Script"},
	{compliance.ServiceRDS, "setup_rds_logging.sh", "rds.sh.tmpl", "RDS CloudWatch Logging Setup Script"},
	{compliance.ServiceIAM, "setup_iam_monitoring.sh", "iam.sh.tmpl", "IAM Monitoring Setup Script"},
}

// Script describes one generated remediation script.
type Script struct {
	Service   compliance.Service
	Name      string
	Findings  []string
	Refs      []string
	Resources []string
}

// Plan selects a script for every service that has at least one
// recommendation or a listed non-compliant resource. Services without a
// canned script are skipped.
func Plan(recs []compliance.Recommendation, resources map[compliance.Service][]string) []Script {
	var out []Script
	for _, s := range scripts {
		sc := Script{Service: s.service, Name: s.name, Resources: resources[s.service]}
		seen := make(map[string]bool)
		for _, rec := range recs {
			if rec.Service != s.service {
				continue
			}
			sc.Findings = append(sc.Findings, rec.FindingRef)
			if rec.RequirementRef != "" && !seen[rec.RequirementRef] {
				seen[rec.RequirementRef] = true
				sc.Refs = append(sc.Refs, rec.RequirementRef)
			}
		}
		if len(sc.Findings) == 0 && len(sc.Resources) == 0 {
			continue
		}
		sort.SliceStable(sc.Refs, func(i, j int) bool {
			return compliance.CompareRequirementRefs(sc.Refs[i], sc.Refs[j]) < 0
		})
		out = append(out, sc)
	}
	return out
}

type scriptData struct {
	Script
	Title         string
	GeneratedAt   string
	Region        string
	AccountID     string
	RetentionDays int
}

// WriteScripts renders the planned scripts into dir along with
// run_all_remediation.sh and returns the written paths. If no script is
// planned, nothing is written.
func WriteScripts(dir string, recs []compliance.Recommendation, resources map[compliance.Service][]string, opts Options) ([]string, error) {
	planned := Plan(recs, resources)
	if len(planned) == 0 {
		return nil, nil
	}
	opts = opts.withDefaults()
	stamp := opts.GeneratedAt.Format(time.RFC3339)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("remediation.WriteScripts: %w", err)
	}

	var paths []string
	for _, sc := range planned {
		def := lookup(sc.Service)
		data := scriptData{
			Script:        sc,
			Title:         def.title,
			GeneratedAt:   stamp,
			Region:        opts.Region,
			AccountID:     opts.AccountID,
			RetentionDays: opts.RetentionDays,
		}
		path, err := render(dir, sc.Name, def.template, data)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	master := struct {
		GeneratedAt string
		Scripts     []Script
	}{stamp, planned}
	path, err := render(dir, MasterScript, "run_all.sh.tmpl", master)
	if err != nil {
		return paths, err
	}
	return append(paths, path), nil
}

func lookup(svc compliance.Service) serviceScript {
	for _, s := range scripts {
		if s.service == svc {
			return s
		}
	}
	return serviceScript{}
}

func render(dir, name, tmpl string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, tmpl, data); err != nil {
		return "", fmt.Errorf("remediation.render %s: %w", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0755); err != nil {
		return "", fmt.Errorf("remediation.render %s: %w", name, err)
	}
	return path, nil
}

// shellQuote wraps s in single quotes so bash treats it literally.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// commentText flattens s onto one line so it cannot leave a bash comment.
func commentText(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == '\u2028' || r == '\u2029' {
			return ' '
		}
		return r
	}, s)
}
