package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Chris443C/AWS-Log-Management-Review/internal/compliance"
	"github.com/Chris443C/AWS-Log-Management-Review/internal/findings"
	"github.com/Chris443C/AWS-Log-Management-Review/internal/remediation"
	"github.com/Chris443C/AWS-Log-Management-Review/internal/schema"
	"github.com/spf13/cobra"
)

type scriptsFlags struct {
	outDir    string
	region    string
	accountID string
}

func newScriptsCmd() *cobra.Command {
	f := &scriptsFlags{}

	cmd := &cobra.Command{
		Use:   "scripts <findings-file>",
		Short: "Generate bash remediation scripts for a findings file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripts(args[0], f, os.Stdout)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.outDir, "out-dir", "scripts", "Directory to write scripts to")
	flags.StringVar(&f.region, "region", remediation.DefaultRegion, "AWS region used in the scripts")
	flags.StringVar(&f.accountID, "account-id", remediation.DefaultAccountID, "AWS account id used in the scripts")

	return cmd
}

func runScripts(findingsPath string, f *scriptsFlags, w io.Writer) error {
	doc, err := findings.Load(findingsPath)
	if err != nil {
		return exitError(3, "failed to load findings: %v", err)
	}
	if errs := schema.ValidateFindings(doc.Findings); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		return exitError(3, "findings file failed validation (%d errors)", len(errs))
	}

	recs := compliance.RankRecommendations(doc.Findings)
	paths, err := remediation.WriteScripts(f.outDir, recs, doc.Resources, remediation.Options{
		Region:    f.region,
		AccountID: f.accountID,
	})
	if err != nil {
		return fmt.Errorf("failed to write remediation scripts: %w", err)
	}
	if len(paths) == 0 {
		fmt.Fprintln(w, "No remediation scripts needed.")
		return nil
	}
	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
	return nil
}
