package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Chris443C/AWS-Log-Management-Review/internal/profile"
	"github.com/spf13/cobra"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List built-in scoring profiles and their weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfiles(os.Stdout)
		},
	}
}

func runProfiles(w io.Writer) error {
	names, err := profile.List()
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}
	for _, name := range names {
		p, err := profile.LoadBuiltin(name)
		if err != nil {
			return exitError(3, "failed to load profile: %v", err)
		}
		fmt.Fprint(w, profile.Format(p))
		if name == profile.DefaultName {
			fmt.Fprintln(w, "  default: true")
		}
		fmt.Fprintln(w)
	}
	return nil
}
