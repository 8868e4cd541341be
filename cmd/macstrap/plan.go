package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macstrap/macstrap/internal/logger"
)

type planOptions struct {
	ManifestPath string
	Verbose      bool
}

var planCmdRunner = runPlan

func newPlanCmd(root *rootFlags) *cobra.Command {
	opts := planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview the actions a manifest would apply",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = root.verbose

			if err := validateManifestPath(opts.ManifestPath); err != nil {
				return err
			}

			return planCmdRunner(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ManifestPath, "manifest", "m", "", "Path to manifest file")
	cmd.MarkFlagRequired("manifest") //nolint:errcheck

	return cmd
}

func runPlan(cmd *cobra.Command, opts planOptions) error {
	level := "info"
	if opts.Verbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{Level: level, HumanReadable: true})
	if err != nil {
		return err
	}

	manifest, plan, _, err := preparePlan(context.Background(), opts.ManifestPath, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if manifest.Name != "" {
		fmt.Fprintf(out, "Plan for %s\n\n", manifest.Name)
	}
	fmt.Fprint(out, plan.String())
	fmt.Fprintf(out, "\n%d action(s) pending", plan.PendingCount())
	if plan.NeedsPrivilege() {
		fmt.Fprint(out, ", elevation required")
	}
	fmt.Fprintln(out)

	return nil
}
