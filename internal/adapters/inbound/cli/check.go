package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/specgate/specgate/internal/adapters/outbound/config"
	"github.com/specgate/specgate/internal/adapters/outbound/parser"
	"github.com/specgate/specgate/internal/adapters/outbound/scanner"
	"github.com/specgate/specgate/internal/application"
	"github.com/specgate/specgate/internal/domain"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Run fast static checks on generated code",
		Long:  "Scan a generated project for syntax errors, regression patterns, dead code and unresolved imports, without executing anything.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			svc := application.NewFastCheckService(
				scanner.New(),
				parser.New(),
				config.New(),
				nil,
			)

			result, err := svc.Check(cmd.Context(), absPath)
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				printFindings(cmd, result)
			}

			if !result.Passed {
				return fmt.Errorf("%d blocking findings", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output findings as JSON")

	return cmd
}

func printFindings(cmd *cobra.Command, result *domain.ValidationResult) {
	out := cmd.OutOrStdout()
	for _, f := range result.Errors {
		fmt.Fprintf(out, "error  %s:%d  %s\n", f.File, f.Line, f.Message)
	}
	for _, f := range result.Warnings {
		fmt.Fprintf(out, "warn   %s:%d  %s\n", f.File, f.Line, f.Message)
	}
	if result.Passed {
		fmt.Fprintf(out, "passed (%d warnings) in %s\n", len(result.Warnings), result.Duration)
	}
}
