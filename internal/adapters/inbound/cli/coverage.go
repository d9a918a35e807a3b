package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/specgate/specgate/internal/adapters/outbound/config"
	"github.com/specgate/specgate/internal/adapters/outbound/irloader"
	"github.com/specgate/specgate/internal/adapters/outbound/parser"
	"github.com/specgate/specgate/internal/adapters/outbound/scanner"
	"github.com/specgate/specgate/internal/adapters/outbound/tui"
	"github.com/specgate/specgate/internal/application"
	"github.com/spf13/cobra"
)

func newCoverageCmd() *cobra.Command {
	var (
		irPath     string
		jsonOutput bool
		minRate    float64
	)

	cmd := &cobra.Command{
		Use:   "coverage [path]",
		Short: "Validate endpoint coverage against the API surface IR",
		Long:  "Compare the routes declared in generated code against the endpoints the IR promises, and report missing and undeclared endpoints.",
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

			surface, err := irloader.New().LoadAPISurface(irPath)
			if err != nil {
				return fmt.Errorf("loading API surface: %w", err)
			}

			svc := application.NewCoverageService(
				scanner.New(),
				parser.New(),
				config.New(),
				nil,
			)

			result, err := svc.Validate(absPath, surface)
			if err != nil {
				return fmt.Errorf("coverage failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderCoverage(result))
			}

			if result.CoverageRate < minRate {
				return fmt.Errorf("coverage %.2f is below minimum %.2f", result.CoverageRate, minRate)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&irPath, "ir", "", "API surface IR file (YAML)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	cmd.Flags().Float64Var(&minRate, "min", 0, "Minimum coverage rate; exit 1 below it")
	_ = cmd.MarkFlagRequired("ir")

	return cmd
}
