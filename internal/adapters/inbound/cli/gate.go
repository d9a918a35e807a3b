package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/specgate/specgate/internal/adapters/outbound/config"
	"github.com/specgate/specgate/internal/adapters/outbound/gitinfo"
	"github.com/specgate/specgate/internal/adapters/outbound/irloader"
	"github.com/specgate/specgate/internal/adapters/outbound/parser"
	"github.com/specgate/specgate/internal/adapters/outbound/runtime"
	"github.com/specgate/specgate/internal/adapters/outbound/scanner"
	"github.com/specgate/specgate/internal/adapters/outbound/tui"
	"github.com/specgate/specgate/internal/application"
	"github.com/specgate/specgate/internal/domain"
	"github.com/spf13/cobra"
)

func newGateCmd() *cobra.Command {
	var (
		env             string
		level           string
		baseURL         string
		irPath          string
		behaviorPath    string
		manifestPath    string
		transitionsPath string
		jsonOutput      bool
	)

	cmd := &cobra.Command{
		Use:   "gate [path]",
		Short: "Run the full quality gate",
		Long:  "Run guardrails, fast checks, endpoint coverage and, at heavy level, behavior scenarios against a live instance, then render the promotion verdict for the target environment.",
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

			opts := application.GateOptions{
				Environment: env,
				Level:       level,
				ProjectPath: absPath,
				BaseURL:     baseURL,
			}

			loader := irloader.New()
			if irPath != "" {
				if opts.Surface, err = loader.LoadAPISurface(irPath); err != nil {
					return fmt.Errorf("loading API surface: %w", err)
				}
			}
			if behaviorPath != "" {
				if opts.Behavior, err = loader.LoadBehavior(behaviorPath); err != nil {
					return fmt.Errorf("loading behavior IR: %w", err)
				}
			}
			if manifestPath != "" {
				if opts.Manifest, err = loader.LoadSlotManifest(manifestPath); err != nil {
					return fmt.Errorf("loading slot manifest: %w", err)
				}
			}
			if transitionsPath != "" {
				if opts.Transitions, err = loader.LoadTransitions(transitionsPath); err != nil {
					return fmt.Errorf("loading transitions: %w", err)
				}
			}

			svc := newGateService()
			report, err := svc.Run(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("gate failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderGateReport(report))
			}

			if !report.Verdict.Passed {
				return fmt.Errorf("gate rejected for %s: %d unmet requirements",
					report.Verdict.Environment, len(report.Verdict.UnmetRequirements))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&env, "env", "dev", "Target environment (dev, staging, production)")
	cmd.Flags().StringVar(&level, "level", domain.LevelFast, "Check level (fast or heavy)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Base URL of the running candidate (heavy level)")
	cmd.Flags().StringVar(&irPath, "ir", "", "API surface IR file (YAML)")
	cmd.Flags().StringVar(&behaviorPath, "behavior", "", "Behavior IR file (YAML)")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Slot manifest file (YAML)")
	cmd.Flags().StringVar(&transitionsPath, "transitions", "", "Entity transitions file (YAML)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")

	return cmd
}

func newGateService() *application.GateService {
	sc := scanner.New()
	analyzer := parser.New()
	cfgLoader := config.New()

	return application.NewGateService(
		application.NewFastCheckService(sc, analyzer, cfgLoader, nil),
		application.NewCoverageService(sc, analyzer, cfgLoader, nil),
		application.NewScenarioService(),
		application.NewGuardrailService(gitinfo.New(), nil),
		cfgLoader,
		func(baseURL string, cfg domain.Config) domain.ServiceClient {
			return runtime.New(baseURL, cfg)
		},
		nil,
	)
}
