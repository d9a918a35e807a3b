package cli

import (
	"encoding/json"
	"fmt"

	"github.com/specgate/specgate/internal/adapters/outbound/irloader"
	"github.com/specgate/specgate/internal/adapters/outbound/tui"
	"github.com/specgate/specgate/internal/application"
	"github.com/specgate/specgate/internal/domain"
	"github.com/spf13/cobra"
)

func newScenariosCmd() *cobra.Command {
	var (
		behaviorPath    string
		transitionsPath string
		jsonOutput      bool
	)

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Generate behavior scenarios from IR",
		Long:  "Derive executable test scenarios (happy paths, guard violations, invariant checks and state transitions) from the behavior IR without running them.",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := irloader.New()

			var behavior *domain.BehaviorIR
			var transitions []domain.EntityTransitions
			var err error

			if behaviorPath != "" {
				if behavior, err = loader.LoadBehavior(behaviorPath); err != nil {
					return fmt.Errorf("loading behavior IR: %w", err)
				}
			}
			if transitionsPath != "" {
				if transitions, err = loader.LoadTransitions(transitionsPath); err != nil {
					return fmt.Errorf("loading transitions: %w", err)
				}
			}
			if behavior == nil && len(transitions) == 0 {
				return fmt.Errorf("provide --behavior and/or --transitions")
			}

			scenarios := application.NewScenarioService().Generate(behavior, transitions)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(scenarios)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderScenarios(scenarios))
			return nil
		},
	}

	cmd.Flags().StringVar(&behaviorPath, "behavior", "", "Behavior IR file (YAML)")
	cmd.Flags().StringVar(&transitionsPath, "transitions", "", "Entity transitions file (YAML)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output scenarios as JSON")

	return cmd
}
