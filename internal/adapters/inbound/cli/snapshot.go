package cli

import (
	"encoding/json"
	"fmt"

	"github.com/specgate/specgate/internal/adapters/outbound/config"
	"github.com/specgate/specgate/internal/adapters/outbound/runtime"
	"github.com/specgate/specgate/internal/application"
	"github.com/specgate/specgate/internal/domain"
	"github.com/spf13/cobra"
)

func newSnapshotCmd() *cobra.Command {
	var (
		baseURL  string
		entities []string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture entity state from a running instance",
		Long:  "Fetch the listed entity collections through the service's HTTP interface and print the captured snapshot, keyed by EntityType:id.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(entities) == 0 {
				return fmt.Errorf("provide at least one --entity")
			}

			cfg := domain.DefaultConfig()
			if c, err := config.New().Load("."); err == nil {
				cfg = c
			}

			svc := application.NewSnapshotService(runtime.New(baseURL, cfg), nil)
			if !svc.Reachable(cmd.Context()) {
				return fmt.Errorf("service at %s is unreachable", baseURL)
			}

			snap := svc.Capture(cmd.Context(), entities, nil)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:8000", "Base URL of the running instance")
	cmd.Flags().StringSliceVar(&entities, "entity", nil, "Entity type to snapshot (repeatable)")

	return cmd
}
