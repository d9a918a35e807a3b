package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/specgate/specgate/internal/adapters/outbound/gitinfo"
	"github.com/specgate/specgate/internal/adapters/outbound/irloader"
	"github.com/specgate/specgate/internal/application"
	"github.com/spf13/cobra"
)

func newGuardrailCmd() *cobra.Command {
	var (
		manifestPath string
		touched      []string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "guardrail [path]",
		Short: "Check touched files against the slot manifest",
		Long:  "Verify that a generation pass only wrote inside its allowed slots. Touched files come from --touched or from the repository's worktree status.",
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

			manifest, err := irloader.New().LoadSlotManifest(manifestPath)
			if err != nil {
				return fmt.Errorf("loading slot manifest: %w", err)
			}

			svc := application.NewGuardrailService(gitinfo.New(), nil)
			reports, err := svc.Enforce(absPath, *manifest, touched)
			if err != nil {
				return fmt.Errorf("guardrail failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(reports); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				for _, r := range reports {
					fmt.Fprintf(out, "blocked  %s  %s (%s)\n", r.FilePath, r.Reason, r.ViolationType)
				}
				if len(reports) == 0 {
					fmt.Fprintln(out, "all touched files within allowed slots")
				}
			}

			if len(reports) > 0 {
				return fmt.Errorf("%d guardrail violations", len(reports))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Slot manifest file (YAML)")
	cmd.Flags().StringSliceVar(&touched, "touched", nil, "Explicit touched file list (overrides worktree detection)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output violations as JSON")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}
