package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "specgate",
		Short:         "Accept or reject generated code",
		Long:          "SpecGate verifies generated service code against its declared intent and decides whether it may be promoted.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newGateCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newCoverageCmd())
	cmd.AddCommand(newScenariosCmd())
	cmd.AddCommand(newGuardrailCmd())
	cmd.AddCommand(newSnapshotCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
