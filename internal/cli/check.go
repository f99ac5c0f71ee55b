package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/furnish/internal/engine"
	"github.com/piwi3910/furnish/internal/project"
)

func (c *CLI) checkCommand() *cobra.Command {
	var clearance float64

	cmd := &cobra.Command{
		Use:   "check <layout.json>",
		Short: "Audit a saved layout for bounds and spacing violations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := project.LoadLayout(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("clearance") {
				clearance = saved.Settings.Clearance
			}

			violations := engine.AuditLayout(saved.Layout, clearance)
			if len(violations) == 0 {
				printSuccess(c.out, "%s: %d items, no violations", saved.Name, saved.Layout.Len())
				return nil
			}
			for _, msg := range engine.FormatViolations(violations) {
				printError(c.out, "%s", msg)
			}
			return fmt.Errorf("layout %s has %d violations", saved.ID, len(violations))
		},
	}

	cmd.Flags().Float64Var(&clearance, "clearance", 0, "spacing to audit against (default: the saved settings)")
	return cmd
}
