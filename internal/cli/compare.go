package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/furnish/internal/engine"
)

func (c *CLI) compareCommand() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "compare [ids...]",
		Short: "Compare the same request under alternative planner settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			in, err := flags.resolve(cmd, c, args, logger)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(logger, in.brief.Catalog)
			if err != nil {
				return err
			}

			scenarios := engine.BuildDefaultScenarios(in.brief.Settings, in.brief.Room, in.seed)
			prog := newProgress(logger)
			results := engine.CompareScenarios(cat, scenarios, in.request())
			prog.done("Compared scenarios")

			printComparison(c.out, results)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
