package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/furnish/internal/model"
	"github.com/piwi3910/furnish/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		catalogPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner over HTTP",
		Long:  `Serve the planner over HTTP. The listen address defaults to $FURNISH_ADDR, then :8080.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := server.LoadConfigFromEnv()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if catalogPath == "" {
				catalogPath = c.config.CatalogPath
			}
			cat, err := loadCatalog(logger, catalogPath)
			if err != nil {
				return err
			}

			settings := model.DefaultSettings()
			c.config.ApplyToSettings(&settings)
			srv := server.New(cfg, cat, settings, c.config.DefaultRoom, logger)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides FURNISH_ADDR)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "CSV or XLSX catalog (default: built-in)")
	return cmd
}
