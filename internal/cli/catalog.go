package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) catalogCommand() *cobra.Command {
	var (
		catalogPath string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalog furniture",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			if catalogPath == "" {
				catalogPath = c.config.CatalogPath
			}
			cat, err := loadCatalog(logger, catalogPath)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(cat.Specs()); err != nil {
					return fmt.Errorf("failed to encode catalog: %w", err)
				}
				return nil
			}
			printCatalog(c.out, cat.Specs())
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "CSV or XLSX catalog (default: built-in)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	return cmd
}
