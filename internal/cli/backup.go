package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/furnish/internal/project"
)

func (c *CLI) backupCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore config and saved layouts",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", project.DefaultLayoutsDir(), "layout directory")

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write config and saved layouts to one JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layouts, err := project.ListLayouts(dir)
			if err != nil {
				return fmt.Errorf("failed to list layouts: %w", err)
			}
			if err := project.ExportAllData(args[0], c.config, layouts); err != nil {
				return err
			}
			printSuccess(c.out, "exported config and %d layouts to %s", len(layouts), args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "restore <file>",
		Short: "Restore config and saved layouts from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(c.configPath, backup.Config); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			c.config = backup.Config
			paths, err := project.RestoreLayouts(dir, backup.Layouts)
			if err != nil {
				return err
			}
			printSuccess(c.out, "restored config and %d layouts from backup %s", len(paths), backup.CreatedAt)
			return nil
		},
	})
	return cmd
}
