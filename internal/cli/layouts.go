package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/furnish/internal/project"
)

func (c *CLI) layoutsCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "List saved layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			layouts, err := project.ListLayouts(dir)
			if err != nil {
				return fmt.Errorf("failed to list layouts: %w", err)
			}
			if len(layouts) == 0 {
				printInfo(c.out, "no saved layouts in %s", dir)
				return nil
			}
			fmt.Fprintln(c.out, styleTitle.Render(fmt.Sprintf("Saved layouts (%d)", len(layouts))))
			for _, l := range layouts {
				fmt.Fprintf(c.out, "  %-36s  %-20s %s  %d items, %d forced\n",
					l.ID, l.Name, styleDim.Render(l.CreatedAt.Format("2006-01-02 15:04")),
					l.Layout.Len(), l.Layout.ForcedCount())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", project.DefaultLayoutsDir(), "layout directory")
	return cmd
}
