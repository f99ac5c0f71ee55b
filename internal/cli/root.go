package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/furnish/internal/catalog"
	"github.com/piwi3910/furnish/internal/importer"
	"github.com/piwi3910/furnish/internal/model"
	"github.com/piwi3910/furnish/internal/project"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds state shared by all commands.
type CLI struct {
	out        io.Writer
	errOut     io.Writer
	configPath string
	verbose    bool
	config     model.AppConfig
}

// New creates a CLI writing results to out and logs to errOut.
func New(out, errOut io.Writer) *CLI {
	return &CLI{out: out, errOut: errOut, config: model.DefaultAppConfig()}
}

// Execute runs the furnish command tree with the process arguments.
func Execute(ctx context.Context) error {
	return New(os.Stdout, os.Stderr).RootCommand().ExecuteContext(ctx)
}

// RootCommand builds the root command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "furnish",
		Short:        "Furnish plans furniture layouts for rectangular rooms",
		Long:         `Furnish selects furniture from a catalog and places every piece against walls, in corners or in open floor space without overlaps, falling back to a deterministic spread when nothing fits.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if c.verbose {
				level = log.DebugLevel
			}
			logger := newLogger(c.errOut, level)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			cfg, err := project.LoadAppConfig(c.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config %s: %w", c.configPath, err)
			}
			c.config = cfg
			logger.Debug("config loaded", "path", c.configPath)
			return nil
		},
	}

	root.SetOut(c.out)
	root.SetErr(c.errOut)
	root.SetVersionTemplate(fmt.Sprintf("furnish %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", project.DefaultConfigPath(), "app config file")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.layoutsCommand())
	root.AddCommand(c.backupCommand())
	root.AddCommand(c.serveCommand())
	return root
}

// loadCatalog imports path, or returns the built-in catalog when path is
// empty. Row errors abort; warnings are logged.
func loadCatalog(logger *log.Logger, path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	res := importer.ImportFile(path)
	for _, w := range res.Warnings {
		logger.Warn("catalog import", "path", path, "warning", w)
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("failed to import catalog %s:\n%s", path, joinLines(res.Errors))
	}
	cat, err := res.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog from %s: %w", path, err)
	}
	logger.Debug("catalog imported", "path", path, "items", cat.Len())
	return cat, nil
}
