// Package commands implements the asainv command line: offline tooling around the
// inventory engine for checking catalogs, layouts and screenshots.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/asainv/internal/config"
	"github.com/cory-johannsen/asainv/internal/observability"
)

// options holds the flags shared by every subcommand.
type options struct {
	configPath  string
	catalogPath string
}

// load resolves the configuration, applying flag overrides.
func (o *options) load() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadDefaults()
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	if o.catalogPath != "" {
		cfg.Catalog.Path = o.catalogPath
	}
	return cfg, nil
}

func (o *options) logger(cfg config.Config) (*zap.Logger, error) {
	return observability.NewLogger(cfg.Logging, zap.String("service", "asainv"))
}

// NewRootCmd builds the asainv command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "asainv",
		Short: "Inventory identification and interaction engine tooling",
		Long: `asainv works with the inventory engine offline: it validates and lists item
catalogs, prints the screen layout of each inventory, and identifies the items
in a saved screenshot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to the YAML config file")
	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "catalog file, overriding catalog.path")

	root.AddCommand(newCatalogCmd(opts), newGeometryCmd(opts), newScanCmd(opts))
	return root
}

// Execute runs the command line and prints any error. SIGINT and SIGTERM cancel
// the running command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		printError(root.ErrOrStderr(), err)
		return err
	}
	return nil
}
