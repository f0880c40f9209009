package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/asainv/internal/catalog"
	"github.com/cory-johannsen/asainv/internal/identify"
	"github.com/cory-johannsen/asainv/internal/inventory"
	"github.com/cory-johannsen/asainv/internal/observability"
	"github.com/cory-johannsen/asainv/internal/perception"
	"github.com/cory-johannsen/asainv/internal/session"
)

type scanFlags struct {
	screenshot string
	variant    string
	workers    int
	items      []string
	categories []string
}

func (f scanFlags) filter() (identify.Filter, error) {
	filter := identify.Filter{Items: f.items}
	for _, name := range f.categories {
		c, err := catalog.ParseCategory(name)
		if err != nil {
			return identify.Filter{}, err
		}
		filter.Categories = append(filter.Categories, c)
	}
	return filter, nil
}

func newScanCmd(opts *options) *cobra.Command {
	var f scanFlags
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Identify the items shown in an inventory screenshot",
		Long: `scan loads a PNG screenshot of the game window, checks that the chosen
inventory is open in it and identifies every filled slot of the visible page.
No input is sent to the game.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.screenshot == "" {
				return errors.New("--screenshot is required")
			}
			filter, err := f.filter()
			if err != nil {
				return err
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			variant, err := opts.variant(f.variant)
			if err != nil {
				return err
			}
			logger, err := opts.logger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cat, err := catalog.Load(cfg.Catalog.Path, cfg.Catalog.IconsDir)
			if err != nil {
				return err
			}
			observability.For(logger, observability.ComponentCatalog).Debug("catalog loaded",
				zap.String("path", cfg.Catalog.Path),
				zap.Int("entries", cat.Len()),
			)
			screen, err := perception.LoadScreenshot(f.screenshot)
			if err != nil {
				return err
			}
			sess := session.New(session.Ports{
				Screen: screen,
				Vision: perception.NewSoftwareVision(),
				Input:  perception.DiscardInput{},
			}, cat, cfg, logger)
			inv := inventory.New(sess, variant)
			// A still image never changes, so there is nothing to wait for.
			if !inv.IsOpen() {
				return fmt.Errorf("%s inventory is not open in %s", variant, f.screenshot)
			}

			ctx := cmd.Context()
			layout, err := inv.Prescan(ctx)
			if err != nil {
				return err
			}
			items, err := inv.ScanPage(ctx, filter, f.workers)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printHeading(w, "%s inventory: %d folders, %d filled slots", variant, layout.Folders, layout.Filled)
			unknown := 0
			for j, item := range items {
				index := j + layout.Folders
				if item == nil {
					unknown++
					printWarning(w, "slot %2d  unidentified", index)
					continue
				}
				fmt.Fprintf(w, "  slot %2d  %s\n", index, item)
			}
			if unknown == 0 {
				printSuccess(w, "identified %d items", len(items))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.screenshot, "screenshot", "", "PNG screenshot of the game window")
	cmd.Flags().StringVar(&f.variant, "variant", "", "local or remote; defaults to ui.variant")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "scan workers; 0 uses scanner.workers")
	cmd.Flags().StringSliceVar(&f.items, "item", nil, "only consider these catalog entries")
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "only consider these categories")
	return cmd
}
