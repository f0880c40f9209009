package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/asainv/internal/catalog"
)

func newCatalogCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect item catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "validate",
			Short: "Load the catalog and check every entry and icon",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cat, path, err := opts.catalog()
				if err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "%s: %d entries", path, cat.Len())
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List catalog entries in identification priority order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cat, _, err := opts.catalog()
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for i, e := range cat.Entries() {
					fmt.Fprintf(w, "%3d  %-32s %-11s stack %-4d %s\n", i+1, e.Name, e.Category, e.StackSize, entryFlags(e))
				}
				return nil
			},
		},
	)
	return cmd
}

// catalog loads the configured catalog and returns it with its path.
func (o *options) catalog() (*catalog.Catalog, string, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, "", err
	}
	cat, err := catalog.Load(cfg.Catalog.Path, cfg.Catalog.IconsDir)
	if err != nil {
		return nil, "", err
	}
	return cat, cfg.Catalog.Path, nil
}

func entryFlags(e *catalog.Entry) string {
	var flags []string
	for _, f := range []struct {
		set  bool
		name string
	}{
		{e.IsBlueprint, "blueprint"},
		{e.HasSpoilTimer, "spoils"},
		{e.HasDurability, "durability"},
		{e.RequiresEngram, "engram"},
		{e.HasAmbiguousQuery, "ambiguous-query"},
		{e.CanPutInHotbar, "hotbar"},
	} {
		if f.set {
			flags = append(flags, f.name)
		}
	}
	return strings.Join(flags, ",")
}
