package commands

import (
	"fmt"
	"image"
	"io"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/asainv/internal/inventory"
	"github.com/cory-johannsen/asainv/internal/slot"
)

func newGeometryCmd(opts *options) *cobra.Command {
	var variant string
	cmd := &cobra.Command{
		Use:   "geometry",
		Short: "Print the screen regions of an inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := opts.variant(variant)
			if err != nil {
				return err
			}
			printGeometry(cmd.OutOrStdout(), inventory.GeometryFor(v))
			return nil
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "", "local or remote; defaults to ui.variant")
	return cmd
}

// variant resolves a --variant flag, falling back to the configured default.
func (o *options) variant(flag string) (inventory.Variant, error) {
	if flag == "" {
		cfg, err := o.load()
		if err != nil {
			return 0, err
		}
		flag = cfg.UI.Variant
	}
	return inventory.ParseVariant(flag)
}

func printGeometry(w io.Writer, g inventory.Geometry) {
	rect := func(name string, r image.Rectangle) {
		fmt.Fprintf(w, "  %-14s x=%-5d y=%-5d w=%-4d h=%d\n", name, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	}
	printHeading(w, "%s inventory", g.Variant)
	rect("area", g.Area)
	rect("items", g.ItemArea)
	rect("search bar", g.SearchBar)
	rect("filter", g.Filter)
	rect("transfer all", g.TransferAll)
	rect("drop all", g.DropAll)
	rect("new folder", g.NewFolder)
	rect("auto stack", g.AutoStack)
	rect("folder view", g.FolderView)
	rect("info tab", g.InfoTab)
	rect("close", g.Close)
	rect("receiving", g.Receiving)

	printHeading(w, "slots")
	for i := 0; i < slot.PerPage; i++ {
		rect(fmt.Sprintf("slot %d", i), slot.Region(i, g.SlotOrigin))
	}
}
