package catalog

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/asainv/internal/perception"
)

// entryFile is the on-disk shape of one catalog entry.
type entryFile struct {
	Name              string    `yaml:"name"`
	Category          *Category `yaml:"category"`
	Quality           *Quality  `yaml:"quality"`
	Weight            float64   `yaml:"weight"`
	StackSize         int       `yaml:"stack_size"`
	IsBlueprint       bool      `yaml:"is_blueprint"`
	HasSpoilTimer     bool      `yaml:"has_spoil_timer"`
	HasDurability     bool      `yaml:"has_durability"`
	RequiresEngram    bool      `yaml:"requires_engram"`
	HasAmbiguousQuery bool      `yaml:"has_ambiguous_query"`
	CanPutInHotbar    bool      `yaml:"can_put_in_hotbar"`
	Icon              string    `yaml:"icon"`
	IconMask          string    `yaml:"icon_mask"`
	Threshold         float64   `yaml:"threshold"`
}

type catalogFile struct {
	Items []entryFile `yaml:"items"`
}

// Load reads the catalog YAML at path and decodes every referenced icon. Icon
// paths are resolved against iconsDir, or against the catalog's own directory when
// iconsDir is empty.
//
// Precondition: path is a readable YAML file.
// Postcondition: returns a Catalog in file order or the first encountered error.
func Load(path, iconsDir string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: cannot read file %q: %w", path, err)
	}
	if iconsDir == "" {
		iconsDir = filepath.Dir(path)
	}
	return Parse(data, func(name string) (image.Image, error) {
		return decodePNG(filepath.Join(iconsDir, name))
	})
}

// IconSource resolves an icon reference from the catalog file to an image.
type IconSource func(name string) (image.Image, error)

// Parse decodes catalog YAML, loading icons through icons.
//
// Precondition: icons is non-nil.
// Postcondition: returns a Catalog in document order or the first encountered error.
func Parse(data []byte, icons IconSource) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog.Parse: cannot parse catalog: %w", err)
	}

	entries := make([]*Entry, 0, len(f.Items))
	for i, item := range f.Items {
		e, err := item.build(icons)
		if err != nil {
			return nil, fmt.Errorf("catalog.Parse: item %d (%q): %w", i, item.Name, err)
		}
		entries = append(entries, e)
	}
	return New(entries...)
}

func (f entryFile) build(icons IconSource) (*Entry, error) {
	if f.Category == nil {
		return nil, fmt.Errorf("category must be set")
	}
	quality := DefaultQuality
	if f.Quality != nil {
		quality = *f.Quality
	}
	if f.Icon == "" {
		return nil, fmt.Errorf("icon must not be empty")
	}
	img, err := icons(f.Icon)
	if err != nil {
		return nil, fmt.Errorf("loading icon: %w", err)
	}
	var mask image.Image
	if f.IconMask != "" {
		if mask, err = icons(f.IconMask); err != nil {
			return nil, fmt.Errorf("loading icon mask: %w", err)
		}
	}
	tmpl, err := perception.NewTemplate(f.Name, img, mask)
	if err != nil {
		return nil, err
	}

	stack := f.StackSize
	if stack == 0 {
		stack = 1
	}
	threshold := f.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	return &Entry{
		Name:              f.Name,
		Category:          *f.Category,
		Quality:           quality,
		Weight:            f.Weight,
		StackSize:         stack,
		IsBlueprint:       f.IsBlueprint,
		HasSpoilTimer:     f.HasSpoilTimer,
		HasDurability:     f.HasDurability,
		RequiresEngram:    f.RequiresEngram,
		HasAmbiguousQuery: f.HasAmbiguousQuery,
		CanPutInHotbar:    f.CanPutInHotbar,
		Icon:              tmpl,
		Threshold:         threshold,
	}, nil
}

func decodePNG(path string) (image.Image, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	img, err := png.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	return img, nil
}
