// Package catalog holds the static item reference data the identifier narrows and
// matches against. A Catalog is loaded once and is read-only afterwards; entries are
// shared freely between goroutines.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/asainv/internal/perception"
)

// Category is the closed set of item categories.
type Category int

const (
	Consumable Category = iota
	Equippable
	Weapon
	Ammo
	Structure
	Resource
	Attachment
	Artifact
)

var categoryNames = [...]string{
	Consumable: "consumable",
	Equippable: "equippable",
	Weapon:     "weapon",
	Ammo:       "ammo",
	Structure:  "structure",
	Resource:   "resource",
	Attachment: "attachment",
	Artifact:   "artifact",
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range categoryNames {
		out[i] = Category(i)
	}
	return out
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory resolves a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("catalog: unknown category %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// HasQuality reports whether items of this category display a quality tier.
func (c Category) HasQuality() bool {
	switch c {
	case Weapon, Equippable, Attachment, Structure:
		return true
	default:
		return false
	}
}

// Quality is the ordinal item quality tier.
type Quality int

const (
	Basic Quality = iota
	Primitive
	Ramshackle
	Apprentice
	Journeyman
	Mastercraft
	Ascendant
)

var qualityNames = [...]string{
	Basic:       "basic",
	Primitive:   "primitive",
	Ramshackle:  "ramshackle",
	Apprentice:  "apprentice",
	Journeyman:  "journeyman",
	Mastercraft: "mastercraft",
	Ascendant:   "ascendant",
}

// Qualities returns every tier from lowest to highest.
func Qualities() []Quality {
	out := make([]Quality, len(qualityNames))
	for i := range qualityNames {
		out[i] = Quality(i)
	}
	return out
}

func (q Quality) String() string {
	if q < 0 || int(q) >= len(qualityNames) {
		return fmt.Sprintf("Quality(%d)", int(q))
	}
	return qualityNames[q]
}

// ParseQuality resolves a quality name, case-insensitively.
func ParseQuality(s string) (Quality, error) {
	for i, name := range qualityNames {
		if strings.EqualFold(name, s) {
			return Quality(i), nil
		}
	}
	return 0, fmt.Errorf("catalog: unknown quality %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quality) UnmarshalText(text []byte) error {
	parsed, err := ParseQuality(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// DefaultQuality is the quality of a catalog item that names none. It is also
// what identification reports for items that show no quality strip.
const DefaultQuality = Primitive

// DefaultThreshold is the icon match score an entry needs when none is configured.
const DefaultThreshold = 0.8

// Entry is the static description of one catalog item.
type Entry struct {
	Name     string
	Category Category
	Quality  Quality
	Weight   float64
	// StackSize is the maximum stack; 1 means the item never stacks.
	StackSize int

	IsBlueprint       bool
	HasSpoilTimer     bool
	HasDurability     bool
	RequiresEngram    bool
	HasAmbiguousQuery bool
	CanPutInHotbar    bool

	// Icon is matched against a slot's captured image.
	Icon *perception.Template
	// Threshold is the minimum icon match score for this entry.
	Threshold float64
}

// Validate checks that the Entry satisfies its invariants.
//
// Precondition: e is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (e *Entry) Validate() error {
	var errs []error
	if e.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if e.Category < 0 || int(e.Category) >= len(categoryNames) {
		errs = append(errs, fmt.Errorf("Category %d out of range", int(e.Category)))
	}
	if e.Quality < 0 || int(e.Quality) >= len(qualityNames) {
		errs = append(errs, fmt.Errorf("Quality %d out of range", int(e.Quality)))
	}
	if e.StackSize < 1 {
		errs = append(errs, errors.New("StackSize must be >= 1"))
	}
	if e.Weight < 0 {
		errs = append(errs, errors.New("Weight must be >= 0"))
	}
	if e.Threshold <= 0 || e.Threshold > 1 {
		errs = append(errs, fmt.Errorf("Threshold must be in (0, 1], got %v", e.Threshold))
	}
	if e.Icon == nil {
		errs = append(errs, errors.New("Icon must not be nil"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("catalog entry %q validation failed: %v", e.Name, errs)
	}
	return nil
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s (%s)", e.Name, e.Category)
}
