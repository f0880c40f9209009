package identify

import (
	"fmt"
	"image/color"
	"slices"

	"go.uber.org/zap"

	"github.com/cory-johannsen/asainv/internal/catalog"
	"github.com/cory-johannsen/asainv/internal/perception"
	"github.com/cory-johannsen/asainv/internal/slot"
)

// Item is an identified slot occupant. It is a detached value: it does not refer
// back to the slot it was read from.
type Item struct {
	Entry     *catalog.Entry
	Quality   catalog.Quality
	Blueprint bool
}

// Name returns the catalog name of the item.
func (i Item) Name() string { return i.Entry.Name }

func (i Item) String() string {
	if i.Blueprint {
		return fmt.Sprintf("%s %s (blueprint)", i.Quality, i.Entry.Name)
	}
	return fmt.Sprintf("%s %s", i.Quality, i.Entry.Name)
}

// Filter restricts which entries are considered. Empty fields allow everything.
type Filter struct {
	Items      []string
	Categories []catalog.Category
}

func (f Filter) allows(e *catalog.Entry) bool {
	if len(f.Items) > 0 && !slices.Contains(f.Items, e.Name) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, e.Category) {
		return false
	}
	return true
}

// QualityColors is the border strip colour of each quality tier that has one.
// Basic and primitive items show no strip.
var QualityColors = map[catalog.Quality]color.RGBA{
	catalog.Ramshackle:  perception.RGB(85, 170, 60),
	catalog.Apprentice:  perception.RGB(60, 110, 235),
	catalog.Journeyman:  perception.RGB(150, 70, 220),
	catalog.Mastercraft: perception.RGB(240, 215, 60),
	catalog.Ascendant:   perception.RGB(50, 225, 225),
}

const (
	qualityTolerance = 15
	qualityMinCount  = 15
)

// Identifier matches slot snapshots against a catalog. It only reads the catalog
// and its snapshots, so one Identifier may serve many goroutines.
type Identifier struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// New returns an Identifier over cat.
//
// Precondition: cat and logger are non-nil.
func New(cat *catalog.Catalog, logger *zap.Logger) *Identifier {
	return &Identifier{catalog: cat, logger: logger}
}

// Candidates returns the entries consistent with f and allowed by filter, in
// catalog order.
func (id *Identifier) Candidates(f FeatureVector, filter Filter) []*catalog.Entry {
	var out []*catalog.Entry
	id.catalog.Each(func(e *catalog.Entry) bool {
		if filter.allows(e) && Matches(f, e) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Identify determines the item in snap. It returns false for an empty slot or
// when no candidate's icon matches; that is a normal outcome, not a failure.
//
// Postcondition: for a fixed snapshot the result is always the same; a returned
// entry always satisfies Matches for the snapshot's features.
func (id *Identifier) Identify(snap slot.Snapshot, filter Filter) (Item, bool) {
	if snap.IsEmpty() {
		return Item{}, false
	}

	features := ExtractFeatures(snap)
	candidates := id.Candidates(features, filter)
	for _, e := range candidates {
		if ok, _ := id.Has(snap, e); !ok {
			continue
		}
		blueprint := isBlueprint(snap, e)
		item := Item{
			Entry:     e,
			Quality:   resolveQuality(snap, e, blueprint),
			Blueprint: blueprint,
		}
		id.logger.Debug("slot identified",
			zap.Int("slot", snap.Index),
			zap.Stringer("item", item),
			zap.Stringer("features", features),
			zap.Int("candidates", len(candidates)),
		)
		return item, true
	}

	id.logger.Debug("slot not identified",
		zap.Int("slot", snap.Index),
		zap.Stringer("features", features),
		zap.Int("candidates", len(candidates)),
	)
	return Item{}, false
}

// Has reports whether the icon of e appears in snap, with the best match score.
// Unlike Identify it skips narrowing.
func (id *Identifier) Has(snap slot.Snapshot, e *catalog.Entry) (bool, float64) {
	img := snap.Sub(slot.IconArea)
	if img == nil {
		return false, 0
	}
	return snap.Vision().MatchTemplate(img, e.Icon, e.Threshold)
}

func isBlueprint(snap slot.Snapshot, e *catalog.Entry) bool {
	if e.IsBlueprint {
		return true
	}
	return e.RequiresEngram && snap.Shows(slot.BlueprintArea, slot.BlueprintSignature)
}

// resolveQuality picks the tier whose strip colour dominates the quality area.
// Items that cannot carry a quality are primitive.
func resolveQuality(snap slot.Snapshot, e *catalog.Entry, blueprint bool) catalog.Quality {
	if !e.Category.HasQuality() && !blueprint {
		return catalog.DefaultQuality
	}
	img := snap.Sub(slot.QualityArea)
	if img == nil {
		return catalog.DefaultQuality
	}

	best, bestCount := catalog.DefaultQuality, qualityMinCount
	for _, q := range catalog.Qualities() {
		c, ok := QualityColors[q]
		if !ok {
			continue
		}
		if n := snap.Vision().CountColorMatches(img, c, qualityTolerance); n > bestCount {
			best, bestCount = q, n
		}
	}
	return best
}
