// Package identify determines which catalog item a slot holds. A cheap feature
// vector narrows the catalog first; only the survivors are template matched.
package identify

import (
	"fmt"

	"github.com/cory-johannsen/asainv/internal/catalog"
	"github.com/cory-johannsen/asainv/internal/slot"
)

// FeatureVector is what can be read off a slot without knowing its item.
type FeatureVector struct {
	HasArmorModifier  bool
	HasDamageModifier bool
	IsStack           bool
	HasSpoilBar       bool
	HasDurabilityBar  bool
}

func (f FeatureVector) String() string {
	return fmt.Sprintf("armor=%t damage=%t stack=%t spoil=%t durability=%t",
		f.HasArmorModifier, f.HasDamageModifier, f.IsStack, f.HasSpoilBar, f.HasDurabilityBar)
}

// ExtractFeatures reads the feature vector from a snapshot.
//
// Postcondition: the result depends only on snap's pixels.
func ExtractFeatures(snap slot.Snapshot) FeatureVector {
	return FeatureVector{
		HasArmorModifier:  snap.Shows(slot.ModifierArea, slot.ArmorSignature),
		HasDamageModifier: snap.Shows(slot.ModifierArea, slot.DamageSignature),
		IsStack:           snap.Shows(slot.StackCountArea, slot.TextSignature),
		HasSpoilBar:       snap.Shows(slot.BarArea, slot.SpoilSignature),
		HasDurabilityBar:  snap.Shows(slot.BarArea, slot.DurabilitySignature),
	}
}

// Matches reports whether e could be the item that produced f. It is a necessary
// condition only: a true result still needs an icon match.
func Matches(f FeatureVector, e *catalog.Entry) bool {
	if f.HasDurabilityBar != e.HasDurability || f.HasSpoilBar != e.HasSpoilTimer {
		return false
	}
	// A single item can still be stackable, but a visible count rules out entries
	// that never stack.
	if f.IsStack && e.StackSize <= 1 {
		return false
	}
	return MatchesCategory(f, e.Category)
}

// MatchesCategory reports whether an item of category c could produce f. Shields
// are equippable without an armor value, and some weapons have no damage value, so
// only the presence of a modifier constrains the category.
func MatchesCategory(f FeatureVector, c catalog.Category) bool {
	if f.HasArmorModifier && c != catalog.Equippable {
		return false
	}
	if f.HasDamageModifier && c != catalog.Weapon {
		return false
	}
	return true
}
