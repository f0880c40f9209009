package slot

import (
	"image"

	"github.com/cory-johannsen/asainv/internal/perception"
)

// Snapshot is a slot's pixels at one instant. It never changes after capture, so
// every query against the same Snapshot returns the same answer.
type Snapshot struct {
	Index int
	Area  image.Rectangle
	Image image.Image

	vision perception.Vision
}

// NewSnapshot wraps an already captured image of the slot at area.
//
// Precondition: img covers area; vision is non-nil.
func NewSnapshot(index int, area image.Rectangle, img image.Image, vision perception.Vision) Snapshot {
	return Snapshot{Index: index, Area: area, Image: img, vision: vision}
}

// Vision returns the vision the snapshot's predicates are evaluated with.
func (s Snapshot) Vision() perception.Vision { return s.vision }

// Sub returns the part of the image at rel, a rectangle relative to the slot origin.
// It returns nil when the snapshot holds no pixels.
func (s Snapshot) Sub(rel image.Rectangle) image.Image {
	if s.Image == nil {
		return nil
	}
	return perception.Crop(s.Image, rel.Add(s.Area.Min))
}

// Count counts the pixels in rel matching sig's colour.
func (s Snapshot) Count(rel image.Rectangle, sig Signature) int {
	img := s.Sub(rel)
	if img == nil {
		return 0
	}
	return s.vision.CountColorMatches(img, sig.Color, sig.Tolerance)
}

// Shows reports whether sig is present in rel.
func (s Snapshot) Shows(rel image.Rectangle, sig Signature) bool {
	return s.Count(rel, sig) > sig.MinCount
}

// IsEmpty reports whether the slot holds nothing. An item prints its weight in the
// lower right corner; a folder prints its name instead.
func (s Snapshot) IsEmpty() bool {
	return !s.Shows(WeightArea, TextSignature) && !s.IsFolder()
}

// IsFolder reports whether the slot shows a folder instead of an item.
func (s Snapshot) IsFolder() bool {
	return s.Shows(FolderNameArea, FolderSignature)
}

// IsHovered reports whether the slot has the hover border.
func (s Snapshot) IsHovered() bool {
	return s.Shows(IconArea, HoverSignature)
}
