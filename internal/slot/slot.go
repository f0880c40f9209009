// Package slot models one cell of the inventory grid: its fixed screen geometry,
// point-in-time snapshots of its pixels, and the visual predicates derived from them.
package slot

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cory-johannsen/asainv/internal/perception"
)

// Grid geometry shared by every inventory variant.
const (
	Columns = 6
	Rows    = 6
	// PerPage is the number of slots on one inventory page.
	PerPage = Columns * Rows
	// Stride is the distance between neighbouring slot origins on both axes.
	Stride = 93
	Width  = 86
	Height = 87
)

// Sub-regions relative to the slot origin.
var (
	IconArea       = image.Rect(0, 0, Width, Height)
	ModifierArea   = image.Rect(2, 62, 18, 78)
	StackCountArea = image.Rect(44, 2, 84, 18)
	BarArea        = image.Rect(0, 80, Width, Height)
	WeightArea     = image.Rect(46, 68, 84, 85)
	FolderNameArea = image.Rect(0, 60, Width, Height)
	BlueprintArea  = image.Rect(0, 0, 22, 22)
	QualityArea    = image.Rect(0, 0, Width, 4)
	TooltipSize    = image.Pt(300, 200)
)

// Signature is a colour looked for in a region, the per-channel tolerance, and the
// pixel count above which the signature is present.
type Signature struct {
	Color     color.RGBA
	Tolerance int
	MinCount  int
}

// Visual signatures of the slot UI.
var (
	TextSignature       = Signature{Color: perception.RGB(227, 244, 251), Tolerance: 20, MinCount: 8}
	FolderSignature     = Signature{Color: perception.RGB(255, 216, 110), Tolerance: 15, MinCount: 60}
	HoverSignature      = Signature{Color: perception.RGB(250, 250, 250), Tolerance: 5, MinCount: 300}
	TooltipSignature    = Signature{Color: perception.RGB(8, 34, 45), Tolerance: 10, MinCount: 5000}
	ArmorSignature      = Signature{Color: perception.RGB(138, 210, 230), Tolerance: 12, MinCount: 10}
	DamageSignature     = Signature{Color: perception.RGB(230, 95, 60), Tolerance: 12, MinCount: 10}
	SpoilSignature      = Signature{Color: perception.RGB(0, 207, 95), Tolerance: 20, MinCount: 40}
	DurabilitySignature = Signature{Color: perception.RGB(5, 170, 220), Tolerance: 20, MinCount: 40}
	BlueprintSignature  = Signature{Color: perception.RGB(70, 110, 200), Tolerance: 15, MinCount: 20}
)

// Slot is one fixed grid cell. Its index determines its region; slots are never
// reordered, only re-populated by the game.
type Slot struct {
	Index int
	Area  image.Rectangle
	eye   *perception.Eye
}

// New returns the slot at index in a grid whose first slot sits at origin.
//
// Precondition: 0 <= index < PerPage; eye is non-nil.
// Postcondition: Area is origin offset by (col*Stride, row*Stride), Width x Height.
func New(index int, origin image.Point, eye *perception.Eye) Slot {
	return Slot{Index: index, Area: Region(index, origin), eye: eye}
}

// Region returns the screen region of slot index in a grid anchored at origin.
//
// Precondition: 0 <= index < PerPage.
func Region(index int, origin image.Point) image.Rectangle {
	row, col := index/Columns, index%Columns
	min := origin.Add(image.Pt(col*Stride, row*Stride))
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(Width, Height))}
}

// Grid returns all PerPage slots anchored at origin in row-major order.
func Grid(origin image.Point, eye *perception.Eye) [PerPage]Slot {
	var out [PerPage]Slot
	for i := range out {
		out[i] = New(i, origin, eye)
	}
	return out
}

func (s Slot) String() string {
	return fmt.Sprintf("slot %d %v", s.Index, s.Area)
}

// Center returns the point the pointer is moved to when selecting the slot.
func (s Slot) Center() image.Point {
	return perception.Center(s.Area)
}

// TooltipArea is where the item tooltip panel appears while the slot is hovered.
func (s Slot) TooltipArea() image.Rectangle {
	min := image.Pt(s.Area.Max.X, s.Area.Min.Y)
	return image.Rectangle{Min: min, Max: min.Add(TooltipSize)}
}

// Snapshot captures the slot's pixels.
//
// Postcondition: on success the snapshot's image covers Area; capture failures are
// returned as errors so callers that must distinguish them can.
func (s Slot) Snapshot() (Snapshot, error) {
	img, err := s.eye.Screen.Capture(s.Area)
	if err != nil {
		return Snapshot{}, fmt.Errorf("capturing %s: %w", s, err)
	}
	return Snapshot{Index: s.Index, Area: s.Area, Image: img, vision: s.eye.Vision}, nil
}

// live captures a snapshot for a one-off predicate. A failed capture yields a
// snapshot with no pixels, which reads as no signal at all.
func (s Slot) live() Snapshot {
	return Snapshot{Index: s.Index, Area: s.Area, Image: s.eye.Capture(s.Area), vision: s.eye.Vision}
}

// IsEmpty captures the slot and reports whether it holds nothing.
func (s Slot) IsEmpty() bool { return s.live().IsEmpty() }

// IsFolder captures the slot and reports whether it shows a folder.
func (s Slot) IsFolder() bool { return s.live().IsFolder() }

// IsHovered captures the slot and reports whether it has the hover border.
func (s Slot) IsHovered() bool { return s.live().IsHovered() }

// HasTooltip reports whether the item tooltip panel is shown next to the slot.
func (s Slot) HasTooltip() bool {
	return s.eye.CountColor(s.TooltipArea(), TooltipSignature.Color, TooltipSignature.Tolerance) > TooltipSignature.MinCount
}
