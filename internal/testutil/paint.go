package testutil

import (
	"image"
	"image/color"

	"github.com/cory-johannsen/asainv/internal/slot"
)

// IconOffset is where PaintItem draws the icon inside a slot.
var IconOffset = image.Pt(23, 22)

// IconSize is the size of icons returned by Icon.
var IconSize = image.Pt(40, 40)

var (
	slotBackground  = color.RGBA{R: 30, G: 45, B: 52, A: 0xff}
	emptyBackground = color.RGBA{R: 25, G: 38, B: 44, A: 0xff}
)

// iconPalette holds colour pairs chosen to stay clear of every UI signature.
var iconPalette = [][2]color.RGBA{
	{{R: 160, G: 90, B: 40, A: 0xff}, {R: 90, G: 60, B: 30, A: 0xff}},
	{{R: 70, G: 140, B: 70, A: 0xff}, {R: 140, G: 180, B: 90, A: 0xff}},
	{{R: 120, G: 70, B: 150, A: 0xff}, {R: 60, G: 40, B: 90, A: 0xff}},
	{{R: 180, G: 160, B: 60, A: 0xff}, {R: 110, G: 100, B: 40, A: 0xff}},
	{{R: 90, G: 90, B: 160, A: 0xff}, {R: 160, G: 120, B: 120, A: 0xff}},
	{{R: 150, G: 60, B: 90, A: 0xff}, {R: 200, G: 140, B: 100, A: 0xff}},
	{{R: 60, G: 120, B: 120, A: 0xff}, {R: 120, G: 60, B: 60, A: 0xff}},
	{{R: 100, G: 100, B: 100, A: 0xff}, {R: 170, G: 80, B: 160, A: 0xff}},
}

// IconCount is the number of distinct icons Icon can produce. Any two of them
// score below 0.9 against each other, so catalogs built from them should use a
// higher match threshold.
const IconCount = 8

// Icon returns a 40x40 checkered icon, distinct for each seed below IconCount.
func Icon(seed int) *image.RGBA {
	pair := iconPalette[seed%len(iconPalette)]
	const stripe = 2
	img := image.NewRGBA(image.Rectangle{Max: IconSize})
	for y := 0; y < IconSize.Y; y++ {
		for x := 0; x < IconSize.X; x++ {
			c := pair[0]
			if (x/stripe+y/stripe)%2 == 1 {
				c = pair[1]
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Look describes what PaintItem draws in a slot.
type Look struct {
	Icon image.Image
	// Stack draws a stack count.
	Stack bool
	// Spoil and Durability draw a bar filled to the given fraction; zero draws none.
	Spoil      float64
	Durability float64
	Armor      bool
	Damage     bool
	Blueprint  bool
	// Quality, when non-nil, draws the quality strip in that colour.
	Quality *color.RGBA
}

func rel(area image.Rectangle, r image.Rectangle) image.Rectangle {
	return r.Add(area.Min)
}

// PaintEmpty draws an empty slot.
func (s *Screen) PaintEmpty(area image.Rectangle) {
	s.Fill(area, emptyBackground)
}

// PaintFolder draws a folder in the slot.
func (s *Screen) PaintFolder(area image.Rectangle) {
	s.Fill(area, slotBackground)
	s.Fill(rel(area, image.Rect(2, 64, 84, 84)), slot.FolderSignature.Color)
}

// PaintItem draws an occupied slot.
func (s *Screen) PaintItem(area image.Rectangle, look Look) {
	s.Fill(area, slotBackground)
	if look.Icon != nil {
		s.Draw(area.Min.Add(IconOffset), look.Icon)
	}
	s.Fill(rel(area, image.Rect(48, 70, 82, 78)), slot.TextSignature.Color)
	if look.Stack {
		s.Fill(rel(area, image.Rect(46, 4, 82, 14)), slot.TextSignature.Color)
	}
	switch {
	case look.Armor:
		s.Fill(rel(area, image.Rect(4, 64, 16, 76)), slot.ArmorSignature.Color)
	case look.Damage:
		s.Fill(rel(area, image.Rect(4, 64, 16, 76)), slot.DamageSignature.Color)
	}
	if look.Spoil > 0 {
		s.Fill(rel(area, image.Rect(0, 81, int(float64(slot.Width)*look.Spoil), 86)), slot.SpoilSignature.Color)
	}
	if look.Durability > 0 {
		s.Fill(rel(area, image.Rect(0, 81, int(float64(slot.Width)*look.Durability), 86)), slot.DurabilitySignature.Color)
	}
	if look.Blueprint {
		s.Fill(rel(area, image.Rect(0, 0, 20, 20)), slot.BlueprintSignature.Color)
	}
	if look.Quality != nil {
		s.Fill(rel(area, slot.QualityArea), *look.Quality)
	}
}

// PaintHover draws the hover border around the slot.
func (s *Screen) PaintHover(area image.Rectangle) {
	s.Border(area, 2, slot.HoverSignature.Color)
}

// ClearHover repaints the border rows with the slot background.
func (s *Screen) ClearHover(area image.Rectangle) {
	s.Border(area, 2, slotBackground)
}

// PaintTooltip draws the tooltip panel next to sl.
func (s *Screen) PaintTooltip(sl slot.Slot) {
	s.Fill(sl.TooltipArea(), slot.TooltipSignature.Color)
}

// ClearTooltip removes the tooltip panel next to sl.
func (s *Screen) ClearTooltip(sl slot.Slot) {
	s.Fill(sl.TooltipArea(), Background)
}
