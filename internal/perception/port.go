// Package perception defines the screen and input ports the inventory engine is
// driven through, plus a pure-Go vision implementation used by tooling and tests.
//
// Every query is made against an image whose bounds are absolute screen
// coordinates: Capture(r) returns an image with Bounds() == r, and sub-regions of it
// keep those coordinates.
package perception

import (
	"errors"
	"image"
	"image/color"
)

// ErrNoText is returned by ReadText when nothing parseable was recognised.
var ErrNoText = errors.New("perception: no text recognised")

// Screen captures regions of the game window.
type Screen interface {
	// Capture returns the pixels of r.
	//
	// Postcondition: on success the returned image's bounds equal r.
	Capture(r image.Rectangle) (image.Image, error)
}

// Vision answers pure queries against captured pixels.
//
// Implementations must be safe for concurrent use; the page scanner shares one
// Vision between its workers.
type Vision interface {
	// MatchTemplate reports whether tmpl occurs anywhere in img with a score of at
	// least threshold, along with the best score found in [0, 1].
	MatchTemplate(img image.Image, tmpl *Template, threshold float64) (bool, float64)
	// LocateAll returns the non-overlapping regions of img where tmpl scores at
	// least threshold, in row-major order.
	LocateAll(img image.Image, tmpl *Template, threshold float64) []image.Rectangle
	// CountColorMatches counts the pixels of img within tolerance of c on every channel.
	CountColorMatches(img image.Image, c color.RGBA, tolerance int) int
	// ReadText recognises text in img, restricted to whitelist when it is non-empty.
	ReadText(img image.Image, whitelist string) (string, error)
}

// Input injects pointer and keyboard events into the game window.
//
// Input is a single logical focus resource: only one goroutine may drive it.
type Input interface {
	MovePointer(p image.Point)
	// Click presses and releases the left mouse button at p.
	Click(p image.Point)
	Press(key string)
	HoldDown(key string)
	Release(key string)
	PressCombination(modifier, key string)
	// ClipboardPaste places text on the system clipboard and pastes it into the
	// focused field.
	ClipboardPaste(text string) error
}

// Keys used by the engine that are not configurable game action mappings.
const (
	KeyEnter  = "enter"
	KeyEscape = "esc"
	KeyDelete = "delete"
	KeyCtrl   = "ctrl"
)

// Center returns the centre point of r.
func Center(r image.Rectangle) image.Point {
	return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
}

// Crop returns the part of img inside r, keeping absolute coordinates.
//
// Postcondition: the result's bounds are r intersected with img.Bounds().
func Crop(img image.Image, r image.Rectangle) image.Image {
	r = r.Intersect(img.Bounds())
	if sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(r)
	}
	out := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

// RGB is shorthand for an opaque colour.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
