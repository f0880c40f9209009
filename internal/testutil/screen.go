// Package testutil provides scripted fakes of the perception and input ports and a
// manual clock, so interaction loops can be exercised deterministically.
package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// ScreenBounds is the resolution the UI geometry is laid out for.
var ScreenBounds = image.Rect(0, 0, 1920, 1080)

// Background is the colour a fresh Screen is filled with.
var Background = color.RGBA{R: 20, G: 30, B: 35, A: 0xff}

// Screen is an in-memory game window. Capture copies pixels, so a returned image is
// unaffected by later painting. All methods are safe for concurrent use.
type Screen struct {
	mu        sync.Mutex
	canvas    *image.RGBA
	captures  map[image.Rectangle]int
	onCapture func(r image.Rectangle, n int)
}

// NewScreen returns a Screen filled with Background.
func NewScreen() *Screen {
	s := &Screen{
		canvas:   image.NewRGBA(ScreenBounds),
		captures: make(map[image.Rectangle]int),
	}
	draw.Draw(s.canvas, s.canvas.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)
	return s
}

// OnCapture installs a hook run before every capture with the region and how many
// times it has been captured before. The hook may paint.
func (s *Screen) OnCapture(fn func(r image.Rectangle, n int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onCapture = fn
}

// Capture implements perception.Screen.
func (s *Screen) Capture(r image.Rectangle) (image.Image, error) {
	s.mu.Lock()
	n := s.captures[r]
	s.captures[r] = n + 1
	hook := s.onCapture
	s.mu.Unlock()

	if hook != nil {
		hook(r, n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := image.NewRGBA(r)
	draw.Draw(out, r, s.canvas, r.Min, draw.Src)
	return out, nil
}

// Captures returns how many times r has been captured.
func (s *Screen) Captures(r image.Rectangle) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captures[r]
}

// Fill paints r with c.
func (s *Screen) Fill(r image.Rectangle, c color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draw.Draw(s.canvas, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// Draw copies img onto the screen with its top-left corner at at.
func (s *Screen) Draw(at image.Point, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := img.Bounds()
	draw.Draw(s.canvas, image.Rectangle{Min: at, Max: at.Add(b.Size())}, img, b.Min, draw.Src)
}

// Border paints a frame of the given thickness just inside r.
func (s *Screen) Border(r image.Rectangle, thickness int, c color.RGBA) {
	s.Fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness), c)
	s.Fill(image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y), c)
	s.Fill(image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y), c)
	s.Fill(image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// Image returns a copy of the whole screen, for saving as a screenshot.
func (s *Screen) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := image.NewRGBA(s.canvas.Bounds())
	draw.Draw(out, out.Bounds(), s.canvas, out.Bounds().Min, draw.Src)
	return out
}
