package inventory

import (
	"image"

	"github.com/cory-johannsen/asainv/internal/perception"
	"github.com/cory-johannsen/asainv/internal/slot"
)

// Capability is a set of things a Control can report about itself.
type Capability uint8

const (
	// Toggleable controls light up while their mode is on and dim while disabled.
	Toggleable Capability = 1 << iota
	// Selectable controls are tabs that show which one is active.
	Selectable
	// ExistenceCheckable controls may be absent from the screen.
	ExistenceCheckable
)

// Has reports whether c includes every capability in want.
func (c Capability) Has(want Capability) bool { return c&want == want }

// Control signatures.
var (
	ToggledSignature   = slot.Signature{Color: perception.RGB(255, 231, 128), Tolerance: 10, MinCount: 30}
	AvailableSignature = slot.Signature{Color: perception.RGB(171, 140, 0), Tolerance: 10, MinCount: 20}
	SelectedSignature  = slot.Signature{Color: perception.RGB(255, 244, 188), Tolerance: 10, MinCount: 100}
	InactiveSignature  = slot.Signature{Color: perception.RGB(155, 141, 80), Tolerance: 10, MinCount: 100}
)

// Control is a clickable region of the inventory UI. What it can report is decided
// by its capabilities; a query outside them answers false.
type Control struct {
	Name    string
	Area    image.Rectangle
	Caps    Capability
	Padding int
}

func newControl(name string, area image.Rectangle, caps Capability) Control {
	return Control{Name: name, Area: area, Caps: caps, Padding: 2}
}

// ClickPoint returns where Press clicks: the centre of the padded area.
func (c Control) ClickPoint() image.Point {
	return perception.Center(c.Area.Inset(c.Padding))
}

// Press clicks the control.
func (c Control) Press(in perception.Input) {
	in.Click(c.ClickPoint())
}

func (c Control) shows(eye *perception.Eye, sig slot.Signature) bool {
	return eye.CountColor(c.Area, sig.Color, sig.Tolerance) > sig.MinCount
}

// IsToggled reports whether a toggleable control is switched on.
func (c Control) IsToggled(eye *perception.Eye) bool {
	return c.Caps.Has(Toggleable) && c.shows(eye, ToggledSignature)
}

// IsAvailable reports whether a toggleable control can currently be pressed.
func (c Control) IsAvailable(eye *perception.Eye) bool {
	return c.Caps.Has(Toggleable) && c.shows(eye, AvailableSignature)
}

// IsSelected reports whether a selectable tab is the active one.
func (c Control) IsSelected(eye *perception.Eye) bool {
	return c.Caps.Has(Selectable) && c.shows(eye, SelectedSignature)
}

// Exists reports whether the control is on screen at all. A selected tab always
// exists.
func (c Control) Exists(eye *perception.Eye) bool {
	if !c.Caps.Has(ExistenceCheckable) {
		return false
	}
	return c.shows(eye, InactiveSignature) || c.IsSelected(eye)
}
