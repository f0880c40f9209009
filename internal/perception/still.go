package perception

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// StillScreen is a Screen over a single saved screenshot. It lets the read-only
// parts of the engine run offline.
type StillScreen struct {
	img image.Image
}

// NewStillScreen returns a Screen that always shows img.
//
// Precondition: img is non-nil and laid out in screen coordinates.
func NewStillScreen(img image.Image) *StillScreen {
	return &StillScreen{img: img}
}

// LoadScreenshot decodes the PNG screenshot at path.
func LoadScreenshot(path string) (*StillScreen, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening screenshot: %w", err)
	}
	defer fh.Close()
	img, err := png.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("decoding screenshot %q: %w", path, err)
	}
	return NewStillScreen(img), nil
}

// Capture implements Screen.
func (s *StillScreen) Capture(r image.Rectangle) (image.Image, error) {
	if !r.In(s.img.Bounds()) {
		return nil, fmt.Errorf("region %v outside screenshot %v", r, s.img.Bounds())
	}
	return Crop(s.img, r), nil
}

// DiscardInput is an Input that drops every event. Sessions that only read the
// screen use it.
type DiscardInput struct{}

func (DiscardInput) MovePointer(image.Point)         {}
func (DiscardInput) Click(image.Point)               {}
func (DiscardInput) Press(string)                    {}
func (DiscardInput) HoldDown(string)                 {}
func (DiscardInput) Release(string)                  {}
func (DiscardInput) PressCombination(string, string) {}

// ClipboardPaste implements Input without touching the clipboard.
func (DiscardInput) ClipboardPaste(string) error { return nil }
