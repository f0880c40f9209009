package perception

import (
	"errors"
	"image"
	"image/color"

	"go.uber.org/zap"
)

// Eye binds a Screen and a Vision into live region queries. A failed capture or
// an unreadable text region is logged and reported as the absence of a signal,
// never as an error: callers see false, zero, nil or "".
type Eye struct {
	Screen Screen
	Vision Vision
	logger *zap.Logger
}

// NewEye returns an Eye over screen and vision.
//
// Precondition: screen, vision and logger are non-nil.
func NewEye(screen Screen, vision Vision, logger *zap.Logger) *Eye {
	return &Eye{Screen: screen, Vision: vision, logger: logger}
}

// Capture captures r, returning nil when the capture failed.
func (e *Eye) Capture(r image.Rectangle) image.Image {
	img, err := e.Screen.Capture(r)
	if err != nil {
		e.logger.Warn("capture failed", zap.Stringer("region", r), zap.Error(err))
		return nil
	}
	return img
}

// Match reports whether tmpl appears in r with at least threshold.
func (e *Eye) Match(r image.Rectangle, tmpl *Template, threshold float64) bool {
	img := e.Capture(r)
	if img == nil {
		return false
	}
	ok, _ := e.Vision.MatchTemplate(img, tmpl, threshold)
	return ok
}

// LocateAll returns every region in r where tmpl appears with at least threshold.
func (e *Eye) LocateAll(r image.Rectangle, tmpl *Template, threshold float64) []image.Rectangle {
	img := e.Capture(r)
	if img == nil {
		return nil
	}
	return e.Vision.LocateAll(img, tmpl, threshold)
}

// CountColor counts pixels in r within tolerance of c.
func (e *Eye) CountColor(r image.Rectangle, c color.RGBA, tolerance int) int {
	img := e.Capture(r)
	if img == nil {
		return 0
	}
	return e.Vision.CountColorMatches(img, c, tolerance)
}

// ReadText reads the text in r. Unreadable regions yield "".
func (e *Eye) ReadText(r image.Rectangle, whitelist string) string {
	img := e.Capture(r)
	if img == nil {
		return ""
	}
	text, err := e.Vision.ReadText(img, whitelist)
	if err != nil {
		if errors.Is(err, ErrNoText) {
			e.logger.Debug("no text recognised", zap.Stringer("region", r))
		} else {
			e.logger.Warn("text recognition failed", zap.Stringer("region", r), zap.Error(err))
		}
		return ""
	}
	return text
}
