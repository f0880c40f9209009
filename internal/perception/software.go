package perception

import (
	"image"
	"image/color"
)

// SoftwareVision is a pure-Go Vision. Template scores are one minus the mean
// absolute RGB difference over the template's unmasked pixels, normalised to [0, 1].
// It has no OCR engine: ReadText always returns ErrNoText.
//
// SoftwareVision holds no state and is safe for concurrent use.
type SoftwareVision struct{}

// NewSoftwareVision returns a SoftwareVision.
func NewSoftwareVision() SoftwareVision { return SoftwareVision{} }

// sampleSlack is how far below the threshold a sparse sample may score before the
// full comparison at that offset is skipped.
const sampleSlack = 0.2

// prefilterOffsets is the offset count above which the sparse sample is used.
const prefilterOffsets = 64

// MatchTemplate implements Vision.
func (SoftwareVision) MatchTemplate(img image.Image, tmpl *Template, threshold float64) (bool, float64) {
	best := 0.0
	forEachOffset(img, tmpl, threshold, func(_ image.Point, score float64) bool {
		if score > best {
			best = score
		}
		return true
	})
	return best >= threshold, best
}

// LocateAll implements Vision.
func (SoftwareVision) LocateAll(img image.Image, tmpl *Template, threshold float64) []image.Rectangle {
	var found []image.Rectangle
	forEachOffset(img, tmpl, threshold, func(at image.Point, score float64) bool {
		if score < threshold {
			return true
		}
		r := image.Rectangle{Min: at, Max: at.Add(tmpl.size)}
		for _, f := range found {
			if f.Overlaps(r) {
				return true
			}
		}
		found = append(found, r)
		return true
	})
	return found
}

// CountColorMatches implements Vision.
func (SoftwareVision) CountColorMatches(img image.Image, c color.RGBA, tolerance int) int {
	b := img.Bounds()
	tol := int32(tolerance)
	cr, cg, cb := int32(c.R), int32(c.G), int32(c.B)
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl := rgbAt(img, x, y)
			if abs32(r-cr) <= tol && abs32(g-cg) <= tol && abs32(bl-cb) <= tol {
				n++
			}
		}
	}
	return n
}

// ReadText implements Vision.
func (SoftwareVision) ReadText(image.Image, string) (string, error) {
	return "", ErrNoText
}

// forEachOffset scores tmpl at every offset where it fits inside img and calls fn
// in row-major order until fn returns false.
func forEachOffset(img image.Image, tmpl *Template, threshold float64, fn func(at image.Point, score float64) bool) {
	b := img.Bounds()
	maxX := b.Max.X - tmpl.size.X
	maxY := b.Max.Y - tmpl.size.Y
	if maxX < b.Min.X || maxY < b.Min.Y {
		return
	}
	offsets := (maxX - b.Min.X + 1) * (maxY - b.Min.Y + 1)
	prefilter := offsets > prefilterOffsets

	for y := b.Min.Y; y <= maxY; y++ {
		for x := b.Min.X; x <= maxX; x++ {
			if prefilter && score(img, tmpl.sample, x, y) < threshold-sampleSlack {
				continue
			}
			if !fn(image.Pt(x, y), score(img, tmpl.pixels, x, y)) {
				return
			}
		}
	}
}

func score(img image.Image, pixels []templatePixel, ox, oy int) float64 {
	var diff int64
	for _, p := range pixels {
		r, g, b := rgbAt(img, ox+p.dx, oy+p.dy)
		diff += int64(abs32(r-p.r) + abs32(g-p.g) + abs32(b-p.b))
	}
	return 1 - float64(diff)/float64(765*int64(len(pixels)))
}

func rgbAt(img image.Image, x, y int) (int32, int32, int32) {
	if rgba, ok := img.(*image.RGBA); ok {
		i := rgba.PixOffset(x, y)
		return int32(rgba.Pix[i]), int32(rgba.Pix[i+1]), int32(rgba.Pix[i+2])
	}
	c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	return int32(c.R), int32(c.G), int32(c.B)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
