package perception

import (
	"fmt"
	"image"
	"image/color"
)

// Template is a reference image matched against captured regions. Pixels where the
// mask is transparent are ignored. A Template is immutable after construction and
// safe to share between goroutines.
type Template struct {
	name   string
	size   image.Point
	pixels []templatePixel
	sample []templatePixel
}

type templatePixel struct {
	dx, dy  int
	r, g, b int32
}

// maxSamplePixels bounds the cheap pre-check run at every candidate offset.
const maxSamplePixels = 16

// NewTemplate builds a Template from img, optionally masked by mask (alpha > 0 keeps
// a pixel). mask may be nil.
//
// Precondition: img is non-nil; mask, if non-nil, covers img's size.
// Postcondition: returns a Template with at least one counted pixel, or an error.
func NewTemplate(name string, img, mask image.Image) (*Template, error) {
	if img == nil {
		return nil, fmt.Errorf("perception: template %q: image is nil", name)
	}
	b := img.Bounds()
	if mask != nil {
		mb := mask.Bounds()
		if mb.Dx() < b.Dx() || mb.Dy() < b.Dy() {
			return nil, fmt.Errorf("perception: template %q: mask %v smaller than image %v", name, mb.Size(), b.Size())
		}
	}

	t := &Template{name: name, size: b.Size()}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if mask != nil {
				mb := mask.Bounds()
				_, _, _, a := mask.At(mb.Min.X+x, mb.Min.Y+y).RGBA()
				if a == 0 {
					continue
				}
			}
			c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			t.pixels = append(t.pixels, templatePixel{dx: x, dy: y, r: int32(c.R), g: int32(c.G), b: int32(c.B)})
		}
	}
	if len(t.pixels) == 0 {
		return nil, fmt.Errorf("perception: template %q: mask excludes every pixel", name)
	}

	step := len(t.pixels) / maxSamplePixels
	if step < 1 {
		step = 1
	}
	for i := 0; i < len(t.pixels) && len(t.sample) < maxSamplePixels; i += step {
		t.sample = append(t.sample, t.pixels[i])
	}
	return t, nil
}

// MustTemplate is NewTemplate that panics on error, for static assets.
func MustTemplate(name string, img, mask image.Image) *Template {
	t, err := NewTemplate(name, img, mask)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the template's name.
func (t *Template) Name() string { return t.name }

// Size returns the template's width and height.
func (t *Template) Size() image.Point { return t.size }
