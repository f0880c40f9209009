package perception

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"
)

var (
	black = RGB(0, 0, 0)
	red   = RGB(220, 30, 30)
	blue  = RGB(20, 40, 230)
)

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// checker returns a 6x6 icon with a red/blue checkerboard.
func checker() *image.RGBA {
	icon := image.NewRGBA(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if (x+y)%2 == 0 {
				icon.Set(x, y, red)
			} else {
				icon.Set(x, y, blue)
			}
		}
	}
	return icon
}

func TestCountColorMatches_Tolerance(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 20, 20))
	fill(img, img.Bounds(), black)
	fill(img, image.Rect(10, 10, 15, 12), RGB(225, 25, 35))

	v := NewSoftwareVision()
	assert.Equal(t, 10, v.CountColorMatches(img, red, 10))
	assert.Equal(t, 0, v.CountColorMatches(img, red, 4))
}

func TestMatchTemplate_FindsIconAtOffset(t *testing.T) {
	img := image.NewRGBA(image.Rect(100, 100, 130, 120))
	fill(img, img.Bounds(), black)
	draw.Draw(img, image.Rect(110, 105, 116, 111), checker(), image.Point{}, draw.Src)

	tmpl := MustTemplate("checker", checker(), nil)
	ok, s := NewSoftwareVision().MatchTemplate(img, tmpl, 0.95)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, s, 1e-9)
}

func TestMatchTemplate_MaskIgnoresBackground(t *testing.T) {
	icon := checker()
	mask := image.NewAlpha(icon.Bounds())
	fill2 := image.Rect(1, 1, 5, 5)
	draw.Draw(mask, fill2, &image.Uniform{C: color.Alpha{A: 0xff}}, image.Point{}, draw.Src)

	img := image.NewRGBA(image.Rect(0, 0, 6, 6))
	draw.Draw(img, img.Bounds(), icon, image.Point{}, draw.Src)
	// Corrupt the border, which the mask excludes.
	for x := 0; x < 6; x++ {
		img.Set(x, 0, RGB(255, 255, 255))
	}

	v := NewSoftwareVision()
	unmasked, _ := v.MatchTemplate(img, MustTemplate("plain", icon, nil), 0.95)
	masked, s := v.MatchTemplate(img, MustTemplate("masked", icon, mask), 0.95)
	assert.False(t, unmasked)
	assert.True(t, masked)
	assert.InDelta(t, 1.0, s, 1e-9)
}

func TestMatchTemplate_TemplateLargerThanImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	ok, s := NewSoftwareVision().MatchTemplate(img, MustTemplate("checker", checker(), nil), 0.5)
	assert.False(t, ok)
	assert.Zero(t, s)
}

func TestLocateAll_NonOverlapping(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 10))
	fill(img, img.Bounds(), black)
	draw.Draw(img, image.Rect(2, 2, 8, 8), checker(), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(20, 2, 26, 8), checker(), image.Point{}, draw.Src)

	found := NewSoftwareVision().LocateAll(img, MustTemplate("checker", checker(), nil), 0.99)
	require.Len(t, found, 2)
	assert.Equal(t, image.Rect(2, 2, 8, 8), found[0])
	assert.Equal(t, image.Rect(20, 2, 26, 8), found[1])
}

func TestNewTemplate_RejectsFullyMasked(t *testing.T) {
	mask := image.NewAlpha(image.Rect(0, 0, 6, 6))
	_, err := NewTemplate("empty", checker(), mask)
	assert.Error(t, err)
}

func TestCrop_KeepsAbsoluteCoordinates(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	sub := Crop(img, image.Rect(40, 40, 60, 60))
	assert.Equal(t, image.Rect(40, 40, 50, 50), sub.Bounds())
}

func TestCenter(t *testing.T) {
	assert.Equal(t, image.Pt(221, 282), Center(image.Rect(178, 239, 264, 326)))
}

type failingScreen struct{}

func (failingScreen) Capture(image.Rectangle) (image.Image, error) {
	return nil, errors.New("window minimised")
}

func TestEye_CaptureFailureIsNegativeSignal(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	eye := NewEye(failingScreen{}, NewSoftwareVision(), zap.New(core))
	r := image.Rect(0, 0, 10, 10)

	assert.False(t, eye.Match(r, MustTemplate("checker", checker(), nil), 0.5))
	assert.Zero(t, eye.CountColor(r, red, 10))
	assert.Nil(t, eye.LocateAll(r, MustTemplate("checker", checker(), nil), 0.5))
	assert.Empty(t, eye.ReadText(r, ""))
	assert.Equal(t, 4, logs.FilterMessage("capture failed").Len())
}

type blankScreen struct{}

func (blankScreen) Capture(r image.Rectangle) (image.Image, error) {
	return image.NewRGBA(r), nil
}

func TestEye_ReadTextWithoutOCR(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	eye := NewEye(blankScreen{}, NewSoftwareVision(), zap.New(core))
	assert.Empty(t, eye.ReadText(image.Rect(0, 0, 5, 5), "0123456789"))
	assert.Equal(t, 1, logs.FilterMessage("no text recognised").Len())
}

type recordingKeys struct{ combos []string }

func (k *recordingKeys) PressCombination(mod, key string) { k.combos = append(k.combos, mod+"+"+key) }

func TestClipboardPaster(t *testing.T) {
	var written string
	orig := clipboardWriteAll
	clipboardWriteAll = func(s string) error { written = s; return nil }
	t.Cleanup(func() { clipboardWriteAll = orig })

	keys := &recordingKeys{}
	require.NoError(t, ClipboardPaster{Keys: keys}.ClipboardPaste("Metal Ingot"))
	assert.Equal(t, "Metal Ingot", written)
	assert.Equal(t, []string{"ctrl+v"}, keys.combos)
}

func TestClipboardPaster_WriteFailureSendsNoKeys(t *testing.T) {
	orig := clipboardWriteAll
	clipboardWriteAll = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { clipboardWriteAll = orig })

	keys := &recordingKeys{}
	assert.Error(t, ClipboardPaster{Keys: keys}.ClipboardPaste("x"))
	assert.Empty(t, keys.combos)
}

func TestPropertyExactPlacementScoresOne(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.IntRange(0, 24).Draw(t, "x")
		y := rapid.IntRange(0, 14).Draw(t, "y")
		img := image.NewRGBA(image.Rect(0, 0, 30, 20))
		fill(img, img.Bounds(), black)
		draw.Draw(img, image.Rect(x, y, x+6, y+6), checker(), image.Point{}, draw.Src)

		found := NewSoftwareVision().LocateAll(img, MustTemplate("checker", checker(), nil), 0.99)
		if len(found) != 1 || found[0].Min != image.Pt(x, y) {
			t.Fatalf("expected single match at (%d,%d), got %v", x, y, found)
		}
	})
}

func TestStillScreen(t *testing.T) {
	shot := image.NewRGBA(image.Rect(0, 0, 100, 80))
	fill(shot, image.Rect(10, 10, 20, 20), red)
	screen := NewStillScreen(shot)

	img, err := screen.Capture(image.Rect(5, 5, 25, 25))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(5, 5, 25, 25), img.Bounds())
	assert.Equal(t, 100, NewSoftwareVision().CountColorMatches(img, red, 0))

	_, err = screen.Capture(image.Rect(90, 70, 110, 90))
	assert.Error(t, err)
}

func TestLoadScreenshot_Missing(t *testing.T) {
	_, err := LoadScreenshot(t.TempDir() + "/missing.png")
	assert.Error(t, err)
}
