package inventory

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/cory-johannsen/asainv/internal/perception"
)

// Variant selects which side of the transfer screen an inventory occupies.
type Variant int

const (
	// Local is the player's own inventory on the left.
	Local Variant = iota
	// Remote is the structure or creature inventory on the right.
	Remote
)

func (v Variant) String() string {
	switch v {
	case Local:
		return "local"
	case Remote:
		return "remote"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant resolves "local" or "remote", case-insensitively.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "local":
		return Local, nil
	case "remote":
		return Remote, nil
	default:
		return 0, fmt.Errorf("unknown inventory variant %q", s)
	}
}

// Geometry is the fixed screen layout of one inventory variant at 1920x1080.
type Geometry struct {
	Variant    Variant
	SlotOrigin image.Point
	Area       image.Rectangle
	ItemArea   image.Rectangle
	SearchBar  image.Rectangle
	Filter     image.Rectangle
	// FilterButton is the dropdown button at the right end of the filter.
	FilterButton image.Rectangle

	TransferAll image.Rectangle
	DropAll     image.Rectangle
	NewFolder   image.Rectangle
	AutoStack   image.Rectangle
	FolderView  image.Rectangle
	// InfoTab is the "you" tab for the local variant and "them" for the remote one.
	InfoTab image.Rectangle
	Close   image.Rectangle
	// Receiving is where the remote inventory shows its loading banner.
	Receiving image.Rectangle
}

// FolderNamePoint is where the name field of the new-folder dialog is clicked.
var FolderNamePoint = image.Pt(895, 499)

const (
	managementButtonSize = 45
	filterButtonWidth    = 48
)

func rect(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}

func managementButton(x int) image.Rectangle {
	return rect(x, 176, managementButtonSize, managementButtonSize)
}

// GeometryFor returns the layout of v.
func GeometryFor(v Variant) Geometry {
	pick := func(local, remote int) int {
		if v == Remote {
			return remote
		}
		return local
	}
	g := Geometry{
		Variant:     v,
		SlotOrigin:  image.Pt(pick(178, 1205), 239),
		Area:        rect(pick(149, 1179), 94, 591, 827),
		ItemArea:    rect(pick(178, 1205), 239, 552, 588),
		SearchBar:   rect(pick(177, 1207), 176, 133, 44),
		Filter:      rect(pick(175, 1205), 841, 552, 42),
		TransferAll: managementButton(pick(393, 1415)),
		DropAll:     managementButton(pick(440, 1463)),
		NewFolder:   managementButton(pick(536, 1558)),
		AutoStack:   managementButton(pick(584, 1606)),
		FolderView:  managementButton(pick(632, 1654)),
		InfoTab:     rect(756, 122, 117, 51),
		Close:       rect(1781, 49, 36, 33),
		Receiving:   rect(1340, 511, 295, 34),
	}
	g.FilterButton = image.Rectangle{Min: image.Pt(g.Filter.Max.X-filterButtonWidth, g.Filter.Min.Y), Max: g.Filter.Max}
	if v == Remote {
		g.InfoTab = rect(1043, 126, 121, 48)
	}
	return g
}

// FilterArrowOffset is where the dropdown arrow sits inside the filter area.
var FilterArrowOffset = image.Pt(520, 15)

var (
	filterArrowColor      = perception.RGB(215, 235, 240)
	filterArrowBackground = perception.RGB(8, 34, 45)
)

// FilterArrow returns the category filter's dropdown arrow. The arrow is shown
// exactly while the inventory is open.
func FilterArrow() *image.RGBA {
	const w, h = 18, 12
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := filterArrowBackground
			// A downward triangle, widest in row 2 and closing by row 10.
			if y >= 2 && y < 10 && x >= y-1 && x <= w-y {
				c = filterArrowColor
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

var filterArrowTemplate = perception.MustTemplate("filter arrow", FilterArrow(), nil)

// Receiving banner text and entered search text.
var (
	receivingTextColor = perception.RGB(255, 243, 191)
	searchTextColor    = perception.RGB(227, 244, 251)
)

const (
	openThreshold      = 0.8
	receivingTolerance = 25
	receivingMinCount  = 100
	searchTextTol      = 20
	searchTextMinCount = 40
	// hasThreshold and countThreshold are the icon scores used when searching the
	// whole item area rather than a single slot.
	hasThreshold   = 0.7
	countThreshold = 0.9
)

// ReceivingTextColor is the colour of the remote inventory loading banner text.
func ReceivingTextColor() color.RGBA { return receivingTextColor }

// SearchTextColor is the colour of text typed into the search bar.
func SearchTextColor() color.RGBA { return searchTextColor }
