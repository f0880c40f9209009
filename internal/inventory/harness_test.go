package inventory_test

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/asainv/internal/catalog"
	"github.com/cory-johannsen/asainv/internal/config"
	"github.com/cory-johannsen/asainv/internal/inventory"
	"github.com/cory-johannsen/asainv/internal/perception"
	"github.com/cory-johannsen/asainv/internal/session"
	"github.com/cory-johannsen/asainv/internal/testutil"
)

const pollInterval = 50 * time.Millisecond

type harness struct {
	t      *testing.T
	screen *testutil.Screen
	input  *testutil.Input
	clock  *testutil.Clock
	cfg    config.Config
	sess   *session.Session
	inv    *inventory.Inventory
	cat    *catalog.Catalog
}

// testCatalog holds Wood (icon 0), Thatch (icon 1) and Stone (icon 3).
func testCatalog(t *testing.T) *catalog.Catalog {
	wood := testutil.Entry("Wood", catalog.Resource, 0)
	wood.StackSize = 100
	thatch := testutil.Entry("Thatch", catalog.Resource, 1)
	thatch.StackSize = 200
	stone := testutil.Entry("Stone", catalog.Resource, 3)
	stone.StackSize = 100
	return testutil.Catalog(t, wood, thatch, stone)
}

func newHarness(t *testing.T, variant inventory.Variant, tweak ...func(*config.Config)) *harness {
	t.Helper()
	cfg, err := config.LoadDefaults()
	require.NoError(t, err)
	cfg.Timing.PollInterval = pollInterval
	for _, fn := range tweak {
		fn(&cfg)
	}

	h := &harness{
		t:      t,
		screen: testutil.NewScreen(),
		input:  testutil.NewInput(),
		clock:  testutil.NewClock(),
		cfg:    cfg,
		cat:    testCatalog(t),
	}
	h.sess = session.New(session.Ports{
		Screen: h.screen,
		Vision: perception.NewSoftwareVision(),
		Input:  h.input,
		Clock:  h.clock,
	}, h.cat, cfg, zap.NewNop())
	h.inv = inventory.New(h.sess, variant)
	for _, sl := range h.inv.Slots {
		h.screen.PaintEmpty(sl.Area)
	}
	return h
}

func (h *harness) entry(name string) *catalog.Entry {
	e, ok := h.cat.Lookup(name)
	require.True(h.t, ok, name)
	return e
}

// open shows the filter dropdown arrow.
func (h *harness) open() {
	h.screen.Draw(h.inv.Geometry().Filter.Min.Add(inventory.FilterArrowOffset), inventory.FilterArrow())
}

// shut hides the filter dropdown arrow.
func (h *harness) shut() {
	h.screen.Fill(h.inv.Geometry().Filter, testutil.Background)
}

// stone paints a stack of stone into slot i.
func (h *harness) stone(i int) {
	h.screen.PaintItem(h.inv.Slots[i].Area, testutil.Look{Icon: testutil.Icon(3), Stack: true})
}

func (h *harness) wood(i int) {
	h.screen.PaintItem(h.inv.Slots[i].Area, testutil.Look{Icon: testutil.Icon(0), Stack: true})
}

func (h *harness) slotAt(p image.Point) int {
	for i, sl := range h.inv.Slots {
		if sl.Center() == p {
			return i
		}
	}
	return -1
}

// game reacts to input the way the game UI would. Every field is optional.
type game struct {
	// hover paints the hover border on the slot under the pointer.
	hover bool
	// onPress runs for every key press.
	onPress func(key string)
	// onClick runs for every click.
	onClick func(p image.Point)
	// onPaste runs for every pasted text.
	onPaste func(text string)
	// onMove runs for every pointer move with the slot under the pointer, or -1.
	onMove func(slot int)
}

func (h *harness) play(g game) {
	hovered := -1
	h.input.OnEvent(func(e testutil.Event) {
		switch e.Kind {
		case testutil.EventMove:
			i := h.slotAt(e.Point)
			if g.hover {
				if hovered >= 0 && hovered != i {
					h.screen.ClearHover(h.inv.Slots[hovered].Area)
				}
				if i >= 0 {
					h.screen.PaintHover(h.inv.Slots[i].Area)
				}
				hovered = i
			}
			if g.onMove != nil {
				g.onMove(i)
			}
		case testutil.EventPress:
			if g.onPress != nil {
				g.onPress(e.Key)
			}
		case testutil.EventClick:
			if g.onClick != nil {
				g.onClick(e.Point)
			}
		case testutil.EventPaste:
			if g.onPaste != nil {
				g.onPaste(e.Text)
			}
		}
	})
}

// typeSearch paints entered text into the search bar.
func (h *harness) typeSearch() {
	bar := h.inv.Geometry().SearchBar
	h.screen.Fill(image.Rect(bar.Min.X+10, bar.Min.Y+14, bar.Min.X+80, bar.Min.Y+28), inventory.SearchTextColor())
}

func (h *harness) clearSearch() {
	h.screen.Fill(h.inv.Geometry().SearchBar, testutil.Background)
}

func (h *harness) keyPresses(key string) int {
	return h.input.Count(testutil.EventPress, key)
}

func (h *harness) clicksAt(p image.Point) int {
	n := 0
	for _, e := range h.input.Events() {
		if e.Kind == testutil.EventClick && e.Point == p {
			n++
		}
	}
	return n
}

func (h *harness) moves() []int {
	var out []int
	for _, e := range h.input.Events() {
		if e.Kind == testutil.EventMove {
			out = append(out, h.slotAt(e.Point))
		}
	}
	return out
}
