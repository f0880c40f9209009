package scan_test

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/cory-johannsen/asainv/internal/catalog"
	"github.com/cory-johannsen/asainv/internal/identify"
	"github.com/cory-johannsen/asainv/internal/perception"
	"github.com/cory-johannsen/asainv/internal/scan"
	"github.com/cory-johannsen/asainv/internal/slot"
	"github.com/cory-johannsen/asainv/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var origin = image.Pt(178, 239)

var errCapture = errors.New("capture device lost")

// flakyScreen fails captures of one region.
type flakyScreen struct {
	*testutil.Screen
	fail image.Rectangle
}

func (s flakyScreen) Capture(r image.Rectangle) (image.Image, error) {
	if r == s.fail {
		return nil, errCapture
	}
	return s.Screen.Capture(r)
}

type page struct {
	screen  *testutil.Screen
	grid    [slot.PerPage]slot.Slot
	scanner *scan.Scanner
}

func itemCatalog(t *testing.T) *catalog.Catalog {
	entries := make([]*catalog.Entry, 0, testutil.IconCount)
	for i := 0; i < testutil.IconCount; i++ {
		e := testutil.Entry(itemName(i), catalog.Resource, i)
		e.StackSize = 100
		entries = append(entries, e)
	}
	return testutil.Catalog(t, entries...)
}

func itemName(i int) string {
	return [...]string{"Wood", "Thatch", "Fiber", "Flint", "Stone", "Metal", "Crystal", "Obsidian"}[i%testutil.IconCount]
}

func newPage(t *testing.T, screen perception.Screen, canvas *testutil.Screen) *page {
	eye := perception.NewEye(screen, perception.NewSoftwareVision(), zap.NewNop())
	grid := slot.Grid(origin, eye)
	id := identify.New(itemCatalog(t), zap.NewNop())
	return &page{screen: canvas, grid: grid, scanner: scan.New(grid, id, zap.NewNop())}
}

func staticPage(t *testing.T) *page {
	canvas := testutil.NewScreen()
	return newPage(t, canvas, canvas)
}

// fill paints items with icon i%IconCount into slots [from, to) and empties the rest.
func (p *page) fill(from, to int) {
	for i, sl := range p.grid {
		if i >= from && i < to {
			p.screen.PaintItem(sl.Area, testutil.Look{Icon: testutil.Icon(i % testutil.IconCount)})
		} else if i >= to {
			p.screen.PaintEmpty(sl.Area)
		}
	}
}

func names(items []*identify.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		if item != nil {
			out[i] = item.Name()
		}
	}
	return out
}

func TestPage_OrderIndependentOfWorkers(t *testing.T) {
	p := staticPage(t)
	p.fill(0, slot.PerPage)

	want := make([]string, slot.PerPage)
	for i := range want {
		want[i] = itemName(i)
	}
	for _, workers := range []int{1, 5, 36} {
		got, err := p.scanner.Page(context.Background(), identify.Filter{}, workers)
		require.NoError(t, err)
		if diff := cmp.Diff(want, names(got)); diff != "" {
			t.Errorf("workers=%d mismatch (-want +got):\n%s", workers, diff)
		}
	}
}

func TestPage_StopsAtFirstEmptySlot(t *testing.T) {
	p := staticPage(t)
	p.fill(0, slot.PerPage)
	p.screen.PaintEmpty(p.grid[10].Area)

	got, err := p.scanner.Page(context.Background(), identify.Filter{}, scan.DefaultWorkers)
	require.NoError(t, err)
	assert.Len(t, got, 10)
	for i, item := range got {
		require.NotNil(t, item, "slot %d", i)
	}
	for i := 11; i < slot.PerPage; i++ {
		assert.Zero(t, p.screen.Captures(p.grid[i].Area), "slot %d beyond the gap was read", i)
	}
}

func TestPage_FolderBlockIsSkipped(t *testing.T) {
	p := staticPage(t)
	p.fill(2, 10)
	p.screen.PaintFolder(p.grid[0].Area)
	p.screen.PaintFolder(p.grid[1].Area)

	layout, err := p.scanner.Prescan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, scan.Layout{Folders: 2, Filled: 8}, layout)

	got, err := p.scanner.Page(context.Background(), identify.Filter{}, scan.DefaultWorkers)
	require.NoError(t, err)
	want := make([]string, 8)
	for i := range want {
		want[i] = itemName(i + 2)
	}
	assert.Empty(t, cmp.Diff(want, names(got)))
}

func TestPage_EmptyPage(t *testing.T) {
	p := staticPage(t)
	p.fill(0, 0)

	got, err := p.scanner.Page(context.Background(), identify.Filter{}, scan.DefaultWorkers)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPage_UnidentifiedSlotIsNil(t *testing.T) {
	p := staticPage(t)
	p.fill(0, 3)
	p.screen.PaintItem(p.grid[1].Area, testutil.Look{Icon: testutil.Icon(1), Spoil: 0.5})

	got, err := p.scanner.Page(context.Background(), identify.Filter{}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wood", "", "Fiber"}, names(got))
}

func TestPage_FilterIsApplied(t *testing.T) {
	p := staticPage(t)
	p.fill(0, 4)

	got, err := p.scanner.Page(context.Background(), identify.Filter{Items: []string{"Thatch", "Flint"}}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "Thatch", "", "Flint"}, names(got))
}

func TestPage_ZeroWorkersStillScans(t *testing.T) {
	p := staticPage(t)
	p.fill(0, 3)

	got, err := p.scanner.Page(context.Background(), identify.Filter{}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wood", "Thatch", "Fiber"}, names(got))
}

func TestPage_CaptureFailure(t *testing.T) {
	canvas := testutil.NewScreen()
	grid := slot.Grid(origin, perception.NewEye(canvas, perception.NewSoftwareVision(), zap.NewNop()))
	p := newPage(t, flakyScreen{Screen: canvas, fail: grid[4].Area}, canvas)
	p.fill(0, 8)

	_, err := p.scanner.Page(context.Background(), identify.Filter{}, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, errCapture)
}

func TestPage_Cancelled(t *testing.T) {
	p := staticPage(t)
	p.fill(0, slot.PerPage)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.scanner.Page(ctx, identify.Filter{}, scan.DefaultWorkers)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPage_CancelledMidScan(t *testing.T) {
	p := staticPage(t)
	p.fill(0, slot.PerPage)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// Cancel once the workers start capturing the second row.
	p.screen.OnCapture(func(r image.Rectangle, n int) {
		if r == p.grid[slot.Columns].Area && n > 0 {
			cancel()
		}
	})

	_, err := p.scanner.Page(ctx, identify.Filter{}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
