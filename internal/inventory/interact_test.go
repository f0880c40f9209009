package inventory_test

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/asainv/internal/config"
	"github.com/cory-johannsen/asainv/internal/inventory"
	"github.com/cory-johannsen/asainv/internal/testutil"
)

func TestSelectSlot_HoveredAfterThreePolls(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()
	h.stone(3)
	area := h.inv.Slots[3].Area
	h.screen.OnCapture(func(r image.Rectangle, n int) {
		if r == area && n == 2 {
			h.screen.PaintHover(area)
		}
	})

	require.NoError(t, h.inv.SelectSlot(3, inventory.SelectOptions{}))
	assert.Equal(t, []int{3}, h.moves())
	assert.Equal(t, 3, h.screen.Captures(area))
	assert.Equal(t, 2*pollInterval, h.clock.Elapsed())
}

func TestSelectSlot_NeverHovered(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()
	h.stone(3)

	err := h.inv.SelectSlot(3, inventory.SelectOptions{})
	ierr := requireKind(t, err, inventory.KindTimeout)
	assert.Equal(t, "select slot", ierr.Op)
	assert.ErrorIs(t, err, inventory.ErrTimeout)

	deadline := h.cfg.Timing.SelectDeadline
	assert.GreaterOrEqual(t, h.clock.Elapsed(), deadline, "gave up early")
	assert.LessOrEqual(t, h.clock.Elapsed(), deadline+h.cfg.Timing.HoverWindow, "overran the deadline")
	// The pointer is moved again after every hover window.
	assert.Len(t, h.moves(), int(deadline/h.cfg.Timing.HoverWindow)+1)
}

func TestSelectSlot_SkipHoverCheck(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()

	require.NoError(t, h.inv.SelectSlot(7, inventory.SelectOptions{SkipHoverCheck: true}))
	assert.Equal(t, []int{7}, h.moves())
	assert.Zero(t, h.clock.Elapsed())
}

func TestSelectSlot_TooltipCheck(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()
	h.stone(4)
	toggles := 0
	h.play(game{
		hover: true,
		onPress: func(key string) {
			if key != h.cfg.Keys.Transfer {
				return
			}
			toggles++
			if toggles == 2 {
				h.screen.PaintTooltip(h.inv.Slots[4])
			}
		},
	})

	require.NoError(t, h.inv.SelectSlot(4, inventory.SelectOptions{TooltipCheck: true}))
	assert.Equal(t, 2, toggles)
	assert.True(t, h.inv.Slots[4].HasTooltip())
}

func TestSelectSlot_TooltipsEnabledTogglesTwice(t *testing.T) {
	h := newHarness(t, inventory.Local, func(c *config.Config) { c.UI.TooltipsEnabled = true })
	h.open()
	h.stone(4)
	h.play(game{
		hover: true,
		onPress: func(key string) {
			if key == h.cfg.Keys.Transfer && h.keyPresses(key) == 2 {
				h.screen.PaintTooltip(h.inv.Slots[4])
			}
		},
	})

	require.NoError(t, h.inv.SelectSlot(4, inventory.SelectOptions{TooltipCheck: true}))
	assert.Equal(t, 2, h.keyPresses(h.cfg.Keys.Transfer))
	assert.Equal(t, h.cfg.Timing.TooltipSettle, h.clock.Elapsed())
}

func TestSelectSlot_TooltipNeverShows(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()
	h.stone(4)
	h.play(game{hover: true})

	err := h.inv.SelectSlot(4, inventory.SelectOptions{TooltipCheck: true})
	requireKind(t, err, inventory.KindTimeout)
	assert.GreaterOrEqual(t, h.clock.Elapsed(), h.cfg.Timing.SelectDeadline)
}

func TestClose_FlipsOnSecondCheck(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()
	closeAt := h.inv.CloseButton.ClickPoint()
	presses := 0
	h.play(game{onClick: func(p image.Point) {
		if p != closeAt {
			return
		}
		presses++
		if presses == 2 {
			h.shut()
		}
	}})

	require.NoError(t, h.inv.Close())
	assert.Equal(t, 2, presses)
	assert.Equal(t, h.cfg.Timing.CloseWindow, h.clock.Elapsed())
}

func TestClose_NeverCloses(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()

	err := h.inv.Close()
	requireKind(t, err, inventory.KindFailedToClose)
	assert.ErrorIs(t, err, inventory.ErrFailedToClose)
	assert.Equal(t, h.cfg.Timing.CloseDeadline, h.clock.Elapsed())
	assert.Equal(t, 12, h.clicksAt(h.inv.CloseButton.ClickPoint()))
}

func TestClose_ClosesJustPastTheDeadline(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()
	// Closed only once 65s have passed, after the 60s deadline.
	h.clock.OnSleep(func(elapsed time.Duration) {
		if elapsed >= 65*time.Second {
			h.shut()
		}
	})

	requireKind(t, h.inv.Close(), inventory.KindFailedToClose)
}

func TestClose_AlreadyClosed(t *testing.T) {
	h := newHarness(t, inventory.Local)
	require.NoError(t, h.inv.Close())
	assert.Empty(t, h.input.Events())
}

func TestTransfer(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()
	h.stone(0)
	h.play(game{
		hover: true,
		onPress: func(key string) {
			if key == h.cfg.Keys.Transfer {
				h.screen.PaintEmpty(h.inv.Slots[0].Area)
			}
		},
	})

	require.NoError(t, h.inv.Transfer(0, nil))
	assert.Equal(t, []int{0}, h.moves())
	assert.Equal(t, 1, h.keyPresses(h.cfg.Keys.Transfer))
}

func TestTransfer_AlreadyHoveredSkipsSelect(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()
	h.stone(0)
	h.screen.PaintHover(h.inv.Slots[0].Area)
	h.play(game{onPress: func(string) { h.stone(0) }})

	require.NoError(t, h.inv.Transfer(0, nil))
	assert.Empty(t, h.moves())
}

func TestTransfer_NeverLeaves(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()
	h.stone(0)
	h.play(game{hover: true})

	err := h.inv.Transfer(0, nil)
	requireKind(t, err, inventory.KindTimeout)
	assert.Equal(t, h.cfg.Timing.TransferDeadline, h.clock.Elapsed())
	assert.Equal(t, 2, h.keyPresses(h.cfg.Keys.Transfer))
}

func TestTransfer_ReceiverMustBeOpen(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()
	h.stone(0)
	receiver := inventory.New(h.sess, inventory.Remote)

	err := h.inv.Transfer(0, receiver)
	ierr := requireKind(t, err, inventory.KindNotOpen)
	assert.Equal(t, inventory.Remote, ierr.Variant)
	assert.Empty(t, h.input.Events())
}

// stackedStone keeps n stacks of stone packed from slot 0; every transfer or drop
// key press removes one.
func (h *harness) stackedStone(n *int, key string) {
	paint := func() {
		for i, sl := range h.inv.Slots {
			if i < *n {
				h.stone(i)
			} else {
				h.screen.PaintEmpty(sl.Area)
			}
		}
	}
	paint()
	h.play(game{
		hover: true,
		onPress: func(k string) {
			if k == key && *n > 0 {
				*n--
				paint()
			}
		},
	})
}

func TestTransferItem_Bounded(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()
	n := 3
	h.stackedStone(&n, h.cfg.Keys.Transfer)

	moved, err := h.inv.TransferItem(h.entry("Stone"), 2, nil, true)
	require.NoError(t, err)
	assert.Equal(t, 2, moved)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"Stone"}, h.input.Pastes())
}

func TestTransferItem_All(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()
	n := 3
	h.stackedStone(&n, h.cfg.Keys.Transfer)

	moved, err := h.inv.TransferItem(h.entry("Stone"), 0, nil, false)
	require.NoError(t, err)
	assert.Equal(t, 3, moved)
	assert.Zero(t, n)
}

func TestTransferAll_NoSearchPressesOnce(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()

	require.NoError(t, h.inv.TransferAll(inventory.TransferAllOptions{}))
	assert.Equal(t, 1, h.clicksAt(h.inv.TransferAllButton.ClickPoint()))
	assert.Empty(t, h.input.Pastes())
}

func TestTransferAll_ConfirmedBySearchClearing(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()
	button := h.inv.TransferAllButton.ClickPoint()
	h.play(game{
		onPaste: func(string) { h.typeSearch() },
		onClick: func(p image.Point) {
			if p == button && h.clicksAt(button) == 2 {
				h.clearSearch()
			}
		},
	})

	require.NoError(t, h.inv.TransferAll(inventory.TransferAllOptions{Item: h.entry("Stone"), Term: "ignored"}))
	assert.Equal(t, []string{"Stone"}, h.input.Pastes())
	assert.Equal(t, 2, h.clicksAt(button))
	assert.False(t, h.inv.Search.HasTextEntered(false))
}

func TestTransferAll_Deadline(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()
	h.play(game{onPaste: func(string) { h.typeSearch() }})

	err := h.inv.TransferAll(inventory.TransferAllOptions{Term: "berry", Deadline: 10 * time.Second})
	requireKind(t, err, inventory.KindTimeout)
	// Pressed at 0s, 3s, 6s and 9s; the deadline is noticed at 12s.
	assert.Equal(t, 4, h.clicksAt(h.inv.TransferAllButton.ClickPoint()))
}

func TestTransferAll_ConfiguredDeadline(t *testing.T) {
	h := newHarness(t, inventory.Local, func(c *config.Config) { c.Timing.TransferAllDeadline = 5 * time.Second })
	h.open()
	h.play(game{onPaste: func(string) { h.typeSearch() }})

	err := h.inv.TransferAll(inventory.TransferAllOptions{Term: "berry"})
	requireKind(t, err, inventory.KindTimeout)
	assert.Equal(t, 2, h.clicksAt(h.inv.TransferAllButton.ClickPoint()))
}

func TestTransferRows(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()

	require.NoError(t, h.inv.TransferRows(h.entry("Stone"), 2))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 0, 1, 2, 3, 4, 5}, h.moves())
	assert.Equal(t, 12, h.keyPresses(h.cfg.Keys.Transfer))
	assert.Equal(t, 1, h.clicksAt(h.inv.Slots[0].Center()))
	assert.False(t, h.inv.Search.HasTextEntered(false))
	assert.Equal(t, 1, h.input.Count(testutil.EventCombo, "ctrl+a"))
}

func TestTransferRowsFor(t *testing.T) {
	h := newHarness(t, inventory.Local)
	h.open()

	require.NoError(t, h.inv.TransferRowsFor(h.entry("Stone"), 3*time.Second))
	// Each row takes 6 settles of 250ms, so two rows cover 3s.
	assert.Equal(t, 12, h.keyPresses(h.cfg.Keys.Transfer))
}
