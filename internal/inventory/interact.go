package inventory

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/asainv/internal/catalog"
)

// SelectOptions tunes SelectSlot.
type SelectOptions struct {
	// SkipHoverCheck moves the pointer once without waiting for the hover border.
	SkipHoverCheck bool
	// TooltipCheck additionally waits for the item tooltip.
	TooltipCheck bool
}

// SelectSlot moves the pointer onto slot i and waits for the game to hover it.
//
// Precondition: 0 <= i < slot.PerPage.
// Postcondition: returns nil once the slot is hovered (and shows its tooltip when
// requested), or an *Error of KindTimeout after Timing.SelectDeadline.
func (inv *Inventory) SelectSlot(i int, opts SelectOptions) error {
	const op = "select slot"
	if err := inv.AssertOpen(op); err != nil {
		return err
	}
	sl := inv.Slots[i]
	sw := inv.sess.Stopwatch()
	inv.logger.Debug("selecting slot", zap.Int("slot", i))

	if opts.SkipHoverCheck {
		inv.sess.Input.MovePointer(sl.Center())
	} else {
		for {
			if sw.TimedOut(inv.sess.Timing.SelectDeadline) {
				return inv.fail(KindTimeout, op, fmt.Sprintf("slot %d never hovered", i))
			}
			inv.sess.Input.MovePointer(sl.Center())
			if inv.sess.Await(sl.IsHovered, inv.sess.Timing.HoverWindow) {
				break
			}
		}
	}

	for opts.TooltipCheck && !sl.HasTooltip() {
		if sw.TimedOut(inv.sess.Timing.SelectDeadline) {
			return inv.fail(KindTimeout, op, fmt.Sprintf("slot %d never showed its tooltip", i))
		}
		// With tooltips enabled in the game settings the first toggle hides them.
		if inv.sess.UI.TooltipsEnabled {
			inv.ToggleTooltips()
		}
		inv.ToggleTooltips()
		inv.sess.Settle(inv.sess.Timing.TooltipSettle)
	}

	inv.logger.Debug("slot selected", zap.Int("slot", i), zap.Duration("elapsed", sw.Elapsed()))
	return nil
}

// ToggleTooltips flips the hovered item's tooltip, which the game binds to the
// transfer key.
func (inv *Inventory) ToggleTooltips() {
	inv.sess.Input.Press(inv.sess.Keys.Transfer)
}

// Transfer moves the stack in slot i to the other inventory. receiver, when given,
// must be open too.
//
// Postcondition: returns nil once the slot is no longer hovered, meaning its stack
// left, or an *Error of KindTimeout after Timing.TransferDeadline.
func (inv *Inventory) Transfer(i int, receiver *Inventory) error {
	const op = "transfer"
	if err := inv.AssertOpen(op); err != nil {
		return err
	}
	if receiver != nil {
		if err := receiver.AssertOpen(op); err != nil {
			return err
		}
	}
	sl := inv.Slots[i]
	inv.logger.Debug("transferring slot", zap.Int("slot", i))
	sw := inv.sess.Stopwatch()

	if !sl.IsHovered() {
		if err := inv.SelectSlot(i, SelectOptions{}); err != nil {
			return err
		}
	}

	// The stack that moves into the slot is not hovered until the pointer moves.
	for {
		if sw.TimedOut(inv.sess.Timing.TransferDeadline) {
			return inv.fail(KindTimeout, op, fmt.Sprintf("slot %d", i))
		}
		inv.sess.Input.Press(inv.sess.Keys.Transfer)
		if inv.sess.Await(func() bool { return !sl.IsHovered() }, inv.sess.Timing.TransferWindow) {
			break
		}
	}
	inv.logger.Debug("transfer complete", zap.Int("slot", i), zap.Duration("elapsed", sw.Elapsed()))
	return nil
}

// TransferItem transfers up to stacks stacks of e, or every stack when stacks is
// zero, and returns how many were transferred.
func (inv *Inventory) TransferItem(e *catalog.Entry, stacks int, receiver *Inventory, search bool) (int, error) {
	if err := inv.AssertOpen("transfer item"); err != nil {
		return 0, err
	}
	if search {
		if err := inv.Search.SearchFor(e.Name); err != nil {
			return 0, err
		}
	}

	transferred := 0
	for stacks == 0 || transferred < stacks {
		sl, ok, err := inv.FindItem(e, search, false)
		if err != nil {
			return transferred, err
		}
		if !ok {
			break
		}
		if err := inv.Transfer(sl.Index, receiver); err != nil {
			return transferred, err
		}
		transferred++
	}
	return transferred, nil
}

// TransferAllOptions selects what TransferAll moves.
type TransferAllOptions struct {
	// Item, when set, is searched for first. It takes precedence over Term.
	Item *catalog.Entry
	// Term, when set, is searched for first.
	Term     string
	Receiver *Inventory
	// Deadline bounds the whole operation. Zero falls back to
	// Timing.TransferAllDeadline, where zero means no bound.
	Deadline time.Duration
}

// TransferAll presses transfer-all until the game confirms it. Confirmation is only
// observable when search text is entered, since the game clears it afterwards;
// without it a single press is trusted.
//
// Postcondition: returns nil once confirmed and the search bar is recorded as
// cleared, or an *Error of KindTimeout when a deadline is in effect and passes.
func (inv *Inventory) TransferAll(opts TransferAllOptions) error {
	const op = "transfer all"
	if err := inv.AssertOpen(op); err != nil {
		return err
	}
	if opts.Receiver != nil {
		if err := opts.Receiver.AssertOpen(op); err != nil {
			return err
		}
	}
	term := opts.Term
	if opts.Item != nil {
		term = opts.Item.Name
	}
	if term != "" {
		if err := inv.Search.SearchFor(term); err != nil {
			return err
		}
	}
	deadline := opts.Deadline
	if deadline == 0 {
		deadline = inv.sess.Timing.TransferAllDeadline
	}

	confirmed := func() bool { return true }
	if inv.Search.HasTextEntered(true) {
		inv.logger.Debug("transferring all with search bar confirmation")
		confirmed = func() bool { return !inv.Search.HasTextEntered(true) }
	} else {
		inv.logger.Debug("transferring all without confirmation")
	}

	sw := inv.sess.Stopwatch()
	for {
		if deadline > 0 && sw.TimedOut(deadline) {
			return inv.fail(KindTimeout, op, deadline.String())
		}
		inv.TransferAllButton.Press(inv.sess.Input)
		if inv.sess.Await(confirmed, inv.sess.Timing.TransferAllWindow) {
			break
		}
	}
	inv.Search.SetTextCleared()
	inv.logger.Debug("transfer all complete", zap.Duration("elapsed", sw.Elapsed()))
	return nil
}

// transferRow clicks into the grid and sweeps the transfer key across the first
// row, where the searched stacks keep arriving.
func (inv *Inventory) transferRow() {
	for j := 0; j < 6; j++ {
		inv.sess.Input.MovePointer(inv.Slots[j].Center())
		inv.sess.Input.Press(inv.sess.Keys.Transfer)
		inv.sess.Settle(inv.sess.Timing.TransferRowSettle)
	}
}

func (inv *Inventory) beginRows(op string, e *catalog.Entry) error {
	if err := inv.AssertOpen(op); err != nil {
		return err
	}
	if err := inv.Search.SearchFor(e.Name); err != nil {
		return err
	}
	inv.sess.Input.Click(inv.Slots[0].Center())
	return nil
}

// TransferRows searches for e and sweeps the first row rows times without
// verifying each transfer.
func (inv *Inventory) TransferRows(e *catalog.Entry, rows int) error {
	if err := inv.beginRows("transfer rows", e); err != nil {
		return err
	}
	for r := 0; r < rows; r++ {
		inv.transferRow()
	}
	inv.Search.DeleteSearch()
	return nil
}

// TransferRowsFor is TransferRows bounded by time instead of a row count.
func (inv *Inventory) TransferRowsFor(e *catalog.Entry, d time.Duration) error {
	if err := inv.beginRows("transfer rows", e); err != nil {
		return err
	}
	sw := inv.sess.Stopwatch()
	for !sw.TimedOut(d) {
		inv.transferRow()
	}
	inv.Search.DeleteSearch()
	return nil
}

// AutoStack presses the auto-stack button.
func (inv *Inventory) AutoStack() error {
	if err := inv.AssertOpen("auto stack"); err != nil {
		return err
	}
	inv.AutoStackButton.Press(inv.sess.Input)
	return nil
}

// SelectInfoTab opens the info panel of this inventory's side. A tab that is
// already selected is not pressed.
func (inv *Inventory) SelectInfoTab() error {
	if err := inv.AssertOpen("select info tab"); err != nil {
		return err
	}
	if inv.InfoTab.IsSelected(inv.sess.Eye) {
		inv.logger.Debug("info tab already selected")
		return nil
	}
	inv.InfoTab.Press(inv.sess.Input)
	return nil
}

// Close presses the close button until the inventory disappears. The button is
// used instead of escape so a half-open inventory cannot be toggled back open.
//
// Postcondition: returns nil once the inventory is closed, or an *Error of
// KindFailedToClose after Timing.CloseDeadline.
func (inv *Inventory) Close() error {
	const op = "close"
	sw := inv.sess.Stopwatch()
	for inv.IsOpen() {
		inv.CloseButton.Press(inv.sess.Input)
		if inv.sess.Await(func() bool { return !inv.IsOpen() }, inv.sess.Timing.CloseWindow) {
			break
		}
		if sw.TimedOut(inv.sess.Timing.CloseDeadline) {
			return inv.fail(KindFailedToClose, op, sw.Elapsed().String())
		}
	}
	inv.logger.Debug("closed", zap.Duration("elapsed", sw.Elapsed()))
	return nil
}
