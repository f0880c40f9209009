package inventory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/asainv/internal/catalog"
	"github.com/cory-johannsen/asainv/internal/perception"
)

// AllStacks makes Popcorn drop every stack.
const AllStacks = -1

// PopcornFlags tune PopcornAll.
type PopcornFlags uint8

const (
	// PopcornNoSlotChecks never checks slots for emptiness during a sweep.
	PopcornNoSlotChecks PopcornFlags = 1 << iota
	// PopcornSingleRow sweeps only the first row.
	PopcornSingleRow
)

// Popcorn drops stacks of e one at a time from the first slot, where the
// remaining stacks keep shifting to, until stacks were dropped or e is gone.
// When the search bar is empty it searches for e first and clears it afterwards.
//
// Precondition: stacks > 0 or stacks == AllStacks.
// Postcondition: returns the number of stacks dropped.
func (inv *Inventory) Popcorn(e *catalog.Entry, stacks int) (int, error) {
	const op = "popcorn"
	if err := inv.AssertOpen(op); err != nil {
		return 0, err
	}
	searched := false
	if !inv.Search.HasTextEntered(false) {
		if err := inv.Search.SearchFor(e.Name); err != nil {
			return 0, err
		}
		searched = true
	}

	dropped := 0
	for (stacks == AllStacks || dropped < stacks) && inv.slotHas(0, e) {
		if err := inv.SelectSlot(0, SelectOptions{}); err != nil {
			return dropped, err
		}
		inv.sess.Input.Press(inv.sess.Keys.Drop)
		dropped++
	}
	inv.logger.Debug("popcorned", zap.String("item", e.Name), zap.Int("dropped", dropped))

	if searched {
		inv.Search.DeleteSearch()
	}
	return dropped, nil
}

// PopcornSlots drops the first n slots, last first so the earlier slots keep
// their contents while it works.
//
// Precondition: 0 <= n <= slot.PerPage.
func (inv *Inventory) PopcornSlots(n int) error {
	if err := inv.AssertOpen("popcorn slots"); err != nil {
		return err
	}
	for i := n - 1; i >= 0; i-- {
		if err := inv.SelectSlot(i, SelectOptions{}); err != nil {
			return err
		}
		inv.sess.Input.Press(inv.sess.Keys.Drop)
		inv.sess.Settle(inv.sess.Timing.DropSettle)
	}
	return nil
}

// PopcornAll holds the drop key and sweeps the pointer over the slots until the
// inventory is empty or closes. Unless PopcornNoSlotChecks is set, a sweep stops at
// the first empty slot once the last slot has emptied.
//
// Postcondition: the drop key is released.
func (inv *Inventory) PopcornAll(flags PopcornFlags) error {
	drop := inv.sess.Keys.Drop
	defer inv.sess.Input.Release(drop)

	sweeps := 0
	for !inv.Slots[0].IsEmpty() && inv.IsOpen() {
		checkEmpty := flags&PopcornNoSlotChecks == 0 && inv.Slots[len(inv.Slots)-1].IsEmpty()

		inv.sess.Input.HoldDown(drop)
		for i, sl := range inv.Slots {
			if flags&PopcornSingleRow != 0 && i > 5 {
				break
			}
			if checkEmpty && sl.IsEmpty() {
				break
			}
			inv.sess.Input.MovePointer(sl.Center())
			inv.sess.Input.HoldDown(drop)
		}
		sweeps++
	}
	inv.logger.Debug("popcorned all", zap.Int("sweeps", sweeps))
	return nil
}

// DropAll presses drop-all, after searching for term when it is non-empty. The
// game clears the search afterwards.
func (inv *Inventory) DropAll(term string) error {
	if err := inv.AssertOpen("drop all"); err != nil {
		return err
	}
	if term != "" {
		if err := inv.Search.SearchFor(term); err != nil {
			return err
		}
	}
	inv.DropAllButton.Press(inv.sess.Input)
	inv.Search.SetTextCleared()
	inv.sess.Settle(inv.sess.Timing.DropAllSettle)
	return nil
}

// MakeNewFolder creates a folder called name. The result is not verified.
func (inv *Inventory) MakeNewFolder(name string) error {
	if err := inv.AssertOpen("make new folder"); err != nil {
		return err
	}
	inv.NewFolderButton.Press(inv.sess.Input)
	inv.sess.Settle(inv.sess.Timing.FolderSettle)

	inv.sess.Input.Click(FolderNamePoint)
	if err := inv.sess.Input.ClipboardPaste(name); err != nil {
		return fmt.Errorf("naming folder %q: %w", name, err)
	}
	inv.sess.Input.Press(perception.KeyEnter)
	inv.logger.Debug("folder created", zap.String("name", name))
	return nil
}
