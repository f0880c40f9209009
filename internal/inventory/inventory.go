// Package inventory drives one on-screen inventory: it queries what the inventory
// shows and performs interactions through verify-and-retry loops. Every loop acts,
// then polls a predicate until it holds or a deadline passes, and reports the
// deadline as an *Error. Nothing is stored about the inventory beyond the search
// bar's last term; open state, hover and contents are read from the screen on
// every call.
//
// An Inventory owns the session's input while one of its methods runs and is not
// safe for concurrent use. ScanPage only reads the screen.
package inventory

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/asainv/internal/catalog"
	"github.com/cory-johannsen/asainv/internal/identify"
	"github.com/cory-johannsen/asainv/internal/observability"
	"github.com/cory-johannsen/asainv/internal/scan"
	"github.com/cory-johannsen/asainv/internal/session"
	"github.com/cory-johannsen/asainv/internal/slot"
)

// Inventory is one inventory window of a session.
type Inventory struct {
	Slots  [slot.PerPage]slot.Slot
	Search *SearchBar

	TransferAllButton Control
	DropAllButton     Control
	NewFolderButton   Control
	AutoStackButton   Control
	FolderViewButton  Control
	InfoTab           Control
	CloseButton       Control

	sess       *session.Session
	geometry   Geometry
	identifier *identify.Identifier
	scanner    *scan.Scanner
	logger     *zap.Logger
}

// New builds the inventory of the given variant over sess.
//
// Precondition: sess is non-nil and fully constructed.
// Postcondition: geometry is fixed for the Inventory's lifetime.
func New(sess *session.Session, variant Variant) *Inventory {
	g := GeometryFor(variant)
	logger := observability.For(sess.Logger, observability.ComponentInventory).With(zap.Stringer("variant", variant))
	id := identify.New(sess.Catalog, observability.For(sess.Logger, observability.ComponentIdentify))
	slots := slot.Grid(g.SlotOrigin, sess.Eye)

	return &Inventory{
		Slots:             slots,
		Search:            newSearchBar(newControl("search bar", g.SearchBar, 0), sess),
		TransferAllButton: newControl("transfer all", g.TransferAll, Toggleable),
		DropAllButton:     newControl("drop all", g.DropAll, Toggleable),
		NewFolderButton:   newControl("new folder", g.NewFolder, Toggleable),
		AutoStackButton:   newControl("auto stack", g.AutoStack, Toggleable),
		FolderViewButton:  newControl("folder view", g.FolderView, Toggleable),
		InfoTab:           newControl("info tab", g.InfoTab, Selectable|ExistenceCheckable),
		CloseButton:       newControl("close", g.Close, 0),
		sess:              sess,
		geometry:          g,
		identifier:        id,
		scanner:           scan.New(slots, id, observability.For(sess.Logger, observability.ComponentScanner)),
		logger:            logger,
	}
}

// Geometry returns the inventory's screen layout.
func (inv *Inventory) Geometry() Geometry { return inv.geometry }

// Identifier returns the identifier used for this inventory's slots.
func (inv *Inventory) Identifier() *identify.Identifier { return inv.identifier }

// IsOpen reports whether the inventory is on screen, judged by the category
// filter's dropdown arrow.
func (inv *Inventory) IsOpen() bool {
	return inv.sess.Eye.Match(inv.geometry.FilterButton, filterArrowTemplate, openThreshold)
}

// AssertOpen waits up to Timing.OpenWait for the inventory to be open.
//
// Postcondition: returns nil, or an *Error of KindNotOpen naming op.
func (inv *Inventory) AssertOpen(op string) error {
	if inv.sess.Await(inv.IsOpen, inv.sess.Timing.OpenWait) {
		return nil
	}
	return inv.fail(KindNotOpen, op, "")
}

func (inv *Inventory) receiving() bool {
	if inv.geometry.Variant != Remote {
		return false
	}
	return inv.sess.Eye.CountColor(inv.geometry.Receiving, receivingTextColor, receivingTolerance) > receivingMinCount
}

// IsReceivingRemoteInventory reports whether the remote inventory is still loading
// its contents. The local inventory never is.
func (inv *Inventory) IsReceivingRemoteInventory() (bool, error) {
	if err := inv.AssertOpen("is receiving remote inventory"); err != nil {
		return false, err
	}
	return inv.receiving(), nil
}

// ReceiveRemoteInventory waits until the remote inventory has loaded.
//
// Postcondition: returns nil once loading is over, or an *Error of
// KindReceivingRemoteInventoryTimeout after timeout.
func (inv *Inventory) ReceiveRemoteInventory(timeout time.Duration) error {
	const op = "receive remote inventory"
	if err := inv.AssertOpen(op); err != nil {
		return err
	}
	if !inv.sess.Await(func() bool { return !inv.receiving() }, timeout) {
		return inv.fail(KindReceivingRemoteInventoryTimeout, op, timeout.String())
	}
	return nil
}

// snapshot captures slot i. A failed capture is logged and yields a snapshot with
// no pixels, which every predicate reads as no signal.
func (inv *Inventory) snapshot(i int) slot.Snapshot {
	snap, err := inv.Slots[i].Snapshot()
	if err != nil {
		inv.logger.Warn("slot capture failed", zap.Int("slot", i), zap.Error(err))
		return slot.Snapshot{Index: i, Area: inv.Slots[i].Area}
	}
	return snap
}

func (inv *Inventory) slotHas(i int, e *catalog.Entry) bool {
	ok, _ := inv.identifier.Has(inv.snapshot(i), e)
	return ok
}

// Has reports whether e is anywhere in the item area. With search set it first
// searches for e; an entry whose name only matches itself is then checked in the
// first slot alone.
func (inv *Inventory) Has(e *catalog.Entry, search bool) (bool, error) {
	if err := inv.AssertOpen("has"); err != nil {
		return false, err
	}
	if search {
		if err := inv.Search.SearchFor(e.Name); err != nil {
			return false, err
		}
		if !e.HasAmbiguousQuery {
			return inv.slotHas(0, e), nil
		}
	}
	return inv.sess.Eye.Match(inv.geometry.ItemArea, e.Icon, hasThreshold), nil
}

// CountStacks counts the stacks of e on the current page. complete is false when
// the page is full, since more stacks may follow on later pages.
func (inv *Inventory) CountStacks(e *catalog.Entry, search bool) (count int, complete bool, err error) {
	if err := inv.AssertOpen("count stacks"); err != nil {
		return 0, false, err
	}
	if search {
		if err := inv.Search.SearchFor(e.Name); err != nil {
			return 0, false, err
		}
	}
	count = len(inv.sess.Eye.LocateAll(inv.geometry.ItemArea, e.Icon, countThreshold))
	return count, count != slot.PerPage, nil
}

// FindItem returns the first slot holding e. isSearched says e is already searched
// for; searchFor searches for it first. A searched entry whose name only matches
// itself can only be in the first slot.
func (inv *Inventory) FindItem(e *catalog.Entry, isSearched, searchFor bool) (slot.Slot, bool, error) {
	if err := inv.AssertOpen("find item"); err != nil {
		return slot.Slot{}, false, err
	}
	if searchFor {
		if err := inv.Search.SearchFor(e.Name); err != nil {
			return slot.Slot{}, false, err
		}
	}
	if !e.HasAmbiguousQuery && (isSearched || searchFor) {
		if inv.slotHas(0, e) {
			return inv.Slots[0], true, nil
		}
		return slot.Slot{}, false, nil
	}

	for i := range inv.Slots {
		snap := inv.snapshot(i)
		if ok, _ := inv.identifier.Has(snap, e); ok {
			return inv.Slots[i], true, nil
		}
		if snap.IsEmpty() {
			break
		}
	}
	return slot.Slot{}, false, nil
}

// ScanPage identifies every filled slot of the current page concurrently. workers
// below one uses the session default.
//
// Postcondition: see scan.Scanner.Page.
func (inv *Inventory) ScanPage(ctx context.Context, filter identify.Filter, workers int) ([]*identify.Item, error) {
	if err := inv.AssertOpen("scan page"); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = inv.sess.Workers
	}
	return inv.scanner.Page(ctx, filter, workers)
}

// Prescan reports how the current page is laid out: leading folders, then filled
// slots up to the first empty one.
func (inv *Inventory) Prescan(ctx context.Context) (scan.Layout, error) {
	if err := inv.AssertOpen("prescan"); err != nil {
		return scan.Layout{}, err
	}
	return inv.scanner.Prescan(ctx)
}
