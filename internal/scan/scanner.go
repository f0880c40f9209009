// Package scan identifies a whole inventory page concurrently. It only reads the
// screen: a Scanner holds no input port, so it can run while nothing else drives
// the pointer without ever competing for it.
package scan

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/asainv/internal/identify"
	"github.com/cory-johannsen/asainv/internal/slot"
)

// DefaultWorkers is the worker count used when a caller asks for none.
const DefaultWorkers = 5

// Layout is the result of the sequential pre-scan.
type Layout struct {
	// Folders is the number of leading folder slots.
	Folders int
	// Filled is the number of item slots following the folders before the first
	// empty slot.
	Filled int
}

// Scanner identifies the slots of one inventory page.
type Scanner struct {
	slots      [slot.PerPage]slot.Slot
	identifier *identify.Identifier
	logger     *zap.Logger
}

// New returns a Scanner over slots.
//
// Precondition: identifier and logger are non-nil.
func New(slots [slot.PerPage]slot.Slot, identifier *identify.Identifier, logger *zap.Logger) *Scanner {
	return &Scanner{slots: slots, identifier: identifier, logger: logger}
}

// Prescan walks the page in order. Folder slots extend the folder block; the first
// empty slot ends the walk. Items are packed, so nothing past that slot is read.
func (s *Scanner) Prescan(ctx context.Context) (Layout, error) {
	var l Layout
	for _, sl := range s.slots {
		if err := ctx.Err(); err != nil {
			return Layout{}, err
		}
		snap, err := sl.Snapshot()
		if err != nil {
			return Layout{}, fmt.Errorf("prescan: %w", err)
		}
		switch {
		case snap.IsFolder():
			l.Folders++
		case snap.IsEmpty():
			return l, nil
		default:
			l.Filled++
		}
	}
	return l, nil
}

// Page identifies every filled slot of the page.
//
// Precondition: the page is static for the duration of the call.
// Postcondition: the result has one element per filled slot in slot order, with
// folder slots excluded; a nil element is a slot no catalog entry matched. The
// order does not depend on workers.
func (s *Scanner) Page(ctx context.Context, filter identify.Filter, workers int) ([]*identify.Item, error) {
	start := time.Now()
	layout, err := s.Prescan(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*identify.Item, layout.Filled)
	if layout.Filled == 0 {
		return results, nil
	}
	workers = max(1, min(workers, layout.Filled))

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			// Worker w owns result indices w, w+workers, w+2*workers and so on; no two
			// workers share an index.
			for j := w; j < layout.Filled; j += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				snap, err := s.slots[j+layout.Folders].Snapshot()
				if err != nil {
					return err
				}
				if item, ok := s.identifier.Identify(snap, filter); ok {
					results[j] = &item
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scanning page: %w", err)
	}

	s.logger.Debug("page scanned",
		zap.Int("folders", layout.Folders),
		zap.Int("filled", layout.Filled),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}
