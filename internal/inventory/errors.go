package inventory

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrorKind classifies the ways an interaction can fail. The set is closed.
type ErrorKind int

const (
	// KindNotOpen means the inventory did not show as open within the open wait.
	KindNotOpen ErrorKind = iota + 1
	// KindTimeout means a verify-and-retry loop passed its deadline.
	KindTimeout
	// KindFailedToClose means the inventory was still open at the close deadline.
	KindFailedToClose
	// KindReceivingRemoteInventoryTimeout means the remote inventory kept loading
	// past the caller's timeout.
	KindReceivingRemoteInventoryTimeout
)

// Sentinels for errors.Is. Every *Error unwraps to the sentinel of its kind.
var (
	ErrNotOpen                         = errors.New("inventory not open")
	ErrTimeout                         = errors.New("interaction timed out")
	ErrFailedToClose                   = errors.New("failed to close inventory")
	ErrReceivingRemoteInventoryTimeout = errors.New("timed out receiving remote inventory")
)

var kindSentinels = map[ErrorKind]error{
	KindNotOpen:                         ErrNotOpen,
	KindTimeout:                         ErrTimeout,
	KindFailedToClose:                   ErrFailedToClose,
	KindReceivingRemoteInventoryTimeout: ErrReceivingRemoteInventoryTimeout,
}

func (k ErrorKind) String() string {
	if err, ok := kindSentinels[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a failed interaction.
type Error struct {
	Kind ErrorKind
	// Op is the operation that failed, e.g. "select slot".
	Op string
	// Variant is the inventory the operation ran against.
	Variant Variant
	// Detail is free-form context such as the slot index.
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s inventory: %s: %s", e.Variant, e.Op, e.Kind)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap returns the sentinel of the error's kind for errors.Is.
func (e *Error) Unwrap() error {
	return kindSentinels[e.Kind]
}

func (inv *Inventory) fail(kind ErrorKind, op, detail string) error {
	err := &Error{Kind: kind, Op: op, Variant: inv.geometry.Variant, Detail: detail}
	inv.logger.Debug("interaction failed", zap.Error(err))
	return err
}
