package perception

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// KeyInjector is the keyboard half of an Input implementation.
type KeyInjector interface {
	PressCombination(modifier, key string)
}

// clipboardWriteAll is swapped out in tests that must not touch the system clipboard.
var clipboardWriteAll = clipboard.WriteAll

// ClipboardPaster implements Input.ClipboardPaste by writing to the system
// clipboard and sending ctrl+v.
type ClipboardPaster struct {
	Keys KeyInjector
}

// ClipboardPaste writes text to the clipboard and pastes it.
//
// Precondition: p.Keys is non-nil and the target field has focus.
// Postcondition: on success ctrl+v has been sent; on error no key was sent.
func (p ClipboardPaster) ClipboardPaste(text string) error {
	if err := clipboardWriteAll(text); err != nil {
		return fmt.Errorf("perception: writing clipboard: %w", err)
	}
	p.Keys.PressCombination(KeyCtrl, "v")
	return nil
}
