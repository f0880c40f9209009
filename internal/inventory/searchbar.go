package inventory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/asainv/internal/perception"
	"github.com/cory-johannsen/asainv/internal/session"
)

// SearchBar is the inventory's text filter. It remembers what it last typed, since
// reading the bar back needs OCR.
type SearchBar struct {
	Control
	sess    *session.Session
	entered bool
	term    string
}

func newSearchBar(area Control, sess *session.Session) *SearchBar {
	return &SearchBar{Control: area, sess: sess}
}

// SearchFor types term into the bar through the clipboard and leaves the field.
//
// Postcondition: on success HasTextEntered(false) is true and LastTerm is term.
func (b *SearchBar) SearchFor(term string) error {
	b.Press(b.sess.Input)
	if err := b.sess.Input.ClipboardPaste(term); err != nil {
		return fmt.Errorf("searching for %q: %w", term, err)
	}
	b.sess.Input.Press(perception.KeyEscape)
	b.entered = true
	b.term = term
	b.sess.Logger.Debug("searched", zap.String("term", term))
	b.sess.Settle(b.sess.Timing.SearchSettle)
	return nil
}

// DeleteSearch clears the bar.
func (b *SearchBar) DeleteSearch() {
	b.Press(b.sess.Input)
	b.sess.Input.PressCombination(perception.KeyCtrl, "a")
	b.sess.Input.Press(perception.KeyDelete)
	b.sess.Settle(b.sess.Timing.SearchSettle)
	b.sess.Input.Press(perception.KeyEscape)
	b.SetTextCleared()
}

// SetTextCleared records that the game cleared the bar by itself, as it does after
// transfer-all and drop-all.
func (b *SearchBar) SetTextCleared() {
	b.entered = false
	b.term = ""
}

// HasTextEntered reports whether the bar holds text. With visual set it looks at
// the screen instead of the recorded state.
func (b *SearchBar) HasTextEntered(visual bool) bool {
	if !visual {
		return b.entered
	}
	return b.sess.Eye.CountColor(b.Area, searchTextColor, searchTextTol) > searchTextMinCount
}

// LastTerm returns the term last typed, or "" after the bar was cleared.
func (b *SearchBar) LastTerm() string { return b.term }
