package testutil

import (
	"image"
	"sync"
)

// EventKind names an injected input event.
type EventKind string

const (
	EventMove    EventKind = "move"
	EventClick   EventKind = "click"
	EventPress   EventKind = "press"
	EventHold    EventKind = "hold"
	EventRelease EventKind = "release"
	EventCombo   EventKind = "combo"
	EventPaste   EventKind = "paste"
)

// Event is one recorded input event.
type Event struct {
	Kind  EventKind
	Point image.Point
	Key   string
	Text  string
}

// Input records every injected event and lets a test react to it through OnEvent.
type Input struct {
	mu      sync.Mutex
	events  []Event
	onEvent func(Event)
	// PasteErr, when set, is returned by ClipboardPaste.
	PasteErr error
}

// NewInput returns an empty Input.
func NewInput() *Input { return &Input{} }

// OnEvent installs a hook run after each event is recorded.
func (in *Input) OnEvent(fn func(Event)) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.onEvent = fn
}

func (in *Input) record(e Event) {
	in.mu.Lock()
	in.events = append(in.events, e)
	hook := in.onEvent
	in.mu.Unlock()
	if hook != nil {
		hook(e)
	}
}

// MovePointer implements perception.Input.
func (in *Input) MovePointer(p image.Point) { in.record(Event{Kind: EventMove, Point: p}) }

// Click implements perception.Input.
func (in *Input) Click(p image.Point) { in.record(Event{Kind: EventClick, Point: p}) }

// Press implements perception.Input.
func (in *Input) Press(key string) { in.record(Event{Kind: EventPress, Key: key}) }

// HoldDown implements perception.Input.
func (in *Input) HoldDown(key string) { in.record(Event{Kind: EventHold, Key: key}) }

// Release implements perception.Input.
func (in *Input) Release(key string) { in.record(Event{Kind: EventRelease, Key: key}) }

// PressCombination implements perception.Input.
func (in *Input) PressCombination(modifier, key string) {
	in.record(Event{Kind: EventCombo, Key: modifier + "+" + key})
}

// ClipboardPaste implements perception.Input.
func (in *Input) ClipboardPaste(text string) error {
	if in.PasteErr != nil {
		return in.PasteErr
	}
	in.record(Event{Kind: EventPaste, Text: text})
	return nil
}

// Events returns a copy of every recorded event.
func (in *Input) Events() []Event {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]Event, len(in.events))
	copy(out, in.events)
	return out
}

// Count returns how many events of kind with the given key were recorded. An empty
// key matches any.
func (in *Input) Count(kind EventKind, key string) int {
	n := 0
	for _, e := range in.Events() {
		if e.Kind == kind && (key == "" || e.Key == key) {
			n++
		}
	}
	return n
}

// Pastes returns every pasted text in order.
func (in *Input) Pastes() []string {
	var out []string
	for _, e := range in.Events() {
		if e.Kind == EventPaste {
			out = append(out, e.Text)
		}
	}
	return out
}
