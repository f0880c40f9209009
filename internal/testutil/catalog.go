package testutil

import (
	"github.com/cory-johannsen/asainv/internal/catalog"
	"github.com/cory-johannsen/asainv/internal/perception"
)

// EntryThreshold is the match threshold of entries built by Entry.
const EntryThreshold = 0.95

// Entry returns a catalog entry whose icon is Icon(seed). Callers adjust flags on
// the returned value before building the catalog.
func Entry(name string, category catalog.Category, seed int) *catalog.Entry {
	return &catalog.Entry{
		Name:      name,
		Category:  category,
		StackSize: 1,
		Icon:      perception.MustTemplate(name, Icon(seed), nil),
		Threshold: EntryThreshold,
	}
}

// Fataler is the part of testing.TB the helpers need. rapid.T satisfies it too.
type Fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Catalog builds a catalog from entries or fails the test.
func Catalog(t Fataler, entries ...*catalog.Entry) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(entries...)
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	return c
}
