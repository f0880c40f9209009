package catalog

import "fmt"

// Catalog is an ordered, immutable collection of entries. Order is the
// identification priority: when several entries could match a slot, the earlier
// one wins.
type Catalog struct {
	entries []*Entry
	byName  map[string]*Entry
}

// New builds a Catalog from entries in priority order.
//
// Precondition: every entry is non-nil.
// Postcondition: returns a Catalog preserving the given order, or an error if any
// entry is invalid or a name repeats.
func New(entries ...*Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]*Entry, 0, len(entries)),
		byName:  make(map[string]*Entry, len(entries)),
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byName[e.Name]; exists {
			return nil, fmt.Errorf("catalog: entry %q already registered", e.Name)
		}
		c.byName[e.Name] = e
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// Entries returns the entries in priority order.
//
// Postcondition: the returned slice is a copy; the entries themselves are shared.
func (c *Catalog) Entries() []*Entry {
	out := make([]*Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup returns the entry with the given name.
//
// Postcondition: ok is true iff name is registered.
func (c *Catalog) Lookup(name string) (*Entry, bool) {
	e, ok := c.byName[name]
	return e, ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Each calls fn for every entry in priority order until fn returns false.
func (c *Catalog) Each(fn func(*Entry) bool) {
	for _, e := range c.entries {
		if !fn(e) {
			return
		}
	}
}
