package series

import "iter"

// Dict is an insertion-ordered mapping from channel name to Series.
// Iteration yields channels in the order they were first added; callers
// relying on a specific row order in ToArray must add channels in that
// order. The zero Dict is not usable; construct with NewDict.
type Dict struct {
	names  []string
	byName map[string]Series
}

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return &Dict{byName: make(map[string]Series)}
}

// Set adds or replaces a channel, keyed by its Name. Replacing keeps the
// channel's original position in the iteration order.
func (d *Dict) Set(s Series) {
	if _, ok := d.byName[s.Name]; !ok {
		d.names = append(d.names, s.Name)
	}
	d.byName[s.Name] = s
}

// Get returns the channel with the given name.
func (d *Dict) Get(name string) (Series, bool) {
	s, ok := d.byName[name]

	return s, ok
}

// Len returns the number of channels.
func (d *Dict) Len() int {
	return len(d.names)
}

// Names returns the channel names in insertion order.
func (d *Dict) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)

	return out
}

// All iterates over the channels in insertion order.
func (d *Dict) All() iter.Seq[Series] {
	return func(yield func(Series) bool) {
		for _, name := range d.names {
			if !yield(d.byName[name]) {
				return
			}
		}
	}
}
