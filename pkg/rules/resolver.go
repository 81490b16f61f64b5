package rules

import (
	"sort"

	"github.com/arthur-debert/adhere/pkg/errors"
)

// Resolve returns the ordered set of descriptors activated for the
// given normalized path: universal rules first in load order, then
// matching conditional rules sorted by descending priority with load
// order breaking ties.
//
// Resolution is a pure read over the immutable store; it is safe to
// call concurrently. An empty conditional match set is a normal
// result, not an error. A nil store is a programming error.
func Resolve(store *Store, path string) ([]Descriptor, error) {
	if store == nil {
		return nil, errors.New(errors.ErrNilStore, "resolve called with nil store")
	}

	activated := make([]Descriptor, 0, len(store.descriptors))
	var conditional []Descriptor

	for _, d := range store.descriptors {
		switch d.Scope {
		case ScopeUniversal:
			activated = append(activated, d)
		case ScopeConditional:
			// The empty path matches no conditional pattern
			if path != "" && d.matchesAny(path) {
				conditional = append(conditional, d)
			}
		}
	}

	// Stable sort keeps load order for equal priorities
	sort.SliceStable(conditional, func(i, j int) bool {
		return conditional[i].Priority > conditional[j].Priority
	})

	return append(activated, conditional...), nil
}
