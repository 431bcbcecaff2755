// Package filters provides the caller-supplied filter collaborators consumed
// by the aggregation operations: a set of admissible entity ids and a map
// from entity id to extra result rows.
package filters

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/textgo/core"
)

// EntitySet is a set of entity ids backed by a 64-bit roaring bitmap.
// It is built by a collaborator (typically from a previous sub-result) and
// consulted read-only during aggregation.
type EntitySet struct {
	rb *roaring64.Bitmap
}

// NewEntitySet returns a set containing the given ids.
func NewEntitySet(ids ...core.EntityID) *EntitySet {
	s := &EntitySet{rb: roaring64.New()}
	for _, id := range ids {
		s.rb.Add(uint64(id))
	}
	return s
}

// Add inserts an entity id.
func (s *EntitySet) Add(id core.EntityID) {
	s.rb.Add(uint64(id))
}

// Contains reports whether the set holds id.
func (s *EntitySet) Contains(id core.EntityID) bool {
	return s.rb.Contains(uint64(id))
}

// Len returns the number of entities in the set.
func (s *EntitySet) Len() int {
	return int(s.rb.GetCardinality())
}

// IsEmpty reports whether the set is empty.
func (s *EntitySet) IsEmpty() bool {
	return s.rb.IsEmpty()
}
