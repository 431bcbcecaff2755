// Package core defines the scalar identifier types shared by all textgo
// packages.
package core

// ContextID identifies a text record (the unit in which words and entities
// co-occur). Posting blocks are sorted ascending by ContextID.
type ContextID uint64

// EntityID identifies a bound entity occurring in a text record.
type EntityID uint64

// WordID identifies a word in the text vocabulary. Words matching the same
// search term occupy a contiguous id range.
type WordID uint64

// Score is the per-posting relevance contribution. Scores are non-negative
// and additive across intersected lists.
type Score uint32

// ID is a generic output table cell. Context ids, entity ids, word ids,
// scores and occurrence counts are all stored as IDs once they reach an
// output row; the column layout of the producing operation determines the
// meaning of each cell.
type ID uint64

// MaxContextID is the largest representable ContextID.
const MaxContextID = ^ContextID(0)
