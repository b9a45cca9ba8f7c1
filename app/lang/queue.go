package lang

import (
	"sort"

	"github.com/davecgh/go-spew/spew"
)

// Entry is one not-yet-evaluated operator or function occurrence.
type Entry struct {
	Op     OpID
	Symbol string
	Rank   int // base rank boosted by the nesting depth at enqueue time
}

// Queue holds pending operations in insertion order. Evaluation order is
// derived by Sorted and never stored.
type Queue struct {
	entries []Entry
}

var spewConf = spew.ConfigState{
	Indent:         "\t",
	DisableMethods: true,
	MaxDepth:       3,
}

// Enqueue appends e.
func (q *Queue) Enqueue(e Entry) {
	q.entries = append(q.entries, e)
}

// FindMatching returns the index of the most recent entry with the given
// symbol and rank, or -1. The rank disambiguates occurrences of the same
// symbol at different nesting depths.
func (q *Queue) FindMatching(symbol string, rank int) int {
	for i := len(q.entries) - 1; i >= 0; i-- {
		if q.entries[i].Symbol == symbol && q.entries[i].Rank == rank {
			return i
		}
	}
	return -1
}

// Remove deletes the entry at i.
func (q *Queue) Remove(i int) {
	if i < 0 || i >= len(q.entries) {
		return
	}
	q.entries = append(q.entries[:i], q.entries[i+1:]...)
}

// Replace substitutes the operator of the entry at i in place.
func (q *Queue) Replace(i int, d OperatorDescriptor, rank int) {
	if i < 0 || i >= len(q.entries) {
		return
	}
	q.entries[i] = Entry{Op: d.ID, Symbol: d.Symbol, Rank: rank}
}

// Sorted returns a snapshot ordered by rank, highest first. Ties keep
// insertion order.
func (q *Queue) Sorted() []Entry {
	out := q.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank > out[j].Rank
	})
	return out
}

// Entries returns a copy of the entries in insertion order.
func (q *Queue) Entries() []Entry {
	out := make([]Entry, len(q.entries))
	copy(out, q.entries)
	return out
}

// Len returns the number of pending entries.
func (q *Queue) Len() int {
	return len(q.entries)
}

// Reset drops every entry.
func (q *Queue) Reset() {
	q.entries = nil
}

// Dump renders the queue for debug logging.
func (q *Queue) Dump() string {
	return spewConf.Sdump(q.entries)
}
