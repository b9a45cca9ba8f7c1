// Package tape keeps the history of committed calculations.
package tape

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested entry is not on the tape.
var ErrNotFound = errors.New("tape: no such entry")

// Entry is one committed calculation.
type Entry struct {
	ID         string
	Time       time.Time
	Expression string
	Result     string
}

func (e Entry) String() string {
	return e.Expression + " = " + e.Result
}

// Tape is an in-memory history of committed calculations. It is safe for
// concurrent use: the GUI records from its event loop while an export may
// be writing from another goroutine.
type Tape struct {
	mu      sync.Mutex
	entries []Entry
	limit   int
	now     func() time.Time
}

// New returns an empty tape keeping at most limit entries. A limit of zero
// or less keeps everything.
func New(limit int) *Tape {
	return &Tape{limit: limit, now: time.Now}
}

// Record appends a calculation, dropping the oldest entry beyond the limit.
func (t *Tape) Record(expression, result string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append(t.entries, Entry{
		ID:         uuid.New().String(),
		Time:       t.now(),
		Expression: expression,
		Result:     result,
	})
	if t.limit > 0 && len(t.entries) > t.limit {
		t.entries = append(t.entries[:0], t.entries[len(t.entries)-t.limit:]...)
	}
}

// Entries returns a copy of the history, oldest first.
func (t *Tape) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Last returns the most recent entry.
func (t *Tape) Last() (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.entries) == 0 {
		return Entry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// Find returns the entry with the given ID.
func (t *Tape) Find(id string) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Len returns the number of entries.
func (t *Tape) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Clear drops the history.
func (t *Tape) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = nil
}

// WriteTo writes one line per entry: RFC 3339 time, a tab, then
// "expression = result".
func (t *Tape) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)
	for _, e := range t.Entries() {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", e.Time.Format(time.RFC3339), e); err != nil {
			return cw.n, err
		}
	}
	err := bw.Flush()
	return cw.n, err
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
