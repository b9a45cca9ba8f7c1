package tape

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func fixedClock() func() time.Time {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Second)
	}
}

func TestRecordAndEntries(t *testing.T) {
	tp := New(0)
	tp.now = fixedClock()

	if _, ok := tp.Last(); ok {
		t.Fatal("empty tape has no last entry")
	}

	tp.Record("2 + 3", "5")
	tp.Record("5 × 4", "20")

	entries := tp.Entries()
	if len(entries) != 2 || tp.Len() != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].String() != "2 + 3 = 5" {
		t.Errorf("entry 0: got %q", entries[0].String())
	}
	if _, err := uuid.Parse(entries[0].ID); err != nil {
		t.Errorf("entry ID %q is not a UUID: %v", entries[0].ID, err)
	}
	if entries[0].ID == entries[1].ID {
		t.Error("entry IDs should be unique")
	}

	last, ok := tp.Last()
	if !ok || last.Result != "20" {
		t.Errorf("Last: got %+v, %v", last, ok)
	}
	if e, ok := tp.Find(entries[0].ID); !ok || e.Expression != "2 + 3" {
		t.Errorf("Find: got %+v, %v", e, ok)
	}

	// Entries returns a copy
	entries[0].Result = "changed"
	if tp.Entries()[0].Result != "5" {
		t.Error("Entries should not alias the tape")
	}
}

func TestLimit(t *testing.T) {
	tp := New(2)
	tp.Record("1", "1")
	tp.Record("2", "2")
	tp.Record("3", "3")

	entries := tp.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Expression != "2" || entries[1].Expression != "3" {
		t.Errorf("oldest entry should be dropped, got %v", entries)
	}

	tp.Clear()
	if tp.Len() != 0 {
		t.Errorf("Clear: got %d entries", tp.Len())
	}
}

func TestWriteTo(t *testing.T) {
	tp := New(0)
	tp.now = fixedClock()
	tp.Record("2 + 3", "5")
	tp.Record("log(100)", "2")

	var buf bytes.Buffer
	n, err := tp.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	want := "2024-03-01T12:00:01Z\t2 + 3 = 5\n" +
		"2024-03-01T12:00:02Z\tlog(100) = 2\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	if n != int64(len(want)) {
		t.Errorf("got n=%d, want %d", n, len(want))
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteToError(t *testing.T) {
	tp := New(0)
	tp.Record(strings.Repeat("9", 10), "9999999999")
	if _, err := tp.WriteTo(failWriter{}); err == nil {
		t.Error("expected write error")
	}
}
