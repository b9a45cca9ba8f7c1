package main

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Logyle12/odin-calculator/app/lang"
	"github.com/Logyle12/odin-calculator/app/tape"
)

// CalcState holds the session behind the keypad and its history.
type CalcState struct {
	Session *lang.Session
	Tape    *tape.Tape

	// LastErr is the error of the last failed commit, cleared by the next key.
	LastErr error
}

// NewCalcState creates a session that records commits on a tape holding at
// most limit entries.
func NewCalcState(limit int, logger *log.Logger) *CalcState {
	t := tape.New(limit)
	opts := []lang.Option{lang.WithRecorder(t)}
	if logger != nil {
		opts = append(opts, lang.WithLogger(logger))
	}
	return &CalcState{Session: lang.NewSession(opts...), Tape: t}
}

// Press applies a key and keeps the commit error, if any, for display.
func (cs *CalcState) Press(key string) {
	_, err := cs.Session.Press(key)
	cs.LastErr = err
	if err != nil {
		log.Printf("key %q: %v", key, err)
	}
}

// ResultLine returns the text under the expression: the commit error, or
// the live preview, or nothing.
func (cs *CalcState) ResultLine() (text string, isErr bool) {
	if cs.LastErr != nil {
		return cs.LastErr.Error(), true
	}
	if p := cs.Session.Preview(); p.OK {
		return "= " + p.Text, false
	}
	return "", false
}

// Replay types every non-blank line of data as one expression and commits
// it, so that a file of calculations ends up on the tape. Lines starting
// with '#' are comments.
func (cs *CalcState) Replay(data []byte) error {
	sc := bufio.NewScanner(bytes.NewReader(data))
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSuffix(strings.TrimSpace(sc.Text()), "=")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cs.Session.Clear()
		if err := cs.Session.Type(line); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if _, err := cs.Session.Commit(); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return sc.Err()
}

// Recall re-enters the result of the tape entry with the given ID, or of
// the newest entry when id is empty, as if it had just been committed.
func (cs *CalcState) Recall(id string) error {
	var (
		e  tape.Entry
		ok bool
	)
	if id == "" {
		e, ok = cs.Tape.Last()
	} else {
		e, ok = cs.Tape.Find(id)
	}
	if !ok {
		return fmt.Errorf("recall %q: %w", id, tape.ErrNotFound)
	}
	cs.LastErr = nil
	return cs.Session.Recall(e.Result)
}

// ClearTape drops the history; the expression being typed is kept.
func (cs *CalcState) ClearTape() {
	cs.Tape.Clear()
}

// LoadFile replays the calculations in a file.
func (cs *CalcState) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return cs.Replay(data)
}

// Export renders the tape as text.
func (cs *CalcState) Export() []byte {
	var buf bytes.Buffer
	cs.Tape.WriteTo(&buf)
	return buf.Bytes()
}

// SaveFile writes the tape to the given path.
func (cs *CalcState) SaveFile(path string) error {
	return os.WriteFile(path, cs.Export(), 0644)
}

// Title returns a window title showing the number of tape entries.
func (cs *CalcState) Title() string {
	if n := cs.Tape.Len(); n > 0 {
		return fmt.Sprintf("odin-calculator (%d)", n)
	}
	return "odin-calculator"
}
