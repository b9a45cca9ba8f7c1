package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Logyle12/odin-calculator/app/lang"
	"github.com/Logyle12/odin-calculator/app/tape"
)

func TestReplay(t *testing.T) {
	cs := NewCalcState(0, nil)
	data := "# warm-up\n2+3×4\n\n(1+2)×3=\nlog(1000)\n"
	if err := cs.Replay([]byte(data)); err != nil {
		t.Fatal(err)
	}

	entries := cs.Tape.Entries()
	want := []string{"2 + 3 × 4 = 14", "(1 + 2) × 3 = 9", "log(1,000) = 3"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries: %v", len(entries), entries)
	}
	for i, e := range entries {
		if e.String() != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, e.String(), want[i])
		}
	}
	if cs.Title() != "odin-calculator (3)" {
		t.Errorf("title = %q", cs.Title())
	}
}

func TestReplayError(t *testing.T) {
	cs := NewCalcState(0, nil)
	err := cs.Replay([]byte("1+1\n5÷0\n"))
	if !errors.Is(err, lang.ErrDivisionByZero) || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Replay error = %v", err)
	}
	if cs.Tape.Len() != 1 {
		t.Errorf("tape has %d entries, want 1", cs.Tape.Len())
	}
}

func TestResultLine(t *testing.T) {
	cs := NewCalcState(0, nil)
	for _, k := range []string{"5", "÷", "2"} {
		cs.Press(k)
	}
	if text, isErr := cs.ResultLine(); text != "= 2.5" || isErr {
		t.Errorf("preview line = %q, %v", text, isErr)
	}

	cs.Press("DEL")
	cs.Press("0")
	cs.Press("=")
	if text, isErr := cs.ResultLine(); !isErr || text != lang.ErrDivisionByZero.Error() {
		t.Errorf("error line = %q, %v", text, isErr)
	}
	if cs.Session.Buffer() != "5 ÷ 0" {
		t.Errorf("buffer after failed commit = %q", cs.Session.Buffer())
	}

	// The next key clears the error
	cs.Press("DEL")
	if text, _ := cs.ResultLine(); text != "" {
		t.Errorf("line after edit = %q", text)
	}
}

func TestSaveFile(t *testing.T) {
	cs := NewCalcState(0, nil)
	if err := cs.Replay([]byte("6×7")); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "tape.txt")
	if err := cs.SaveFile(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "\t6 × 7 = 42\n") {
		t.Errorf("exported %q", data)
	}
}

func TestTokenize(t *testing.T) {
	line := "log(1,234) + 5% × (2"
	tokens := Tokenize(line)

	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	if b.String() != line {
		t.Errorf("spans do not cover the line: %q", b.String())
	}

	kinds := map[string]TokenKind{}
	for _, tok := range tokens {
		kinds[tok.Text] = tok.Kind
	}
	checks := map[string]TokenKind{
		"log":   TokenFunction,
		"1,234": TokenNumber,
		"5%":    TokenPercent,
		"×":     TokenOperator,
		"(":     TokenParen,
	}
	for text, want := range checks {
		if kinds[text] != want {
			t.Errorf("%q: kind %d, want %d", text, kinds[text], want)
		}
	}
	if Tokenize("") != nil {
		t.Error("empty line should have no spans")
	}
}

func TestClampTapeWidth(t *testing.T) {
	tests := []struct{ w, window, want int }{
		{50, 1000, minTapeWidth},
		{300, 1000, 300},
		{900, 1000, 500},
	}
	for _, tt := range tests {
		if got := clampTapeWidth(tt.w, tt.window); got != tt.want {
			t.Errorf("clampTapeWidth(%d, %d) = %d, want %d", tt.w, tt.window, got, tt.want)
		}
	}
}

func TestRecall(t *testing.T) {
	cs := NewCalcState(0, nil)
	if err := cs.Replay([]byte("6×7\n1+1\n")); err != nil {
		t.Fatal(err)
	}

	if err := cs.Recall(""); err != nil {
		t.Fatal(err)
	}
	if cs.Session.Buffer() != "2" {
		t.Errorf("recall newest: buffer = %q, want 2", cs.Session.Buffer())
	}

	first := cs.Tape.Entries()[0]
	if err := cs.Recall(first.ID); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"+", "1", "="} {
		cs.Press(k)
	}
	if e, _ := cs.Tape.Last(); e.String() != "42 + 1 = 43" {
		t.Errorf("last entry = %q", e.String())
	}

	if err := cs.Recall("no-such-id"); !errors.Is(err, tape.ErrNotFound) {
		t.Errorf("Recall(unknown) error = %v", err)
	}
}

func TestClearTape(t *testing.T) {
	cs := NewCalcState(0, nil)
	if err := cs.Replay([]byte("2+2")); err != nil {
		t.Fatal(err)
	}
	cs.Press("×")
	cs.ClearTape()
	if cs.Tape.Len() != 0 || cs.Title() != "odin-calculator" {
		t.Errorf("tape len %d, title %q", cs.Tape.Len(), cs.Title())
	}
	if cs.Session.Buffer() != "4 × " {
		t.Errorf("buffer = %q, want the expression kept", cs.Session.Buffer())
	}
	if err := cs.Recall(""); !errors.Is(err, tape.ErrNotFound) {
		t.Errorf("Recall on empty tape error = %v", err)
	}
}

type closeRecorder struct {
	strings.Builder
	closed   bool
	closeErr error
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.closeErr
}

func TestWriteTape(t *testing.T) {
	cs := NewCalcState(0, nil)
	if err := cs.Replay([]byte("1+1\n2×3")); err != nil {
		t.Fatal(err)
	}

	w := &closeRecorder{}
	res := writeTape(w, cs.Tape)
	if res.Err != nil || res.Entries != 2 || res.N != int64(w.Len()) || !w.closed {
		t.Errorf("writeTape = %+v, closed %v", res, w.closed)
	}
	if !strings.HasSuffix(w.String(), "\t2 × 3 = 6\n") {
		t.Errorf("wrote %q", w.String())
	}

	failing := &closeRecorder{closeErr: errors.New("disk full")}
	if res := writeTape(failing, cs.Tape); res.Err == nil || res.Err.Error() != "disk full" {
		t.Errorf("close error lost: %+v", res)
	}
}

func TestReadReplay(t *testing.T) {
	r := io.NopCloser(strings.NewReader("2+2\n"))
	got := readReplay(r)
	if got.Err != nil || string(got.Data) != "2+2\n" {
		t.Errorf("readReplay = %+v", got)
	}
}
