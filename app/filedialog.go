package main

import (
	"io"

	"github.com/Logyle12/odin-calculator/app/tape"

	"gioui.org/x/explorer"
)

// replayExt is the extension offered when picking a calculations file.
const replayExt = ".txt"

// ReplayFile is a calculations file read for replay, one expression per line.
// The event loop replays Data itself; the session never leaves its goroutine.
type ReplayFile struct {
	Data []byte
	Err  error
}

// ExportResult reports a tape export: entries on the tape when it started
// and bytes written.
type ExportResult struct {
	Entries int
	N       int64
	Err     error
}

// PickReplayFile asks for a calculations file and reads it in the
// background.
func PickReplayFile(expl *explorer.Explorer) <-chan ReplayFile {
	ch := make(chan ReplayFile, 1)
	go func() {
		file, err := expl.ChooseFile(replayExt)
		if err != nil {
			ch <- ReplayFile{Err: err}
			return
		}
		ch <- readReplay(file)
	}()
	return ch
}

func readReplay(r io.ReadCloser) ReplayFile {
	defer r.Close()
	data, err := io.ReadAll(r)
	return ReplayFile{Data: data, Err: err}
}

// ExportTape asks where to save the tape and streams its entries there.
func ExportTape(expl *explorer.Explorer, t *tape.Tape, defaultName string) <-chan ExportResult {
	ch := make(chan ExportResult, 1)
	go func() {
		w, err := expl.CreateFile(defaultName)
		if err != nil {
			ch <- ExportResult{Err: err}
			return
		}
		ch <- writeTape(w, t)
	}()
	return ch
}

// writeTape writes t to w and closes it. A close error counts as a failed
// export.
func writeTape(w io.WriteCloser, t *tape.Tape) ExportResult {
	res := ExportResult{Entries: t.Len()}
	res.N, res.Err = t.WriteTo(w)
	if closeErr := w.Close(); res.Err == nil {
		res.Err = closeErr
	}
	return res
}
