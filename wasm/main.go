//go:build js && wasm

package main

import (
	"strings"
	"syscall/js"

	"github.com/Logyle12/odin-calculator/app/lang"
	"github.com/Logyle12/odin-calculator/app/tape"
)

var (
	evalState = &lang.EvalState{}
	history   = tape.New(500)
	session   = lang.NewSession(lang.WithRecorder(history))
)

// state reports the session to the page after every key.
func state(err error) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("buffer", session.Buffer())
	p := session.Preview()
	obj.Set("preview", p.Text)
	obj.Set("ok", p.OK)
	if err != nil {
		obj.Set("error", err.Error())
		obj.Set("kind", lang.KindOf(err).String())
	}
	return obj
}

func main() {
	// Register press function: one keypad key, e.g. "7", "×", "log", "DEL", "="
	js.Global().Set("press", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) < 1 {
			return nil
		}
		_, err := session.Press(args[0].String())
		return state(err)
	}))

	js.Global().Set("commit", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		_, err := session.Commit()
		return state(err)
	}))

	js.Global().Set("clear", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		session.Clear()
		return state(nil)
	}))

	// Register tape function: committed calculations, oldest first
	js.Global().Set("tape", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		entries := history.Entries()
		arr := js.Global().Get("Array").New(len(entries))
		for i, e := range entries {
			obj := js.Global().Get("Object").New()
			obj.Set("id", e.ID)
			obj.Set("expression", e.Expression)
			obj.Set("result", e.Result)
			arr.SetIndex(i, obj)
		}
		return arr
	}))

	// Register recall function: re-enter a tape result by id, or the newest
	js.Global().Set("recall", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		e, ok := history.Last()
		if len(args) > 0 && args[0].String() != "" {
			e, ok = history.Find(args[0].String())
		}
		if !ok {
			return state(tape.ErrNotFound)
		}
		return state(session.Recall(e.Result))
	}))

	js.Global().Set("clearTape", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		history.Clear()
		return nil
	}))

	// Register evaluate function: one independent expression per line
	js.Global().Set("evaluate", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) < 1 {
			return nil
		}
		lines := strings.Split(args[0].String(), "\n")
		results := evalState.EvalAllIncremental(lines)

		arr := js.Global().Get("Array").New(len(results))
		for i, r := range results {
			obj := js.Global().Get("Object").New()
			obj.Set("text", r.Text)
			obj.Set("isErr", r.IsErr)
			arr.SetIndex(i, obj)
		}
		return arr
	}))

	// Signal that WASM is ready
	js.Global().Set("_wasmReady", true)
	onReady := js.Global().Get("_onWasmReady")
	if !onReady.IsUndefined() && !onReady.IsNull() {
		onReady.Invoke()
	}

	// Block forever
	select {}
}
