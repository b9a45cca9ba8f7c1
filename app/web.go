//go:build js && wasm

package main

import (
	"syscall/js"

	"gioui.org/app"
)

func registerWebCallbacks(cs *CalcState, w *app.Window) {
	js.Global().Set("pressKey", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			cs.Press(args[0].String())
			w.Invalidate()
		}
		return cs.Session.Buffer()
	}))
	js.Global().Set("getTape", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		return string(cs.Export())
	}))
	js.Global().Set("recallResult", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		id := ""
		if len(args) > 0 {
			id = args[0].String()
		}
		if err := cs.Recall(id); err != nil {
			return err.Error()
		}
		w.Invalidate()
		return nil
	}))
	js.Global().Set("clearTape", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		cs.ClearTape()
		w.Option(app.Title(cs.Title()))
		w.Invalidate()
		return nil
	}))

	// Replay calculations from URL parameter (decoded by JS before WASM started)
	initialText := js.Global().Get("_initialText")
	if !initialText.IsUndefined() && !initialText.IsNull() && initialText.String() != "" {
		if err := cs.Replay([]byte(initialText.String())); err != nil {
			js.Global().Get("console").Call("warn", err.Error())
		}
	}
}
