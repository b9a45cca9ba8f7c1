//go:build !(js && wasm)

package main

import "gioui.org/app"

func registerWebCallbacks(cs *CalcState, w *app.Window) {}
