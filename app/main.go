package main

import (
	"flag"
	"image"
	"image/color"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var (
	editorBg = color.NRGBA{R: 0x1E, G: 0x1E, B: 0x1E, A: 0xFF}
	editorFg = color.NRGBA{R: 0xD4, G: 0xD4, B: 0xD4, A: 0xFF}
)

var (
	debugFlag  = flag.Bool("debug", false, "trace queue and evaluation steps to stderr")
	exportFlag = flag.String("export", "", "write the tape to this file on exit")
	limitFlag  = flag.Int("tape", 500, "maximum tape entries kept (0 = unlimited)")
)

func main() {
	flag.Parse()

	go func() {
		w := new(app.Window)
		w.Option(app.Title("odin-calculator"), app.Size(unit.Dp(720), unit.Dp(640)))
		if err := run(w); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// keyboardKeys maps physical keys to keypad keys.
var keyboardKeys = map[key.Name]string{
	"0": "0", "1": "1", "2": "2", "3": "3", "4": "4",
	"5": "5", "6": "6", "7": "7", "8": "8", "9": "9",
	".": ".", ",": ".",
	"+": "+", "-": "−", "*": "×", "/": "÷", "^": "^",
	"%": "%", "(": "(", ")": ")", "E": "E",
	key.NameReturn:         "=",
	key.NameEnter:          "=",
	key.NameDeleteBackward: "DEL",
	key.NameDeleteForward:  "DEL",
	key.NameEscape:         "AC",
}

func run(w *app.Window) error {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	th.Face = "Go Mono"
	th.TextSize = unit.Sp(16)

	var logger *log.Logger
	if *debugFlag {
		logger = log.New(os.Stderr, "engine: ", log.Lmicroseconds)
	}
	cs := NewCalcState(*limitFlag, logger)
	registerWebCallbacks(cs, w)
	expl := explorer.NewExplorer(w)
	keypad := NewKeypad()
	tapeRatio := 0.4 // tape panel as fraction of window width
	tapeWidth := 0
	var divider DragDivider

	// Replay a file of calculations from the command line if provided
	if flag.NArg() > 0 {
		if err := cs.LoadFile(flag.Arg(0)); err != nil {
			log.Printf("Failed to replay %s: %v", flag.Arg(0), err)
		}
	}

	var shortcutTag = new(bool)
	var openCh <-chan ReplayFile
	var saveCh <-chan ExportResult

	// Channel-forward pattern for explorer compatibility
	events := make(chan event.Event)
	acks := make(chan struct{})
	go func() {
		for {
			ev := w.Event()
			events <- ev
			<-acks
			if _, ok := ev.(app.DestroyEvent); ok {
				return
			}
		}
	}()

	w.Option(app.Title(cs.Title()))

	var ops op.Ops
	for {
		select {
		case result := <-openCh:
			openCh = nil
			if result.Err == nil {
				if err := cs.Replay(result.Data); err != nil {
					log.Printf("Replay error: %v", err)
				}
				w.Option(app.Title(cs.Title()))
			}
			w.Invalidate()

		case result := <-saveCh:
			saveCh = nil
			if result.Err != nil {
				log.Printf("Export error: %v", result.Err)
			} else if *debugFlag {
				log.Printf("exported %d entries (%d bytes)", result.Entries, result.N)
			}
			w.Invalidate()

		case e := <-events:
			expl.ListenEvents(e)
			switch e := e.(type) {
			case app.DestroyEvent:
				if *exportFlag != "" {
					if err := cs.SaveFile(*exportFlag); err != nil {
						log.Printf("Export error: %v", err)
					}
				}
				acks <- struct{}{}
				return e.Err
			case app.FrameEvent:
				gtx := app.NewContext(&ops, e)

				// Compute tape width from ratio; update ratio if user dragged
				windowW := gtx.Constraints.Max.X
				expectedWidth := int(tapeRatio * float64(windowW))
				if tapeWidth != 0 && tapeWidth != expectedWidth {
					tapeRatio = float64(tapeWidth) / float64(windowW)
				}
				tapeWidth = clampTapeWidth(int(tapeRatio*float64(windowW)), windowW)

				// Handle keyboard shortcuts and calculator keys
				event.Op(gtx.Ops, shortcutTag)
				filters := []event.Filter{
					key.Filter{Required: key.ModShortcut, Name: "O"},
					key.Filter{Required: key.ModShortcut, Name: "S"},
					key.Filter{Required: key.ModShortcut, Name: "R"},
					key.Filter{Required: key.ModShortcut, Name: "K"},
					key.Filter{Required: key.ModShortcut, Name: "="},
					key.Filter{Required: key.ModShortcut, Name: "-"},
				}
				for name := range keyboardKeys {
					filters = append(filters, key.Filter{Optional: key.ModShift, Name: name})
				}
				committed := cs.Tape.Len()
				for {
					ev, ok := gtx.Event(filters...)
					if !ok {
						break
					}
					ke, ok := ev.(key.Event)
					if !ok || ke.State != key.Press {
						continue
					}
					if ke.Modifiers.Contain(key.ModShortcut) {
						switch ke.Name {
						case "O":
							if openCh == nil {
								openCh = PickReplayFile(expl)
							}
						case "S":
							if saveCh == nil {
								saveCh = ExportTape(expl, cs.Tape, "tape.txt")
							}
						case "R": // recall the newest result
							if err := cs.Recall(""); err != nil {
								log.Printf("Recall: %v", err)
							}
						case "K":
							cs.ClearTape()
						case "=": // Cmd+= (Cmd+Plus)
							if th.TextSize < unit.Sp(48) {
								th.TextSize += unit.Sp(2)
							}
						case "-": // Cmd+-
							if th.TextSize > unit.Sp(8) {
								th.TextSize -= unit.Sp(2)
							}
						}
						continue
					}
					cs.Press(keyboardKeys[ke.Name])
				}

				for _, k := range keypad.Update(gtx) {
					cs.Press(k)
				}
				if cs.Tape.Len() != committed {
					w.Option(app.Title(cs.Title()))
				}

				// Fill background
				paint.FillShape(gtx.Ops, editorBg, clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Op())

				lineHeight := MeasureLineHeight(gtx, th)
				topPad := gtx.Dp(unit.Dp(6))
				entries := cs.Tape.Entries()

				// Layout: display over keypad | divider | tape
				layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
					layout.Flexed(1, func(gtx C) D {
						return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
							layout.Rigid(func(gtx C) D {
								return layoutDisplay(gtx, th, cs)
							}),
							layout.Flexed(1, func(gtx C) D {
								return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx C) D {
									return keypad.Layout(gtx, th)
								})
							}),
						)
					}),
					layout.Rigid(func(gtx C) D {
						return divider.Layout(gtx, &tapeWidth, windowW)
					}),
					layout.Rigid(func(gtx C) D {
						return LayoutTape(gtx, th, entries, lineHeight, topPad, tapeWidth)
					}),
				)

				e.Frame(gtx.Ops)
			}
			acks <- struct{}{}
		}
	}
}

// layoutDisplay draws the highlighted expression and, under it, the preview
// or the last commit error.
func layoutDisplay(gtx C, th *material.Theme, cs *CalcState) D {
	return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.End}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				return drawHighlightedText(gtx, th, cs.Session.Buffer(), th.TextSize*1.6)
			}),
			layout.Rigid(func(gtx C) D {
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				res, isErr := cs.ResultLine()
				if res == "" {
					res = " "
				}
				lbl := material.Label(th, th.TextSize*1.2, res)
				lbl.Color = resultColor
				if isErr {
					lbl.Color = resultErrColor
				}
				lbl.Font = font.Font{Typeface: "Go Mono"}
				lbl.Alignment = text.End
				lbl.MaxLines = 1
				return lbl.Layout(gtx)
			}),
		)
	})
}

// drawHighlightedText renders one line of buffer text right-aligned, each
// token in its highlight color.
func drawHighlightedText(gtx C, th *material.Theme, line string, size unit.Sp) D {
	tokens := Tokenize(line)

	// Measure every span first so the line can be right-aligned
	type span struct {
		call op.CallOp
		dims D
	}
	spans := make([]span, 0, len(tokens))
	total, height := 0, 0
	for _, tok := range tokens {
		lbl := material.Label(th, size, tok.Text)
		lbl.Color = TokenColor(tok.Kind)
		lbl.Font = font.Font{Typeface: "Go Mono"}
		lbl.MaxLines = 1

		macro := op.Record(gtx.Ops)
		tgtx := gtx
		tgtx.Constraints.Min = image.Point{}
		dims := lbl.Layout(tgtx)
		spans = append(spans, span{call: macro.Stop(), dims: dims})
		total += dims.Size.X
		height = max(height, dims.Size.Y)
	}

	width := gtx.Constraints.Max.X
	// Keep the end of a long expression visible
	x := width - total
	cl := clip.Rect(image.Rect(0, 0, width, height)).Push(gtx.Ops)
	for _, s := range spans {
		off := op.Offset(image.Pt(x, 0)).Push(gtx.Ops)
		s.call.Add(gtx.Ops)
		off.Pop()
		x += s.dims.Size.X
	}
	cl.Pop()
	return D{Size: image.Pt(width, height)}
}
