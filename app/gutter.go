package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/Logyle12/odin-calculator/app/tape"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

var (
	gutterBg       = color.NRGBA{R: 0x1E, G: 0x1E, B: 0x1E, A: 0xFF}
	gutterFg       = color.NRGBA{R: 0x85, G: 0x85, B: 0x85, A: 0xFF}
	gutterDivider  = color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xFF}
	gutterWidth    = unit.Dp(40)
	resultColor    = color.NRGBA{R: 0x4E, G: 0xC9, B: 0xB0, A: 0xFF} // teal
	resultErrColor = color.NRGBA{R: 0xF4, G: 0x47, B: 0x47, A: 0xFF} // red
)

// MeasureLineHeight measures the actual rendered line height for the given theme.
func MeasureLineHeight(gtx layout.Context, th *material.Theme) int {
	// Record ops so the probe label doesn't actually render
	macro := op.Record(gtx.Ops)
	lbl := material.Label(th, th.TextSize, "0")
	lbl.MaxLines = 1
	probeGtx := gtx
	probeGtx.Constraints.Min = image.Point{}
	dims := lbl.Layout(probeGtx)
	macro.Stop()
	if dims.Size.Y > 0 {
		return dims.Size.Y
	}
	return gtx.Sp(th.TextSize)
}

// LayoutTape renders the tape: entry numbers in a narrow column, then each
// expression with its result. The newest entries stay visible at the bottom.
// widthPx is the panel width in pixels.
func LayoutTape(gtx layout.Context, th *material.Theme, entries []tape.Entry, lineHeight int, topPad int, widthPx int) layout.Dimensions {
	width := widthPx
	height := gtx.Constraints.Max.Y
	numWidth := gtx.Dp(gutterWidth)

	paint.FillShape(gtx.Ops, gutterBg, clip.Rect(image.Rect(0, 0, width, height)).Op())

	if lineHeight <= 0 {
		lineHeight = 16
	}

	// Each entry takes two lines: expression, then result
	rowHeight := 2 * lineHeight
	visible := (height - topPad) / rowHeight
	first := 0
	if len(entries) > visible {
		first = len(entries) - visible
	}

	digits := len(fmt.Sprintf("%d", len(entries)))
	if digits < 2 {
		digits = 2
	}
	fmtStr := fmt.Sprintf("%%%dd", digits)

	for i := first; i < len(entries); i++ {
		e := entries[i]
		yOffset := topPad + (i-first)*rowHeight

		num := material.Label(th, th.TextSize, fmt.Sprintf(fmtStr, i+1))
		num.Color = gutterFg
		num.Alignment = text.End
		num.MaxLines = 1
		layoutLine(gtx, num, 0, yOffset, numWidth-gtx.Dp(4), lineHeight)

		expr := material.Label(th, th.TextSize, e.Expression)
		expr.Color = gutterFg
		expr.MaxLines = 1
		layoutLine(gtx, expr, numWidth+gtx.Dp(8), yOffset, width-numWidth-gtx.Dp(16), lineHeight)

		res := material.Label(th, th.TextSize, "= "+e.Result)
		res.Color = resultColor
		res.MaxLines = 1
		layoutLine(gtx, res, numWidth+gtx.Dp(8), yOffset+lineHeight, width-numWidth-gtx.Dp(16), lineHeight)
	}

	// Draw faint divider line right of the numbers
	paint.FillShape(gtx.Ops, gutterDivider, clip.Rect(image.Rect(numWidth-1, 0, numWidth, height)).Op())

	return layout.Dimensions{Size: image.Pt(width, height)}
}

// layoutLine positions a label, clipped to one line.
func layoutLine(gtx layout.Context, lbl material.LabelStyle, x, y, w, h int) {
	if w <= 0 {
		return
	}
	off := op.Offset(image.Pt(x, y)).Push(gtx.Ops)
	cl := clip.Rect(image.Rect(0, 0, w, h)).Push(gtx.Ops)
	labelGtx := gtx
	labelGtx.Constraints = layout.Exact(image.Pt(w, h))
	lbl.Layout(labelGtx)
	cl.Pop()
	off.Pop()
}
