package main

import (
	"image/color"

	"github.com/Logyle12/odin-calculator/app/lang"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

var (
	digitBg    = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}
	operatorBg = color.NRGBA{R: 0x26, G: 0x4F, B: 0x78, A: 0xFF}
	functionBg = color.NRGBA{R: 0x2A, G: 0x2D, B: 0x32, A: 0xFF}
	clearBg    = color.NRGBA{R: 0x6E, G: 0x2B, B: 0x2B, A: 0xFF}
	equalsBg   = color.NRGBA{R: 0x2E, G: 0x6B, B: 0x5E, A: 0xFF}
)

type keyButton struct {
	label string
	key   string // as understood by lang.Session.Press
	bg    color.NRGBA
	click widget.Clickable
}

// Keypad is the on-screen button grid.
type Keypad struct {
	rows [][]*keyButton
}

func btn(label, key string, bg color.NRGBA) *keyButton {
	return &keyButton{label: label, key: key, bg: bg}
}

// NewKeypad lays out the calculator keys.
func NewKeypad() *Keypad {
	digit := func(d string) *keyButton { return btn(d, d, digitBg) }
	return &Keypad{rows: [][]*keyButton{
		{btn("AC", lang.KeyClear, clearBg), btn("⌫", lang.KeyDelete, clearBg), btn("( )", lang.KeyGroup, functionBg), btn("%", lang.KeyPercent, functionBg)},
		{btn("ln", "ln", functionBg), btn("log", "log", functionBg), btn("√", "√", functionBg), btn("xʸ", "^", operatorBg)},
		{digit("7"), digit("8"), digit("9"), btn("÷", "÷", operatorBg)},
		{digit("4"), digit("5"), digit("6"), btn("×", "×", operatorBg)},
		{digit("1"), digit("2"), digit("3"), btn("−", "−", operatorBg)},
		{digit("0"), btn(".", lang.KeyPoint, digitBg), btn("EE", "E", operatorBg), btn("+", "+", operatorBg)},
		{btn("=", lang.KeyEquals, equalsBg)},
	}}
}

// Update returns the keys clicked since the last frame.
func (k *Keypad) Update(gtx layout.Context) []string {
	var keys []string
	for _, row := range k.rows {
		for _, b := range row {
			for b.click.Clicked(gtx) {
				keys = append(keys, b.key)
			}
		}
	}
	return keys
}

// Layout draws the grid, every row sharing the height equally.
func (k *Keypad) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	rows := make([]layout.FlexChild, len(k.rows))
	for i, row := range k.rows {
		row := row
		rows[i] = layout.Flexed(1, func(gtx C) D {
			cells := make([]layout.FlexChild, len(row))
			for j, b := range row {
				b := b
				cells[j] = layout.Flexed(1, func(gtx C) D {
					return layout.UniformInset(unit.Dp(3)).Layout(gtx, func(gtx C) D {
						gtx.Constraints.Min = gtx.Constraints.Max
						bs := material.Button(th, &b.click, b.label)
						bs.Background = b.bg
						bs.Color = editorFg
						bs.TextSize = th.TextSize * 1.3
						return bs.Layout(gtx)
					})
				})
			}
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, cells...)
		})
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, rows...)
}
