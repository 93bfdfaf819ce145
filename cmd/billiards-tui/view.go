package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/playmatatu/billiards/internal/game"
)

// statusRows is the space kept under the table for the status line.
const statusRows = 1

// view maps table coordinates onto terminal cells. The table interior spans
// columns 1..cols-2 and rows 1..rows-2-statusRows; the border sits around it.
type view struct {
	cols, rows int
	table      *game.Table
}

func (v view) inner() (w, h int) {
	w = v.cols - 2
	h = v.rows - 2 - statusRows
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func (v view) scale() (sx, sy float64) {
	w, h := v.inner()
	return float64(w) / v.table.Width, float64(h) / v.table.Height
}

// toCell returns the interior cell holding p.
func (v view) toCell(p game.Vec2) (x, y int) {
	w, h := v.inner()
	sx, sy := v.scale()
	x = 1 + clampInt(int(math.Floor(p.X*sx)), 0, w-1)
	y = 1 + clampInt(int(math.Floor(p.Y*sy)), 0, h-1)
	return x, y
}

// toTable returns the table point at the centre of cell (x, y).
func (v view) toTable(x, y int) game.Vec2 {
	sx, sy := v.scale()
	return game.NewVec2((float64(x-1)+0.5)/sx, (float64(y-1)+0.5)/sy)
}

// pocketCell places a pocket on the border when it lies on a table edge.
func (v view) pocketCell(p game.Pocket) (x, y int) {
	w, h := v.inner()
	x, y = v.toCell(p.Position)
	switch {
	case p.Position.X <= 0:
		x = 0
	case p.Position.X >= v.table.Width:
		x = w + 1
	}
	switch {
	case p.Position.Y <= 0:
		y = 0
	case p.Position.Y >= v.table.Height:
		y = h + 1
	}
	return x, y
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ballStyle maps a rack colour name onto a terminal colour.
func ballStyle(color string) tcell.Style {
	c := tcell.GetColor(color)
	if c == tcell.ColorDefault {
		c = tcell.ColorWhite
	}
	return tcell.StyleDefault.Foreground(c).Background(feltColor)
}

var (
	feltColor   = tcell.ColorDarkGreen
	feltStyle   = tcell.StyleDefault.Background(feltColor)
	railStyle   = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown).Background(tcell.ColorSaddleBrown)
	pocketStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlack)
	aimStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(feltColor)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)
