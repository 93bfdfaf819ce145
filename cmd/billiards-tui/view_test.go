package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/playmatatu/billiards/internal/game"
)

func testView() view {
	// 100x50 table on a 102x53 terminal: one cell per 10x10 table units.
	return view{cols: 102, rows: 53, table: game.NewTable(1000, 500, 35)}
}

func TestToCellCorners(t *testing.T) {
	v := testView()

	x, y := v.toCell(game.NewVec2(0, 0))
	if x != 1 || y != 1 {
		t.Errorf("origin: expected (1,1), got (%d,%d)", x, y)
	}

	x, y = v.toCell(game.NewVec2(1000, 500))
	if x != 100 || y != 50 {
		t.Errorf("far corner: expected (100,50), got (%d,%d)", x, y)
	}
}

func TestToTableRoundTrip(t *testing.T) {
	v := testView()

	for _, cell := range [][2]int{{1, 1}, {37, 12}, {100, 50}} {
		p := v.toTable(cell[0], cell[1])
		x, y := v.toCell(p)
		if x != cell[0] || y != cell[1] {
			t.Errorf("cell %v mapped to %v and back to (%d,%d)", cell, p, x, y)
		}
	}
}

func TestPocketCellsOnBorder(t *testing.T) {
	v := testView()
	expected := [][2]int{{0, 0}, {51, 0}, {101, 0}, {0, 51}, {51, 51}, {101, 51}}

	for i, p := range v.table.Pockets {
		x, y := v.pocketCell(p)
		if x != expected[i][0] || y != expected[i][1] {
			t.Errorf("pocket %d: expected %v, got (%d,%d)", i, expected[i], x, y)
		}
	}
}

func TestTinyTerminal(t *testing.T) {
	v := view{cols: 1, rows: 1, table: game.NewStandardTable()}
	x, y := v.toCell(game.NewVec2(500, 250))
	if x != 1 || y != 1 {
		t.Errorf("expected (1,1) on a degenerate terminal, got (%d,%d)", x, y)
	}
}

func TestBallStyleFallsBackToWhite(t *testing.T) {
	fg, _, _ := ballStyle("not-a-colour").Decompose()
	if fg != tcell.ColorWhite {
		t.Errorf("expected white fallback, got %v", fg)
	}

	fg, _, _ = ballStyle("red").Decompose()
	if fg != tcell.ColorRed {
		t.Errorf("expected red, got %v", fg)
	}
}

func TestVolumeRange(t *testing.T) {
	s := &sounds{maxSpeed: 20}

	if v := s.volume(game.EventBall, 20); v != 0 {
		t.Errorf("full speed should play at 0, got %v", v)
	}
	if v := s.volume(game.EventBall, 0); v != -4 {
		t.Errorf("zero speed should floor at -4, got %v", v)
	}
	if v := s.volume(game.EventPocket, 0.5); v != 0 {
		t.Errorf("pocket drops always play at 0, got %v", v)
	}
}
