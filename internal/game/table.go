package game

import "math"

// Pocket is one of the 6 capture points on the table.
type Pocket struct {
	ID       int     `json:"id"`
	Position Vec2    `json:"position"`
	Radius   float64 `json:"radius"`
}

// Captures reports whether a ball centred at p falls into the pocket.
func (p Pocket) Captures(pos Vec2) bool {
	return pos.DistanceTo(p.Position) < p.Radius
}

// Table is the axis-aligned playing surface [0, Width] x [0, Height].
type Table struct {
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Pockets []Pocket `json:"pockets"`
}

// NewTable creates a table with the standard 6-pocket layout: 4 corners and
// the midpoints of the top and bottom cushions.
func NewTable(width, height, pocketRadius float64) *Table {
	centers := []Vec2{
		NewVec2(0, 0),
		NewVec2(width/2, 0),
		NewVec2(width, 0),
		NewVec2(0, height),
		NewVec2(width/2, height),
		NewVec2(width, height),
	}

	pockets := make([]Pocket, len(centers))
	for i, c := range centers {
		pockets[i] = Pocket{ID: i, Position: c, Radius: pocketRadius}
	}

	return &Table{
		Width:   width,
		Height:  height,
		Pockets: pockets,
	}
}

// NewStandardTable creates a table using the design dimensions.
func NewStandardTable() *Table {
	return NewTable(TableWidth, TableHeight, PocketRadius)
}

// Contains reports whether a ball of the given radius centred at p lies
// fully inside the cushions.
func (t *Table) Contains(p Vec2, radius float64) bool {
	return p.X >= radius && p.X <= t.Width-radius &&
		p.Y >= radius && p.Y <= t.Height-radius
}

// PocketAt returns the first pocket that captures a ball centred at p.
func (t *Table) PocketAt(p Vec2) (Pocket, bool) {
	for _, pocket := range t.Pockets {
		if pocket.Captures(p) {
			return pocket, true
		}
	}
	return Pocket{}, false
}

// StandardRack returns the cue ball plus a 5-row triangle of object balls.
// The apex sits RackOffsetX from the right cushion on the centre line.
func StandardRack(t *Table, radius float64) []*Ball {
	balls := make([]*Ball, 0, NumBalls)
	balls = append(balls, NewBall(0, NewVec2(CueBallStartX, t.Height/2), CueBallColor))

	startX := t.Width - RackOffsetX
	startY := t.Height / 2
	rowStep := radius * 2 * math.Cos(math.Pi/6)

	index := 0
	for row := 0; row < NumRackRows; row++ {
		for col := 0; col <= row; col++ {
			x := startX + float64(row)*rowStep
			y := startY - float64(row)*radius + float64(col)*radius*2
			color := RackColors[index%len(RackColors)]
			balls = append(balls, NewBall(len(balls), NewVec2(x, y), color))
			index++
		}
	}

	return balls
}
