package game

import "testing"

func TestNewTablePocketLayout(t *testing.T) {
	table := NewTable(800, 400, 35)

	want := []Vec2{{0, 0}, {400, 0}, {800, 0}, {0, 400}, {400, 400}, {800, 400}}
	if len(table.Pockets) != NumPockets {
		t.Fatalf("got %d pockets, want %d", len(table.Pockets), NumPockets)
	}
	for i, p := range table.Pockets {
		if p.ID != i || p.Position != want[i] || p.Radius != 35 {
			t.Errorf("pocket %d = %+v, want %+v", i, p, want[i])
		}
	}
}

func TestPocketAt(t *testing.T) {
	table := NewStandardTable()

	if p, ok := table.PocketAt(NewVec2(TableWidth-10, TableHeight-10)); !ok || p.ID != 5 {
		t.Errorf("PocketAt near bottom-right = (%+v,%v), want pocket 5", p, ok)
	}
	if _, ok := table.PocketAt(NewVec2(TableWidth/2, TableHeight/2)); ok {
		t.Error("table centre should not be inside a pocket")
	}
	// The boundary itself is outside: capture needs distance < radius.
	if _, ok := table.PocketAt(NewVec2(PocketRadius, 0)); ok {
		t.Error("distance equal to the radius should not capture")
	}
}

func TestStandardRackGeometry(t *testing.T) {
	table := NewStandardTable()
	balls := StandardRack(table, BallRadius)

	if len(balls) != NumBalls {
		t.Fatalf("rack has %d balls, want %d", len(balls), NumBalls)
	}
	if balls[0].Position != NewVec2(CueBallStartX, TableHeight/2) || balls[0].Color != CueBallColor {
		t.Errorf("cue ball = %+v", balls[0])
	}
	if balls[1].Position != NewVec2(TableWidth-RackOffsetX, TableHeight/2) {
		t.Errorf("apex = %+v", balls[1].Position)
	}
	if balls[11].Color != RackColors[0] {
		t.Errorf("ball 11 colour = %s, want colour cycle to wrap", balls[11].Color)
	}

	for i, b := range balls {
		if b.ID != i || !b.InPlay || !b.Velocity.IsZero() {
			t.Errorf("ball %d = %+v", i, b)
		}
		if !table.Contains(b.Position, BallRadius) {
			t.Errorf("ball %d racked off the table at %+v", i, b.Position)
		}
		for j := i + 1; j < len(balls); j++ {
			d := b.Position.DistanceTo(balls[j].Position)
			if d < 2*BallRadius-1e-6 {
				t.Errorf("balls %d and %d overlap (distance %.6f)", i, j, d)
			}
		}
	}
}
