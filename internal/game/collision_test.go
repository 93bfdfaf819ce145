package game

import (
	"math"
	"testing"
)

func TestHeadOnCollisionExchangesVelocity(t *testing.T) {
	a := movingBall(0, 300, 250, 5, 0)
	b := movingBall(1, 325, 250, 0, 0)
	sim := newTestSimulation(a, b)

	sim.ResolvePair(a, b)

	if !approxEqual(a.Velocity.X, 0) || !approxEqual(a.Velocity.Y, 0) {
		t.Errorf("striker velocity = %+v, want ~(0,0)", a.Velocity)
	}
	if !approxEqual(b.Velocity.X, 5) || !approxEqual(b.Velocity.Y, 0) {
		t.Errorf("target velocity = %+v, want ~(5,0)", b.Velocity)
	}
}

func TestHeadOnCollisionThroughStep(t *testing.T) {
	a := movingBall(0, 300, 250, 5, 0)
	b := movingBall(1, 334, 250, 0, 0)
	sim := newTestSimulation(a, b)

	// Advance brings the centres to 29 apart, then the pair resolves.
	sim.Step()

	if math.Abs(a.Velocity.X) > tolerance {
		t.Errorf("striker vx = %.6f, want ~0", a.Velocity.X)
	}
	if !approxEqual(b.Velocity.X, 5*Friction) {
		t.Errorf("target vx = %.6f, want %.6f", b.Velocity.X, 5*Friction)
	}
}

func TestResolvePairRemovesOverlap(t *testing.T) {
	cases := []struct {
		name string
		a, b *Ball
	}{
		{"horizontal", movingBall(0, 300, 250, 2, 0), movingBall(1, 320, 250, -1, 0)},
		{"diagonal", movingBall(0, 300, 250, 3, 1), movingBall(1, 310, 262, 0, -2)},
		{"resting", movingBall(0, 400, 100, 0, 0), movingBall(1, 401, 125, 0, 0)},
		{"coincident", movingBall(0, 500, 250, 1, 0), movingBall(1, 500, 250, 0, 0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sim := newTestSimulation(tc.a, tc.b)
			sim.ResolvePair(tc.a, tc.b)

			d := tc.a.Position.DistanceTo(tc.b.Position)
			if !approxEqual(d, 2*BallRadius) {
				t.Errorf("distance after resolve = %.9f, want %.1f", d, 2*BallRadius)
			}
			if !tc.a.Velocity.IsFinite() || !tc.b.Velocity.IsFinite() {
				t.Errorf("non-finite velocity: a=%+v b=%+v", tc.a.Velocity, tc.b.Velocity)
			}
		})
	}
}

func TestResolvePairCoincidentFallback(t *testing.T) {
	a := movingBall(0, 500, 250, 1, 0)
	b := movingBall(1, 500, 250, 0, 0)
	sim := newTestSimulation(a, b)

	sim.ResolvePair(a, b)

	if !approxEqual(a.Position.X, 500+BallRadius) || !approxEqual(b.Position.X, 500-BallRadius) {
		t.Errorf("positions a=%+v b=%+v, want split along x", a.Position, b.Position)
	}
	if !approxEqual(a.Velocity.X, 0) || !approxEqual(b.Velocity.X, 1) {
		t.Errorf("velocities a=%+v b=%+v, want exchanged", a.Velocity, b.Velocity)
	}
}

func TestResolvePairPreservesMomentumAndEnergy(t *testing.T) {
	a := movingBall(0, 300, 250, 4, 1.5)
	b := movingBall(1, 318, 266, -1, -2)
	sim := newTestSimulation(a, b)

	p0 := a.Velocity.Plus(b.Velocity)
	e0 := a.Velocity.Dot(a.Velocity) + b.Velocity.Dot(b.Velocity)

	sim.ResolvePair(a, b)

	p1 := a.Velocity.Plus(b.Velocity)
	e1 := a.Velocity.Dot(a.Velocity) + b.Velocity.Dot(b.Velocity)

	if !approxEqual(p0.X, p1.X) || !approxEqual(p0.Y, p1.Y) {
		t.Errorf("momentum %+v -> %+v", p0, p1)
	}
	if !approxEqual(e0, e1) {
		t.Errorf("energy %.9f -> %.9f", e0, e1)
	}
}

func TestResolvePairKeepsTangentialComponents(t *testing.T) {
	// Contact normal along x: the y components are tangential.
	a := movingBall(0, 300, 250, 3, 2)
	b := movingBall(1, 325, 250, -1, -4)
	sim := newTestSimulation(a, b)

	sim.ResolvePair(a, b)

	if !approxEqual(a.Velocity.X, -1) || !approxEqual(a.Velocity.Y, 2) {
		t.Errorf("a velocity = %+v, want (-1,2)", a.Velocity)
	}
	if !approxEqual(b.Velocity.X, 3) || !approxEqual(b.Velocity.Y, -4) {
		t.Errorf("b velocity = %+v, want (3,-4)", b.Velocity)
	}
}

func TestResolvePairSeparatedBallsUntouched(t *testing.T) {
	a := movingBall(0, 300, 250, 3, 0)
	b := movingBall(1, 330, 250, -3, 0)
	sim := newTestSimulation(a, b)

	sim.ResolvePair(a, b)

	if a.Velocity != NewVec2(3, 0) || b.Velocity != NewVec2(-3, 0) {
		t.Errorf("touching-but-not-overlapping balls changed: a=%+v b=%+v", a.Velocity, b.Velocity)
	}
	if sim.DrainEvents() != nil {
		t.Error("no event expected without overlap")
	}
}

func TestInactiveBallNeverInteracts(t *testing.T) {
	active := movingBall(0, 300, 250, 4, 0)
	stale := movingBall(1, 310, 250, 0, 0)
	stale.capture()
	sim := newTestSimulation(active, stale)

	sim.ResolvePair(active, stale)
	sim.ResolvePair(stale, active)
	sim.ResolveAllCollisions()

	if active.Position != NewVec2(300, 250) || active.Velocity != NewVec2(4, 0) {
		t.Errorf("active ball altered by captured ball: %+v", active)
	}
	if stale.Position != NewVec2(310, 250) || !stale.Velocity.IsZero() {
		t.Errorf("captured ball altered: %+v", stale)
	}
}

func TestResolveAllCollisionsIsOrderDependent(t *testing.T) {
	// Ball 0 overlaps both 1 and 2; pairs resolve sequentially so ball 0
	// hands its velocity to ball 1 first and has nothing left for ball 2.
	a := movingBall(0, 300, 250, 6, 0)
	b := movingBall(1, 325, 250, 0, 0)
	c := movingBall(2, 275, 250, 0, 0)
	sim := newTestSimulation(a, b, c)

	sim.ResolveAllCollisions()

	if !approxEqual(b.Velocity.X, 6) {
		t.Errorf("ball 1 vx = %.6f, want 6", b.Velocity.X)
	}
	if !approxEqual(c.Velocity.X, 0) || !approxEqual(a.Velocity.X, 0) {
		t.Errorf("ball 0 vx = %.6f, ball 2 vx = %.6f, want both ~0", a.Velocity.X, c.Velocity.X)
	}

	events := sim.DrainEvents()
	if len(events) != 2 {
		t.Fatalf("recorded %d ball events, want 2", len(events))
	}
	if events[0].BallID != 0 || events[0].TargetID != 1 || !approxEqual(events[0].Speed, 6) {
		t.Errorf("first event = %+v", events[0])
	}
}
