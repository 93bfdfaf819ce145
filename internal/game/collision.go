package game

import "math"

// ResolveAllCollisions resolves every unordered pair (i < j) once, in
// sequence order. A ball touching several others picks up each correction
// in turn; there is no iteration to a simultaneous solution.
func (s *Simulation) ResolveAllCollisions() {
	for i := 0; i < len(s.Balls); i++ {
		for j := i + 1; j < len(s.Balls); j++ {
			s.ResolvePair(s.Balls[i], s.Balls[j])
		}
	}
}

// ResolvePair applies an equal-mass elastic collision between two
// overlapping balls and separates them so they just touch.
//
// Velocities are rotated into the frame of the contact normal, the normal
// components are exchanged, and the result is rotated back. Coincident
// centres fall back to a normal along +x.
func (s *Simulation) ResolvePair(a, b *Ball) {
	if !a.InPlay || !b.InPlay {
		return
	}

	d := a.Position.Minus(b.Position)
	distance := d.Magnitude()
	contact := 2 * s.Params.BallRadius
	if distance >= contact {
		return
	}

	angle := math.Atan2(d.Y, d.X)

	va := a.Velocity.Rotate(-angle)
	vb := b.Velocity.Rotate(-angle)

	// Resting contacts still get separated but are not reported.
	if impact := math.Abs(va.X - vb.X); impact > 0 {
		s.record(EventBall, a.ID, b.ID, impact)
	}

	a.Velocity = NewVec2(vb.X, va.Y).Rotate(angle)
	b.Velocity = NewVec2(va.X, vb.Y).Rotate(angle)

	push := FromAngle(angle, (contact-distance)/2)
	a.Position = a.Position.Plus(push)
	b.Position = b.Position.Minus(push)
}
