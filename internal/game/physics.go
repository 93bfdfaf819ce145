package game

import (
	"errors"
	"math"
)

// ErrCueBallCaptured is returned when a shot is launched after the cue ball
// has dropped into a pocket.
var ErrCueBallCaptured = errors.New("cue ball is not on the table")

// Ball represents a single ball's physics state.
type Ball struct {
	ID       int    `json:"id"`
	Position Vec2   `json:"position"`
	Velocity Vec2   `json:"velocity"`
	Color    string `json:"color"`
	InPlay   bool   `json:"in_play"`
}

// NewBall creates a stationary ball in play.
func NewBall(id int, pos Vec2, color string) *Ball {
	return &Ball{ID: id, Position: pos, Color: color, InPlay: true}
}

// Speed returns the magnitude of the ball's velocity.
func (b *Ball) Speed() float64 {
	return b.Velocity.Magnitude()
}

// capture moves the ball into its terminal state.
func (b *Ball) capture() {
	b.InPlay = false
	b.Velocity = Vec2{}
}

// EventType classifies a CollisionEvent.
type EventType string

const (
	EventBall    EventType = "ball"
	EventCushion EventType = "cushion"
	EventPocket  EventType = "pocket"
)

// Cushion identifiers used as TargetID of cushion events.
const (
	CushionLeft = iota
	CushionRight
	CushionTop
	CushionBottom
)

// CollisionEvent records a contact for sound playback and shot summaries.
type CollisionEvent struct {
	Type     EventType `json:"type"`
	BallID   int       `json:"ball_id"`
	TargetID int       `json:"target_id"` // ball ID, cushion, or pocket ID
	Speed    float64   `json:"speed"`     // impact speed before resolution
	Frame    uint64    `json:"frame"`
}

// Simulation owns the table, physics parameters and the ball collection.
// It is not safe for concurrent use; hosts serialise access per step.
type Simulation struct {
	Params Params
	Table  *Table
	Balls  []*Ball
	Frame  uint64
	events []CollisionEvent
}

// NewSimulation creates a simulation over an existing ball collection.
// Balls[0] is treated as the cue ball.
func NewSimulation(table *Table, params Params, balls []*Ball) *Simulation {
	return &Simulation{
		Params: params,
		Table:  table,
		Balls:  balls,
		events: make([]CollisionEvent, 0, NumBalls),
	}
}

// NewStandardSimulation creates a racked simulation on a width x height table.
func NewStandardSimulation(width, height float64, params Params) *Simulation {
	table := NewTable(width, height, params.PocketRadius)
	return NewSimulation(table, params, StandardRack(table, params.BallRadius))
}

// CueBall returns the ball at index 0, or nil for an empty simulation.
func (s *Simulation) CueBall() *Ball {
	if len(s.Balls) == 0 {
		return nil
	}
	return s.Balls[0]
}

// Step runs one frame: advance every ball, then resolve every pair.
func (s *Simulation) Step() {
	s.AdvanceAll()
	s.ResolveAllCollisions()
	s.Frame++
}

// AdvanceAll advances every ball in sequence order.
func (s *Simulation) AdvanceAll() {
	for _, b := range s.Balls {
		s.Advance(b)
	}
}

// Advance moves a ball one unit step, applies drag, reflects it off the
// cushions and checks the pockets. Captured balls are left untouched.
func (s *Simulation) Advance(b *Ball) {
	if !b.InPlay {
		return
	}

	b.Position = b.Position.Plus(b.Velocity)
	b.Velocity = b.Velocity.Times(s.Params.Friction)

	if math.Abs(b.Velocity.X) < s.Params.StopThreshold {
		b.Velocity.X = 0
	}
	if math.Abs(b.Velocity.Y) < s.Params.StopThreshold {
		b.Velocity.Y = 0
	}

	r := s.Params.BallRadius

	if b.Position.X-r < 0 || b.Position.X+r > s.Table.Width {
		cushion := CushionRight
		if b.Position.X-r < 0 {
			cushion = CushionLeft
		}
		s.record(EventCushion, b.ID, cushion, math.Abs(b.Velocity.X))
		b.Velocity.X = -b.Velocity.X
		b.Position.X = clamp(b.Position.X, r, s.Table.Width-r)
	}
	if b.Position.Y-r < 0 || b.Position.Y+r > s.Table.Height {
		cushion := CushionBottom
		if b.Position.Y-r < 0 {
			cushion = CushionTop
		}
		s.record(EventCushion, b.ID, cushion, math.Abs(b.Velocity.Y))
		b.Velocity.Y = -b.Velocity.Y
		b.Position.Y = clamp(b.Position.Y, r, s.Table.Height-r)
	}

	if pocket, ok := s.Table.PocketAt(b.Position); ok {
		s.record(EventPocket, b.ID, pocket.ID, b.Speed())
		b.capture()
	}
}

// Launch sets the cue ball moving along angle (radians) at the given power.
func (s *Simulation) Launch(angle, power float64) error {
	cue := s.CueBall()
	if cue == nil || !cue.InPlay {
		return ErrCueBallCaptured
	}
	cue.Velocity = FromAngle(angle, power)
	return nil
}

// AllStopped returns true if every ball in play is at rest.
func (s *Simulation) AllStopped() bool {
	for _, b := range s.Balls {
		if b.InPlay && !b.Velocity.IsZero() {
			return false
		}
	}
	return true
}

// Rerack replaces the ball collection with a fresh standard rack.
func (s *Simulation) Rerack() {
	s.Balls = StandardRack(s.Table, s.Params.BallRadius)
	s.events = s.events[:0]
}

// BallsInPlay counts balls that have not been captured.
func (s *Simulation) BallsInPlay() int {
	n := 0
	for _, b := range s.Balls {
		if b.InPlay {
			n++
		}
	}
	return n
}

// DrainEvents returns the events recorded since the last call and clears them.
func (s *Simulation) DrainEvents() []CollisionEvent {
	if len(s.events) == 0 {
		return nil
	}
	out := make([]CollisionEvent, len(s.events))
	copy(out, s.events)
	s.events = s.events[:0]
	return out
}

func (s *Simulation) record(t EventType, ballID, targetID int, speed float64) {
	s.events = append(s.events, CollisionEvent{
		Type:     t,
		BallID:   ballID,
		TargetID: targetID,
		Speed:    speed,
		Frame:    s.Frame,
	})
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
