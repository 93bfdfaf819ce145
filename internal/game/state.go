package game

// BallState is the read-only view of a ball handed to renderers.
type BallState struct {
	ID     int     `json:"id" msgpack:"id"`
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Color  string  `json:"color" msgpack:"color"`
	InPlay bool    `json:"in_play" msgpack:"in_play"`
}

// Snapshot returns the current position and status of every ball.
func (s *Simulation) Snapshot() []BallState {
	out := make([]BallState, len(s.Balls))
	for i, b := range s.Balls {
		out[i] = BallState{
			ID:     b.ID,
			X:      b.Position.X,
			Y:      b.Position.Y,
			Color:  b.Color,
			InPlay: b.InPlay,
		}
	}
	return out
}
