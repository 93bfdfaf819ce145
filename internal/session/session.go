package session

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/playmatatu/billiards/internal/game"
)

var (
	ErrSessionNotFound = errors.New("table session not found")
	ErrTooManySessions = errors.New("too many open tables")
	ErrInvalidPower    = errors.New("invalid power")
	ErrInvalidAngle    = errors.New("invalid angle")
	ErrInvalidTarget   = errors.New("invalid aim target")
)

// Frame is what renderers receive after every simulation step.
type Frame struct {
	SessionID string                `json:"session_id"`
	Frame     uint64                `json:"frame"`
	Balls     []game.BallState      `json:"balls"`
	Cue       game.Cue              `json:"cue"`
	AimLine   *game.Vec2            `json:"aim_line,omitempty"`
	Events    []game.CollisionEvent `json:"events,omitempty"`
	AtRest    bool                  `json:"at_rest"`
}

// ShotSummary describes one shot from launch until every ball is at rest.
type ShotSummary struct {
	SessionID   string    `json:"session_id"`
	ShotNumber  int       `json:"shot_number"`
	Angle       float64   `json:"angle"`
	Power       float64   `json:"power"`
	Frames      int       `json:"frames"`
	Pocketed    []int     `json:"pocketed"`
	BallHits    int       `json:"ball_hits"`
	CushionHits int       `json:"cushion_hits"`
	StartedAt   time.Time `json:"started_at"`
	SettledAt   time.Time `json:"settled_at"`
}

type shotIntent struct {
	angle, power float64
}

// Session is one table: a simulation, the cue intent feeding it, and the
// shot currently rolling. Input is applied at the start of the next step.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu           sync.Mutex
	sim          *game.Simulation
	cue          game.Cue
	pending      *shotIntent
	shot         *ShotSummary
	cutOff       []ShotSummary
	shotCount    int
	lastActivity time.Time
	dirty        bool
	atRest       bool

	stop chan struct{}
	done chan struct{}
}

func newSession(id string, sim *game.Simulation) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		CreatedAt:    now,
		sim:          sim,
		lastActivity: now,
		dirty:        true,
		atRest:       true,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Table returns the table geometry, which never changes after creation.
func (s *Session) Table() *game.Table {
	return s.sim.Table
}

// Params returns the physics parameters of the table.
func (s *Session) Params() game.Params {
	return s.sim.Params
}

// BeginAim starts charging the cue.
func (s *Session) BeginAim() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cue.BeginAim()
	s.touch()
}

// AimAt points the cue at a table-space target.
func (s *Session) AimAt(x, y float64) error {
	target := game.NewVec2(x, y)
	if !target.IsFinite() {
		return ErrInvalidTarget
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cue := s.sim.CueBall(); cue != nil {
		s.cue.AimAt(cue.Position, target)
	}
	s.touch()
	return nil
}

// Release fires the charged cue on the next step.
func (s *Session) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	angle, power := s.cue.Release()
	s.touch()
	if cue := s.sim.CueBall(); cue == nil || !cue.InPlay {
		return game.ErrCueBallCaptured
	}
	s.pending = &shotIntent{angle: angle, power: power}
	return nil
}

// Shoot queues a shot with an explicit angle (radians) and power.
func (s *Session) Shoot(angle, power float64) error {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return ErrInvalidAngle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if math.IsNaN(power) || power < 0 || power > s.sim.Params.MaxPower {
		return ErrInvalidPower
	}
	if cue := s.sim.CueBall(); cue == nil || !cue.InPlay {
		return game.ErrCueBallCaptured
	}
	s.pending = &shotIntent{angle: angle, power: power}
	s.touch()
	return nil
}

// Rerack resets the table to the standard rack.
func (s *Session) Rerack() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A shot still rolling ends here; the next step hands it over.
	if s.shot != nil {
		s.cutOff = append(s.cutOff, s.closeShotLocked())
	}
	s.sim.Rerack()
	s.pending = nil
	s.cue = game.Cue{}
	s.touch()
}

// Snapshot returns the current frame without stepping.
func (s *Session) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.frameLocked(nil)
}

// ShotCount returns how many shots have been launched on this table.
func (s *Session) ShotCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.shotCount
}

// LastActivity returns the time of the latest player input.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastActivity
}

// Step runs one frame. It returns the frame, whether anything visible
// changed since the previous frame, and the shots that settled during this
// step.
func (s *Session) Step() (Frame, bool, []ShotSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settled := s.cutOff
	s.cutOff = nil
	if s.pending != nil {
		intent := s.pending
		s.pending = nil
		if err := s.sim.Launch(intent.angle, intent.power); err == nil {
			// A new shot cuts off one still rolling.
			if s.shot != nil {
				settled = append(settled, s.closeShotLocked())
			}
			s.shotCount++
			s.shot = &ShotSummary{
				SessionID:  s.ID,
				ShotNumber: s.shotCount,
				Angle:      intent.angle,
				Power:      intent.power,
				Pocketed:   []int{},
				StartedAt:  time.Now(),
			}
		}
	}

	s.sim.Step()
	s.cue.Charge(s.sim.Params.PowerStep, s.sim.Params.MaxPower)

	events := s.sim.DrainEvents()
	atRest := s.sim.AllStopped()

	if s.shot != nil {
		s.shot.Frames++
		for _, e := range events {
			switch e.Type {
			case game.EventBall:
				s.shot.BallHits++
			case game.EventCushion:
				s.shot.CushionHits++
			case game.EventPocket:
				s.shot.Pocketed = append(s.shot.Pocketed, e.BallID)
			}
		}
		if atRest {
			settled = append(settled, s.closeShotLocked())
		}
	}

	changed := s.dirty || !atRest || !s.atRest || s.cue.Aiming || len(events) > 0
	s.dirty = false
	s.atRest = atRest

	return s.frameLocked(events), changed, settled
}

// flush closes any shot that has not been handed over yet. The manager calls
// it once the frame loop has stopped.
func (s *Session) flush() []ShotSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	settled := s.cutOff
	s.cutOff = nil
	if s.shot != nil {
		settled = append(settled, s.closeShotLocked())
	}
	return settled
}

func (s *Session) closeShotLocked() ShotSummary {
	shot := *s.shot
	shot.SettledAt = time.Now()
	s.shot = nil
	return shot
}

func (s *Session) frameLocked(events []game.CollisionEvent) Frame {
	f := Frame{
		SessionID: s.ID,
		Frame:     s.sim.Frame,
		Balls:     s.sim.Snapshot(),
		Cue:       s.cue,
		Events:    events,
		AtRest:    s.sim.AllStopped(),
	}
	if cue := s.sim.CueBall(); s.cue.Aiming && cue != nil && cue.InPlay {
		end := s.cue.AimLine(cue.Position)
		f.AimLine = &end
	}
	return f
}

func (s *Session) touch() {
	s.lastActivity = time.Now()
	s.dirty = true
}
