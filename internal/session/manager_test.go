package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/playmatatu/billiards/internal/config"
	"github.com/playmatatu/billiards/internal/game"
)

type recordingSink struct {
	mu     sync.Mutex
	frames []Frame
}

func (r *recordingSink) PublishFrame(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

type chanRecorder chan ShotSummary

func (c chanRecorder) RecordShot(ctx context.Context, shot ShotSummary) error {
	c <- shot
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		TableWidth:         game.TableWidth,
		TableHeight:        game.TableHeight,
		BallRadius:         game.BallRadius,
		PocketRadius:       game.PocketRadius,
		Friction:           game.Friction,
		StopThreshold:      game.StopThreshold,
		MaxPower:           game.MaxPower,
		PowerStep:          game.PowerStep,
		FrameRate:          1000,
		SessionIdleMinutes: 30,
		MaxSessions:        2,
	}
}

func TestManagerLifecycle(t *testing.T) {
	sink := &recordingSink{}
	m := NewManager(testConfig(), sink)
	defer m.Shutdown()

	s, err := m.Create(0, 0)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.Table().Width != game.TableWidth {
		t.Errorf("table width = %v, want configured default", s.Table().Width)
	}

	got, err := m.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("Get(%s) = %v, %v", s.ID, got, err)
	}

	if _, err := m.Create(800, 400); err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if _, err := m.Create(800, 400); err != ErrTooManySessions {
		t.Errorf("third Create = %v, want ErrTooManySessions", err)
	}

	if err := m.Close(s.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := m.Get(s.ID); err != ErrSessionNotFound {
		t.Errorf("Get after Close = %v, want ErrSessionNotFound", err)
	}
	if err := m.Close(s.ID); err != ErrSessionNotFound {
		t.Errorf("double Close = %v, want ErrSessionNotFound", err)
	}
	if m.Count() != 1 {
		t.Errorf("Count = %d, want 1", m.Count())
	}
}

func TestManagerRecordsSettledShots(t *testing.T) {
	sink := &recordingSink{}
	shots := make(chanRecorder, 1)
	m := NewManager(testConfig(), sink, shots)
	defer m.Shutdown()

	s, err := m.Create(0, 0)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Shoot(0, 8); err != nil {
		t.Fatalf("Shoot: %v", err)
	}

	select {
	case shot := <-shots:
		if shot.SessionID != s.ID || shot.ShotNumber != 1 {
			t.Errorf("recorded shot = %+v", shot)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("shot was never recorded")
	}

	if sink.count() == 0 {
		t.Error("frames were never published")
	}
}

func TestIdleSessions(t *testing.T) {
	m := NewManager(testConfig(), nil)
	defer m.Shutdown()

	s, _ := m.Create(0, 0)
	s.mu.Lock()
	s.lastActivity = time.Now().Add(-time.Hour)
	s.mu.Unlock()
	fresh, _ := m.Create(0, 0)

	idle := m.idleSessions(time.Now().Add(-30 * time.Minute))
	if len(idle) != 1 || idle[0] != s.ID {
		t.Errorf("idle = %v, want only %s (fresh %s)", idle, s.ID, fresh.ID)
	}
}

func TestCloseRecordsRollingShot(t *testing.T) {
	shots := make(chanRecorder, 2)
	m := NewManager(testConfig(), nil, shots)
	defer m.Shutdown()

	s, err := m.Create(0, 0)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Shoot(0, game.MaxPower); err != nil {
		t.Fatalf("Shoot: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.ShotCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if err := m.Close(s.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case shot := <-shots:
		if shot.ShotNumber != 1 {
			t.Errorf("recorded shot = %+v, want #1", shot)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("shot rolling at close was never recorded")
	}
}
