package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/playmatatu/billiards/internal/config"
	"github.com/playmatatu/billiards/internal/game"
	uuid "github.com/satori/go.uuid"
)

// FrameSink receives frames from running tables, typically the websocket hub.
type FrameSink interface {
	PublishFrame(f Frame)
}

// CloseListener is implemented by sinks that want to hear about closed tables.
type CloseListener interface {
	TableClosed(tableID string)
}

// ShotRecorder receives the summary of every settled shot.
type ShotRecorder interface {
	RecordShot(ctx context.Context, shot ShotSummary) error
}

// Manager owns every open table and its frame loop.
type Manager struct {
	cfg       *config.Config
	sink      FrameSink
	recorders []ShotRecorder

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a manager. sink may be nil when nobody renders frames.
func NewManager(cfg *config.Config, sink FrameSink, recorders ...ShotRecorder) *Manager {
	return &Manager{
		cfg:       cfg,
		sink:      sink,
		recorders: recorders,
		sessions:  make(map[string]*Session),
	}
}

// Create opens a new racked table and starts its frame loop. Zero width or
// height falls back to the configured table size.
func (m *Manager) Create(width, height float64) (*Session, error) {
	if width <= 0 {
		width = m.cfg.TableWidth
	}
	if height <= 0 {
		height = m.cfg.TableHeight
	}

	m.mu.Lock()
	if m.cfg.MaxSessions > 0 && len(m.sessions) >= m.cfg.MaxSessions {
		m.mu.Unlock()
		return nil, ErrTooManySessions
	}
	sim := game.NewStandardSimulation(width, height, m.cfg.PhysicsParams())
	s := newSession(uuid.NewV4().String(), sim)
	m.sessions[s.ID] = s
	m.mu.Unlock()

	go m.run(s)

	log.Printf("[SESSION] Table %s opened (%.0fx%.0f)", s.ID, width, height)
	return s, nil
}

// Get returns an open table.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Count returns the number of open tables.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// Close stops a table's frame loop and forgets it.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	close(s.stop)
	<-s.done
	for _, shot := range s.flush() {
		m.recordShot(shot)
	}
	if l, ok := m.sink.(CloseListener); ok {
		l.TableClosed(id)
	}
	log.Printf("[SESSION] Table %s closed after %d shots", id, s.ShotCount())
	return nil
}

// Shutdown closes every table.
func (m *Manager) Shutdown() {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	for _, id := range ids {
		m.Close(id)
	}
}

// run steps a table at the configured frame rate until it is closed.
func (m *Manager) run(s *Session) {
	defer close(s.done)

	ticker := time.NewTicker(m.cfg.FrameInterval())
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			frame, changed, settled := s.Step()
			if changed && m.sink != nil {
				m.sink.PublishFrame(frame)
			}
			for _, shot := range settled {
				m.recordShot(shot)
			}
		}
	}
}

func (m *Manager) recordShot(shot ShotSummary) {
	if len(m.recorders) == 0 {
		return
	}
	log.Printf("[SESSION] Table %s shot #%d settled after %d frames (pocketed=%v)",
		shot.SessionID, shot.ShotNumber, shot.Frames, shot.Pocketed)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, r := range m.recorders {
			if err := r.RecordShot(ctx, shot); err != nil {
				log.Printf("[SESSION] Failed to record shot #%d for table %s: %v", shot.ShotNumber, shot.SessionID, err)
			}
		}
	}()
}

// StartIdleReaper closes tables that have seen no input for the configured
// idle timeout. It returns when ctx is cancelled.
func (m *Manager) StartIdleReaper(ctx context.Context, interval time.Duration) {
	timeout := m.cfg.SessionIdleTimeout()
	if timeout <= 0 {
		log.Println("[SESSION] Idle timeout disabled; reaper not started")
		return
	}

	log.Println("[SESSION] Idle reaper started")
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("[SESSION] Idle reaper stopping")
				return
			case <-ticker.C:
				for _, id := range m.idleSessions(time.Now().Add(-timeout)) {
					log.Printf("[SESSION] Table %s idle for over %s, closing", id, timeout)
					m.Close(id)
				}
			}
		}
	}()
}

func (m *Manager) idleSessions(cutoff time.Time) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for id, s := range m.sessions {
		if s.LastActivity().Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids
}
