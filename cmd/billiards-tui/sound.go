package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/playmatatu/billiards/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// tone describes the click played for an event type.
type tone struct {
	freq     float64
	duration time.Duration
}

var tones = map[game.EventType]tone{
	game.EventBall:    {freq: 880, duration: 40 * time.Millisecond},
	game.EventCushion: {freq: 330, duration: 60 * time.Millisecond},
	game.EventPocket:  {freq: 196, duration: 180 * time.Millisecond},
}

// sounds plays short sine clicks for collision events. It is a no-op when
// the speaker could not be opened.
type sounds struct {
	enabled  bool
	maxSpeed float64
}

func newSounds(maxSpeed float64) (*sounds, error) {
	s := &sounds{maxSpeed: maxSpeed}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return s, err
	}
	s.enabled = true
	return s, nil
}

// play sounds at most one click per event type, at the loudest speed seen.
func (s *sounds) play(events []game.CollisionEvent) {
	if !s.enabled || len(events) == 0 {
		return
	}

	loudest := make(map[game.EventType]float64, len(tones))
	for _, ev := range events {
		if ev.Speed >= loudest[ev.Type] {
			loudest[ev.Type] = ev.Speed
		}
	}

	for typ, speed := range loudest {
		t, ok := tones[typ]
		if !ok {
			continue
		}
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			continue
		}
		click := beep.Take(sampleRate.N(t.duration), sine)
		speaker.Play(&effects.Volume{Streamer: click, Base: 2, Volume: s.volume(typ, speed)})
	}
}

// volume is a log2 gain between -4 (quiet tap) and 0 (full power).
func (s *sounds) volume(typ game.EventType, speed float64) float64 {
	if typ == game.EventPocket || s.maxSpeed <= 0 {
		return 0
	}
	level := math.Max(speed/s.maxSpeed, 1.0/16)
	return math.Max(-4, math.Min(0, math.Log2(level)))
}

func (s *sounds) close() {
	if s.enabled {
		speaker.Close()
	}
}
