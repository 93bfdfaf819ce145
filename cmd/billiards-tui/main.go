// Command billiards-tui runs one table in the terminal. Hold the left mouse
// button to aim and build power, release to shoot.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/playmatatu/billiards/internal/config"
	"github.com/playmatatu/billiards/internal/game"
)

type app struct {
	screen tcell.Screen
	view   view
	sim    *game.Simulation
	cue    game.Cue
	sounds *sounds

	frameInterval time.Duration
	pressed       bool
	shots         int
	message       string
}

func newApp(cfg *config.Config) (*app, error) {
	snd, err := newSounds(cfg.MaxPower)
	if err != nil {
		// Non-fatal, the table runs silent
		log.Printf("Audio initialization failed: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		snd.close()
		return nil, err
	}
	if err := screen.Init(); err != nil {
		snd.close()
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	sim := game.NewStandardSimulation(cfg.TableWidth, cfg.TableHeight, cfg.PhysicsParams())
	a := &app{
		screen:        screen,
		sim:           sim,
		sounds:        snd,
		frameInterval: cfg.FrameInterval(),
	}
	a.resize()

	return a, nil
}

func (a *app) resize() {
	cols, rows := a.screen.Size()
	a.view = view{cols: cols, rows: rows, table: a.sim.Table}
}

// handleInput applies one terminal event. It returns false to quit.
func (a *app) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			a.sim.Rerack()
			a.cue = game.Cue{}
			a.pressed = false
			a.message = "re-racked"
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		target := a.view.toTable(x, y)
		down := ev.Buttons()&tcell.Button1 != 0

		switch {
		case down && !a.pressed:
			a.pressed = true
			a.cue.BeginAim()
			a.cue.AimAt(a.sim.CueBall().Position, target)
		case down:
			a.cue.AimAt(a.sim.CueBall().Position, target)
		case a.pressed:
			a.pressed = false
			a.shoot()
		}

	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()
	}

	return true
}

func (a *app) shoot() {
	angle, power := a.cue.Release()
	if err := a.sim.Launch(angle, power); err != nil {
		a.message = fmt.Sprintf("%v, press r to re-rack", err)
		return
	}
	a.shots++
	a.message = fmt.Sprintf("shot %d at power %.1f", a.shots, power)
}

// tick advances one frame: physics, cue charge, then event sounds.
func (a *app) tick() {
	a.sim.Step()
	a.cue.Charge(a.sim.Params.PowerStep, a.sim.Params.MaxPower)
	events := a.sim.DrainEvents()
	a.sounds.play(events)
}

func (a *app) draw() {
	a.screen.Clear()
	w, h := a.view.inner()

	for y := 0; y <= h+1; y++ {
		for x := 0; x <= w+1; x++ {
			style := feltStyle
			if x == 0 || y == 0 || x == w+1 || y == h+1 {
				style = railStyle
			}
			a.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	for _, p := range a.sim.Table.Pockets {
		x, y := a.view.pocketCell(p)
		a.screen.SetContent(x, y, ' ', nil, pocketStyle)
	}

	cueBall := a.sim.CueBall()
	if a.cue.Aiming && cueBall.InPlay {
		a.drawAimLine(cueBall.Position, a.cue.AimLine(cueBall.Position))
	}

	for _, b := range a.sim.Balls {
		if !b.InPlay {
			continue
		}
		x, y := a.view.toCell(b.Position)
		a.screen.SetContent(x, y, '●', nil, ballStyle(b.Color))
	}

	status := fmt.Sprintf(" power %4.1f/%.0f  balls %2d  shots %d  [mouse] aim+shoot  [r] re-rack  [q] quit  %s",
		a.cue.Power, a.sim.Params.MaxPower, a.sim.BallsInPlay(), a.shots, a.message)
	for i, r := range status {
		if i >= a.view.cols {
			break
		}
		a.screen.SetContent(i, h+2, r, nil, statusStyle)
	}

	a.screen.Show()
}

func (a *app) drawAimLine(from, to game.Vec2) {
	const dots = 12
	for i := 1; i <= dots; i++ {
		p := from.Plus(to.Minus(from).Times(float64(i) / dots))
		if !a.sim.Table.Contains(p, 0) {
			break
		}
		x, y := a.view.toCell(p)
		a.screen.SetContent(x, y, '·', nil, aimStyle)
	}
}

func (a *app) run() {
	ticker := time.NewTicker(a.frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}
		case <-ticker.C:
			a.tick()
			a.draw()
		}
	}
}

func (a *app) cleanup() {
	a.sounds.close()
	a.screen.Fini()
}

func main() {
	cfg := config.Load()

	a, err := newApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.cleanup()

	a.run()
}
