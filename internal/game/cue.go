package game

import "math"

// Cue holds the player's shot intent: whether they are aiming, the aim
// angle, and the power accumulated while the button is held.
type Cue struct {
	Aiming bool    `json:"aiming"`
	Angle  float64 `json:"angle"`
	Power  float64 `json:"power"`
}

// BeginAim starts accumulating power.
func (c *Cue) BeginAim() {
	c.Aiming = true
}

// AimAt points the cue from the cue ball toward target. Ignored unless aiming.
func (c *Cue) AimAt(cueBall, target Vec2) {
	if !c.Aiming {
		return
	}
	c.Angle = target.Minus(cueBall).Angle()
}

// Charge adds one frame of power while aiming, capped at max.
func (c *Cue) Charge(step, max float64) {
	if !c.Aiming {
		return
	}
	c.Power = math.Min(max, c.Power+step)
}

// Release ends the aim and returns the shot to launch. Power resets to zero.
func (c *Cue) Release() (angle, power float64) {
	angle, power = c.Angle, c.Power
	c.Aiming = false
	c.Power = 0
	return angle, power
}

// AimLine returns the end point of the guide line drawn from the cue ball.
func (c *Cue) AimLine(cueBall Vec2) Vec2 {
	return cueBall.Plus(FromAngle(c.Angle, AimLineBase+c.Power*AimLineScale))
}
