package game

// Design values for the billiards table. Params carries the live copy so a
// host can override them from configuration.
const (
	BallRadius    = 15.0
	PocketRadius  = 35.0
	Friction      = 0.98
	StopThreshold = 0.1
	MaxPower      = 20.0
	PowerStep     = 0.2

	TableWidth  = 1000.0
	TableHeight = 500.0

	NumPockets    = 6
	NumRackRows   = 5
	NumBalls      = 16 // 0=cue, 1-15=object balls
	CueBallStartX = 200.0
	RackOffsetX   = 150.0 // apex distance from the right cushion

	AimLineBase  = 50.0
	AimLineScale = 5.0
)

// Params holds the physics configuration owned by a Simulation.
type Params struct {
	BallRadius    float64 `json:"ball_radius"`
	PocketRadius  float64 `json:"pocket_radius"`
	Friction      float64 `json:"friction"`
	StopThreshold float64 `json:"stop_threshold"`
	MaxPower      float64 `json:"max_power"`
	PowerStep     float64 `json:"power_step"`
}

// DefaultParams returns the design values.
func DefaultParams() Params {
	return Params{
		BallRadius:    BallRadius,
		PocketRadius:  PocketRadius,
		Friction:      Friction,
		StopThreshold: StopThreshold,
		MaxPower:      MaxPower,
		PowerStep:     PowerStep,
	}
}

// RackColors is the colour cycle for object balls in rack order.
var RackColors = []string{
	"red",
	"blue",
	"yellow",
	"green",
	"orange",
	"purple",
	"pink",
	"brown",
	"cyan",
	"lime",
}

const CueBallColor = "white"
