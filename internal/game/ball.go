package game

import "math"

type BattedBall struct {
	ID       uint64 `json:"id"`
	Pos      Vec2   `json:"pos"`
	Vel      Vec2   `json:"-"`
	Origin   Vec2   `json:"-"`
	Resolved bool   `json:"-"`
}

// Flight is the outcome of one ball step.
type Flight uint8

const (
	FlightAirborne Flight = iota
	FlightFoul
	FlightLanded
)

// NewBattedBall launches a ball from home plate. angle is in degrees from
// straight-away, negative toward left field.
func NewBattedBall(id uint64, angle, speed float64) *BattedBall {
	rad := angle * math.Pi / 180
	home := Vec2{HomeX, HomeY}
	return &BattedBall{
		ID:     id,
		Pos:    home,
		Origin: home,
		Vel: Vec2{
			X: speed * math.Sin(rad),
			Y: -speed * math.Cos(rad),
		},
	}
}

// StepBattedBall moves b at constant velocity and reports whether it went
// foul or reached a terminal position this tick.
func StepBattedBall(b *BattedBall) Flight {
	b.Pos = b.Pos.Add(b.Vel)

	angle, dist := b.Pos.Polar(b.Origin)
	if dist > FoulDistance && dist < FenceRadius && !InFairArc(angle) {
		return FlightFoul
	}
	if dist >= FenceRadius || outOfField(b.Pos) {
		return FlightLanded
	}
	return FlightAirborne
}

func outOfField(p Vec2) bool {
	return p.X < 0 || p.X > FieldWidth || p.Y < 0 || p.Y > FieldHeight
}

func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
