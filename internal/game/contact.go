package game

import "math/rand"

// SwingResult is the Contact Judge's verdict on one swing.
type SwingResult struct {
	Hit    bool
	Timing float64 // 0 = earliest contact in the window, 1 = latest
	Angle  float64 // degrees from straight-away
	Speed  float64 // px per tick
}

// InHitZone reports whether a pitch at pos can be reached by the bat.
func InHitZone(pos Vec2) bool {
	if pos.Y < HitZoneTop || pos.Y > HitZoneBottom {
		return false
	}
	dx := pos.X - HomeX
	return dx >= -HitTolerance && dx <= HitTolerance
}

// SwingTiming maps the pitch's depth in the hit zone to [0,1].
func SwingTiming(pos Vec2) float64 {
	return clampF((pos.Y-HitZoneTop)/(HitZoneBottom-HitZoneTop), 0, 1)
}

// ContactAngle is the jitter-free launch angle for a timing value: early
// contact pulls the ball to left field, late contact pushes it right.
func ContactAngle(timing float64) float64 {
	return (timing - 0.5) * 2 * MaxContactAngle
}

// JudgeSwing decides hit or miss for a swing at p.
func JudgeSwing(p *PitchSpec, rng *rand.Rand) SwingResult {
	if !InHitZone(p.Pos) {
		return SwingResult{}
	}
	t := SwingTiming(p.Pos)
	jitter := (rng.Float64()*2 - 1) * ContactJitter
	return SwingResult{
		Hit:    true,
		Timing: t,
		Angle:  ContactAngle(t) + jitter,
		Speed:  MinHitSpeed + rng.Float64()*(MaxHitSpeed-MinHitSpeed),
	}
}
