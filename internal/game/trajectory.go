package game

import "math"

// StepPitch advances p by one tick according to its motion.
func StepPitch(p *PitchSpec) {
	switch m := p.Motion.(type) {
	case DecelerateMotion:
		vy := p.Vel.Y
		if p.Progress >= m.Threshold {
			vy *= m.Fraction
		}
		p.advanceY(vy)
		p.Pos.X = p.lineX()

	case AccelerateMotion:
		vy := p.Vel.Y * (1 + (m.Multiple-1)*p.Progress*p.Progress)
		p.advanceY(vy)
		p.Pos.X = p.lineX()

	case OscillateMotion:
		p.advanceY(p.Vel.Y)
		p.Pos.X = p.lineX() + m.Amplitude*math.Sin(2*math.Pi*m.Frequency*p.Progress)

	case BreakMotion:
		p.advanceY(p.Vel.Y)
		shape := breakShape(m.Profile, p.Vel.X)
		sign := breakSign(p.Vel.X)
		// Central line is shifted so the break lands the pitch on Target.
		center := p.Target.X - sign*m.Distance*shape(1)
		p.Pos.X = p.Start.X + (center-p.Start.X)*p.Progress + sign*m.Distance*shape(p.Progress)

	case VanishMotion:
		p.Pos = p.Pos.Add(p.Vel)
		p.updateProgress()
		p.Visible = p.Progress < m.From || p.Progress > m.To

	case StopMotion:
		if p.StopTimer > 0 {
			p.StopTimer--
			if p.StopTimer == 0 {
				p.StopDone = true
			}
			return
		}
		p.Pos = p.Pos.Add(p.Vel)
		p.updateProgress()
		if !p.StopDone && p.Progress >= m.From {
			p.StopTimer = m.Ticks
		}

	default: // LinearMotion
		p.Pos = p.Pos.Add(p.Vel)
		p.updateProgress()
	}
}

// Crossed reports whether the pitch has reached the judgement plane.
func (p *PitchSpec) Crossed() bool {
	return p.Pos.Y >= JudgeY
}

func (p *PitchSpec) advanceY(vy float64) {
	p.Pos.Y += vy
	p.updateProgress()
}

func (p *PitchSpec) updateProgress() {
	prog := (p.Pos.Y - p.Start.Y) / (p.Target.Y - p.Start.Y)
	prog = math.Max(0, math.Min(1, prog))
	if prog > p.Progress {
		p.Progress = prog
	}
}

// lineX is the straight-line horizontal position at the current progress.
func (p *PitchSpec) lineX() float64 {
	return p.Start.X + (p.Target.X-p.Start.X)*p.Progress
}

func breakShape(profile BreakProfile, vx float64) func(float64) float64 {
	if profile == BreakAuto {
		profile = BreakModerate
		if math.Abs(vx) >= StrongBreakVX {
			profile = BreakStrong
		}
	}
	switch profile {
	case BreakSharp:
		return func(p float64) float64 { return p * p * p }
	case BreakStrong:
		return func(p float64) float64 { return p * p }
	default:
		return func(p float64) float64 { return math.Sin(p * math.Pi) }
	}
}
