package game

import "math"

type Result uint8

const (
	ResultOut Result = iota
	ResultSingle
	ResultDouble
	ResultTriple
	ResultHomeRun
	ResultFoul
)

var resultNames = [...]string{"out", "single", "double", "triple", "home_run", "foul"}

func (r Result) String() string {
	if int(r) < len(resultNames) {
		return resultNames[r]
	}
	return "unknown"
}

func (r Result) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// zoneBand covers |angle| in [From, To). Bands are contiguous from the
// centre line out to the foul line; the outermost one also owns the line.
type zoneBand struct {
	From, To float64
	Result   Result
}

var zoneBands = []zoneBand{
	{0, 3, ResultHomeRun},
	{3, 10, ResultTriple},
	{10, 19, ResultDouble},
	{19, 30, ResultSingle},
	{30, FairHalfAngle, ResultOut},
}

// ClassifyAngle maps an angle in degrees from straight-away to a fair-arc
// result. Angles outside the fair arc are outs.
func ClassifyAngle(angle float64) Result {
	a := math.Abs(angle)
	if a > FairHalfAngle || math.IsNaN(a) {
		return ResultOut
	}
	for _, b := range zoneBands {
		if a < b.To {
			return b.Result
		}
	}
	return ResultOut // exactly on the foul line
}

// Classify resolves a terminal batted-ball position.
func Classify(x, y float64) Result {
	angle, dist := Vec2{x, y}.Polar(Vec2{HomeX, HomeY})
	if dist < MinFenceReach {
		return ResultOut
	}
	return ClassifyAngle(angle)
}

// InFairArc reports whether angle lies within the fair arc.
func InFairArc(angle float64) bool {
	return math.Abs(angle) <= FairHalfAngle
}
