package game

type EventKind uint8

const (
	EvPitchReleased EventKind = iota
	EvContact
	EvMiss
	EvStrike
	EvBall
	EvFoul
	EvHit
	EvOut
	EvStrikeout
	EvWalk
	EvRunScored
	EvWalkOff
	EvRoundWon
	EvRoundStart
	EvTierAdvanced
	EvVictory
	EvGameOver
)

var eventNames = [...]string{
	"pitch_released", "contact", "miss", "strike", "ball", "foul", "hit", "out",
	"strikeout", "walk", "run_scored", "walk_off", "round_won", "round_start",
	"tier_advanced", "victory", "game_over",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Event is a one-shot notification for the audio and UI collaborators.
type Event struct {
	Kind   EventKind `json:"kind"`
	Tick   uint64    `json:"tick"`
	ID     uint64    `json:"id,omitempty"` // pitch or ball the event belongs to
	Pitch  string    `json:"pitch,omitempty"`
	Result string    `json:"result,omitempty"`
	Runs   int       `json:"runs,omitempty"`
	Tier   string    `json:"tier,omitempty"`
	Round  int       `json:"round,omitempty"`
}

// banner is the transient message shown for an event, if any.
func (e Event) banner() string {
	switch e.Kind {
	case EvStrike:
		return "STRIKE!"
	case EvBall:
		return "BALL"
	case EvFoul:
		return "FOUL"
	case EvMiss:
		return "SWING AND A MISS"
	case EvStrikeout:
		return "STRIKEOUT!"
	case EvWalk:
		return "BALL FOUR - TAKE YOUR BASE"
	case EvOut:
		return "OUT!"
	case EvHit:
		switch e.Result {
		case ResultDouble.String():
			return "TWO-BASE HIT!"
		case ResultTriple.String():
			return "THREE-BASE HIT!"
		case ResultHomeRun.String():
			return "HOME RUN!"
		}
		return "HIT!"
	case EvWalkOff:
		return "WALK-OFF WIN!"
	case EvRoundStart:
		return "PLAY BALL!"
	case EvTierAdvanced:
		return "ON TO THE NEXT STAGE!"
	case EvVictory:
		return "CHAMPIONS!"
	case EvGameOver:
		return "GAME OVER"
	}
	return ""
}
