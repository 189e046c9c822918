package model

import "time"

// RoundID uniquely identifies one play session
type RoundID string

// SessionState represents the current phase of a play session
type SessionState string

const (
	SessionStateIdle      SessionState = "idle"      // Waiting for the player to start
	SessionStateCountdown SessionState = "countdown" // 3-2-1 pre-game countdown
	SessionStatePlaying   SessionState = "playing"   // Timers running, hits accepted
	SessionStateEnded     SessionState = "ended"     // Round over, score final
)

// NoActiveCell marks a session with no target currently showing
const NoActiveCell = -1

// Session is the live state of a single game round.
// ActiveCell is only set while State is playing; Score only changes while
// playing; TimeRemaining only decreases while playing.
type Session struct {
	RoundID RoundID
	State   SessionState
	Player  Identity

	// Countdown steps left before play begins (countdown state only)
	Countdown int

	TimeRemaining int // seconds, [0, GameDuration]
	Score         int
	ActiveCell    int // hole index, or NoActiveCell

	StartedAt time.Time // when play began (zero until playing)
	EndedAt   time.Time // when the round ended (zero until ended)
}

// TargetShowing reports whether a target is currently up
func (s *Session) TargetShowing() bool {
	return s.ActiveCell != NoActiveCell
}
