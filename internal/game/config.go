package game

import "time"

// Config holds the timing and grid parameters for a game session
type Config struct {
	// HolesCount is the number of holes in the grid
	HolesCount int

	// GameDuration is the length of a round in whole seconds
	GameDuration int

	// TickInterval is the countdown clock period
	TickInterval time.Duration

	// SpawnInterval is the target relocation period
	SpawnInterval time.Duration

	// CountdownInterval is the pre-game countdown cadence
	CountdownInterval time.Duration

	// CountdownFrom is the first number shown in the pre-game countdown
	CountdownFrom int
}

// DefaultConfig returns the standard game parameters
func DefaultConfig() Config {
	return Config{
		HolesCount:        9,
		GameDuration:      30,
		TickInterval:      time.Second,
		SpawnInterval:     700 * time.Millisecond,
		CountdownInterval: time.Second,
		CountdownFrom:     3,
	}
}
