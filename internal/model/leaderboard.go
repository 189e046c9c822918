package model

import "time"

// LeaderboardEntry is one row of the leaderboard, one per player.
// BestScore is monotonically non-decreasing across submissions: a
// submission with a lower-or-equal score never overwrites it.
type LeaderboardEntry struct {
	FID         FID       `json:"fid"`
	Username    string    `json:"username,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	BestScore   int       `json:"best_score"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RewardBalance is a player's off-chain point ledger.
// Points accrue at a fixed multiple of each round's final score and sit
// unclaimed until a (placeholder) mint action claims them.
type RewardBalance struct {
	FID             FID       `json:"fid"`
	UnclaimedPoints int       `json:"unclaimed_points"`
	TotalEarned     int       `json:"total_earned"`
	UpdatedAt       time.Time `json:"updated_at"`
}
