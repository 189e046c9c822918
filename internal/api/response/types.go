package response

import (
	"time"

	"github.com/burrowlabs/bunnyhit-go/internal/model"
)

// LeaderboardEntry represents a leaderboard row in API responses
type LeaderboardEntry struct {
	FID         int64     `json:"fid"`
	Username    string    `json:"username,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	BestScore   int       `json:"best_score"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LeaderboardEntryFromModel converts a model.LeaderboardEntry
func LeaderboardEntryFromModel(e *model.LeaderboardEntry) LeaderboardEntry {
	return LeaderboardEntry{
		FID:         int64(e.FID),
		Username:    e.Username,
		DisplayName: e.DisplayName,
		BestScore:   e.BestScore,
		UpdatedAt:   e.UpdatedAt,
	}
}

// Leaderboard is the response for the standings endpoint
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromModel converts a slice of model entries
func LeaderboardFromModel(entries []*model.LeaderboardEntry) Leaderboard {
	result := Leaderboard{
		Entries: make([]LeaderboardEntry, len(entries)),
	}
	for i, e := range entries {
		result.Entries[i] = LeaderboardEntryFromModel(e)
	}
	return result
}

// SubmitScore is the response after a score submission: the stored entry
// after the upsert-if-higher decision was applied
type SubmitScore struct {
	Entry    LeaderboardEntry `json:"entry"`
	NewBest  bool             `json:"new_best"`
	Accepted bool             `json:"accepted"`
}

// RewardBalance represents a reward ledger row in API responses
type RewardBalance struct {
	FID             int64     `json:"fid"`
	UnclaimedPoints int       `json:"unclaimed_points"`
	TotalEarned     int       `json:"total_earned"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RewardBalanceFromModel converts a model.RewardBalance
func RewardBalanceFromModel(b *model.RewardBalance) RewardBalance {
	return RewardBalance{
		FID:             int64(b.FID),
		UnclaimedPoints: b.UnclaimedPoints,
		TotalEarned:     b.TotalEarned,
		UpdatedAt:       b.UpdatedAt,
	}
}

// ClaimRewards is the response for the claim (mint placeholder) endpoint
type ClaimRewards struct {
	ClaimedPoints int `json:"claimed_points"`
}

// WebhookAck is the unconditional acknowledgment for accepted webhooks
type WebhookAck struct {
	Success bool   `json:"success"`
	EventID string `json:"event_id,omitempty"`
}
