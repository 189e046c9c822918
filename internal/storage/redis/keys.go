package redis

import (
	"fmt"

	"github.com/burrowlabs/bunnyhit-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "bunnyhit"

// Key generation functions for each entity type

// leaderboardKey returns the Redis key for a LeaderboardEntry
func leaderboardKey(fid model.FID) string {
	return fmt.Sprintf("%s:leaderboard:%d", keyPrefix, fid)
}

// scoreIndexKey returns the Redis key for the best-score sorted set
func scoreIndexKey() string {
	return fmt.Sprintf("%s:idx:best_score", keyPrefix)
}

// rewardsKey returns the Redis key for a RewardBalance
func rewardsKey(fid model.FID) string {
	return fmt.Sprintf("%s:rewards:%d", keyPrefix, fid)
}

// webhookEventsKey returns the Redis key for the webhook event log
func webhookEventsKey() string {
	return fmt.Sprintf("%s:webhook:events", keyPrefix)
}
