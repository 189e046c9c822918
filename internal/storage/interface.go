package storage

import (
	"context"

	"github.com/burrowlabs/bunnyhit-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Leaderboard operations
	GetLeaderboardEntry(ctx context.Context, fid model.FID) (*model.LeaderboardEntry, error)
	UpsertLeaderboardEntry(ctx context.Context, entry *model.LeaderboardEntry) error
	TopLeaderboardEntries(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error)

	// Reward ledger operations
	GetRewardBalance(ctx context.Context, fid model.FID) (*model.RewardBalance, error)
	SaveRewardBalance(ctx context.Context, balance *model.RewardBalance) error

	// Webhook ingestion operations
	RecordWebhookEvent(ctx context.Context, event *model.WebhookEvent) error
	WebhookEvents(ctx context.Context, limit int) ([]*model.WebhookEvent, error)
}
