package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/burrowlabs/bunnyhit-go/internal/model"
	"github.com/burrowlabs/bunnyhit-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	entries       map[model.FID]*model.LeaderboardEntry
	rewards       map[model.FID]*model.RewardBalance
	webhookEvents []*model.WebhookEvent
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		entries: make(map[model.FID]*model.LeaderboardEntry),
		rewards: make(map[model.FID]*model.RewardBalance),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Leaderboard operations

func (s *Storage) GetLeaderboardEntry(ctx context.Context, fid model.FID) (*model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[fid]
	if !ok {
		return nil, model.ErrEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (s *Storage) UpsertLeaderboardEntry(ctx context.Context, entry *model.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *entry
	s.entries[entry.FID] = &copied
	return nil
}

func (s *Storage) TopLeaderboardEntries(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*model.LeaderboardEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		copied := *entry
		entries = append(entries, &copied)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].BestScore != entries[j].BestScore {
			return entries[i].BestScore > entries[j].BestScore
		}
		return entries[i].FID < entries[j].FID
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Reward ledger operations

func (s *Storage) GetRewardBalance(ctx context.Context, fid model.FID) (*model.RewardBalance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	balance, ok := s.rewards[fid]
	if !ok {
		return nil, model.ErrRewardsNotFound
	}
	copied := *balance
	return &copied, nil
}

func (s *Storage) SaveRewardBalance(ctx context.Context, balance *model.RewardBalance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *balance
	s.rewards[balance.FID] = &copied
	return nil
}

// Webhook ingestion operations

func (s *Storage) RecordWebhookEvent(ctx context.Context, event *model.WebhookEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *event
	// Most recent first, matching the Redis event log
	s.webhookEvents = append([]*model.WebhookEvent{&copied}, s.webhookEvents...)
	return nil
}

func (s *Storage) WebhookEvents(ctx context.Context, limit int) ([]*model.WebhookEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.webhookEvents)
	if limit > 0 && limit < n {
		n = limit
	}

	events := make([]*model.WebhookEvent, 0, n)
	for _, event := range s.webhookEvents[:n] {
		copied := *event
		events = append(events, &copied)
	}
	return events, nil
}
