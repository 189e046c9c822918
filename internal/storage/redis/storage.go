package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/burrowlabs/bunnyhit-go/internal/model"
	"github.com/burrowlabs/bunnyhit-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Entries are stored as JSON values with a sorted-set index on best score
// for ranked reads.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Leaderboard operations

func (s *Storage) GetLeaderboardEntry(ctx context.Context, fid model.FID) (*model.LeaderboardEntry, error) {
	data, err := s.client.Get(ctx, leaderboardKey(fid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrEntryNotFound
		}
		return nil, err
	}

	var entry model.LeaderboardEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Storage) UpsertLeaderboardEntry(ctx context.Context, entry *model.LeaderboardEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	// Pipeline keeps the value and the score index in step
	pipe := s.client.Pipeline()
	pipe.Set(ctx, leaderboardKey(entry.FID), data, 0)
	pipe.ZAdd(ctx, scoreIndexKey(), redis.Z{
		Score:  float64(entry.BestScore),
		Member: strconv.FormatInt(int64(entry.FID), 10),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) TopLeaderboardEntries(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	if limit <= 0 {
		return []*model.LeaderboardEntry{}, nil
	}

	fids, err := s.client.ZRevRange(ctx, scoreIndexKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*model.LeaderboardEntry, 0, len(fids))
	for _, raw := range fids {
		fid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt score index member %q: %w", raw, err)
		}

		entry, err := s.GetLeaderboardEntry(ctx, model.FID(fid))
		if errors.Is(err, model.ErrEntryNotFound) {
			// Index member without a value; skip rather than fail the read
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Reward ledger operations

func (s *Storage) GetRewardBalance(ctx context.Context, fid model.FID) (*model.RewardBalance, error) {
	data, err := s.client.Get(ctx, rewardsKey(fid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRewardsNotFound
		}
		return nil, err
	}

	var balance model.RewardBalance
	if err := json.Unmarshal(data, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

func (s *Storage) SaveRewardBalance(ctx context.Context, balance *model.RewardBalance) error {
	data, err := json.Marshal(balance)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, rewardsKey(balance.FID), data, 0).Err()
}

// Webhook ingestion operations

func (s *Storage) RecordWebhookEvent(ctx context.Context, event *model.WebhookEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.LPush(ctx, webhookEventsKey(), data)
	if s.cfg.WebhookEventCap > 0 {
		pipe.LTrim(ctx, webhookEventsKey(), 0, int64(s.cfg.WebhookEventCap-1))
	}
	if s.cfg.WebhookEventTTL > 0 {
		pipe.Expire(ctx, webhookEventsKey(), s.cfg.WebhookEventTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) WebhookEvents(ctx context.Context, limit int) ([]*model.WebhookEvent, error) {
	if limit <= 0 {
		return []*model.WebhookEvent{}, nil
	}

	items, err := s.client.LRange(ctx, webhookEventsKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	events := make([]*model.WebhookEvent, 0, len(items))
	for _, item := range items {
		var event model.WebhookEvent
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	return events, nil
}
