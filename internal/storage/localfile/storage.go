package localfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/burrowlabs/bunnyhit-go/internal/model"
	"github.com/burrowlabs/bunnyhit-go/internal/storage"
)

const (
	leaderboardFile = "leaderboard.json"
	rewardsFile     = "rewards.json"
	webhookFile     = "webhook_events.json"
)

// localEntry is the on-disk leaderboard row: a {name, score} pair with
// optional identity fields. Entries are deduplicated by name,
// case-insensitively, and kept sorted by score descending.
type localEntry struct {
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	FID       model.FID `json:"fid,omitempty"`
	Username  string    `json:"username,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Storage persists the leaderboard as JSON files in a local directory.
// It is the file-backed equivalent of the browser local-storage variant:
// the leaderboard is keyed by display name rather than player id.
type Storage struct {
	dir string
	mu  sync.Mutex
}

// New creates a local-file storage rooted at dir, creating it if needed
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Leaderboard operations

func (s *Storage) GetLeaderboardEntry(ctx context.Context, fid model.FID) (*model.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readLeaderboard()
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.FID == fid {
			return toModelEntry(e), nil
		}
	}
	return nil, model.ErrEntryNotFound
}

func (s *Storage) UpsertLeaderboardEntry(ctx context.Context, entry *model.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readLeaderboard()
	if err != nil {
		return err
	}

	name := entryName(entry)
	replaced := false
	for i, e := range entries {
		if strings.EqualFold(e.Name, name) {
			entries[i] = fromModelEntry(entry)
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, fromModelEntry(entry))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	return s.writeJSON(leaderboardFile, entries)
}

func (s *Storage) TopLeaderboardEntries(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readLeaderboard()
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	result := make([]*model.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, toModelEntry(e))
	}
	return result, nil
}

// Reward ledger operations

func (s *Storage) GetRewardBalance(ctx context.Context, fid model.FID) (*model.RewardBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balances, err := s.readRewards()
	if err != nil {
		return nil, err
	}

	balance, ok := balances[fid]
	if !ok {
		return nil, model.ErrRewardsNotFound
	}
	copied := balance
	return &copied, nil
}

func (s *Storage) SaveRewardBalance(ctx context.Context, balance *model.RewardBalance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	balances, err := s.readRewards()
	if err != nil {
		return err
	}

	balances[balance.FID] = *balance
	return s.writeJSON(rewardsFile, balances)
}

// Webhook ingestion operations

func (s *Storage) RecordWebhookEvent(ctx context.Context, event *model.WebhookEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.readWebhookEvents()
	if err != nil {
		return err
	}

	// Most recent first
	events = append([]*model.WebhookEvent{event}, events...)
	return s.writeJSON(webhookFile, events)
}

func (s *Storage) WebhookEvents(ctx context.Context, limit int) ([]*model.WebhookEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.readWebhookEvents()
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// File helpers

func (s *Storage) readLeaderboard() ([]localEntry, error) {
	var entries []localEntry
	if err := s.readJSON(leaderboardFile, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Storage) readRewards() (map[model.FID]model.RewardBalance, error) {
	balances := make(map[model.FID]model.RewardBalance)
	if err := s.readJSON(rewardsFile, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

func (s *Storage) readWebhookEvents() ([]*model.WebhookEvent, error) {
	var events []*model.WebhookEvent
	if err := s.readJSON(webhookFile, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Storage) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (s *Storage) writeJSON(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	// Write-then-rename so an interrupted write never leaves a truncated
	// file behind the real name
	tmp, err := os.CreateTemp(s.dir, name+".tmp-")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func entryName(entry *model.LeaderboardEntry) string {
	if entry.DisplayName != "" {
		return entry.DisplayName
	}
	if entry.Username != "" {
		return entry.Username
	}
	return fmt.Sprintf("player-%d", entry.FID)
}

func toModelEntry(e localEntry) *model.LeaderboardEntry {
	return &model.LeaderboardEntry{
		FID:         e.FID,
		Username:    e.Username,
		DisplayName: e.Name,
		BestScore:   e.Score,
		UpdatedAt:   e.UpdatedAt,
	}
}

func fromModelEntry(entry *model.LeaderboardEntry) localEntry {
	return localEntry{
		Name:      entryName(entry),
		Score:     entry.BestScore,
		FID:       entry.FID,
		Username:  entry.Username,
		UpdatedAt: entry.UpdatedAt,
	}
}
