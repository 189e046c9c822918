package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/burrowlabs/bunnyhit-go/internal/dependencies/clock"
	"github.com/burrowlabs/bunnyhit-go/internal/model"
	"github.com/burrowlabs/bunnyhit-go/internal/storage"
)

// DefaultTopLimit is the number of standings returned when no limit is given
const DefaultTopLimit = 10

// Config holds leaderboard service settings
type Config struct {
	// RewardMultiplier converts a round's final score into reward points
	RewardMultiplier int

	// RewardsEnabled turns the reward ledger on
	RewardsEnabled bool
}

// DefaultConfig returns default leaderboard configuration
func DefaultConfig() Config {
	return Config{
		RewardMultiplier: 10,
		RewardsEnabled:   true,
	}
}

// Service synchronizes player best scores and reward balances.
// Writes are conditional: a stored best score is only ever overwritten by a
// strictly higher one.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// New creates a new leaderboard service
func New(storage storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.RewardMultiplier == 0 {
		cfg.RewardMultiplier = DefaultConfig().RewardMultiplier
	}
	return &Service{
		storage: storage,
		clock:   clk,
		cfg:     cfg,
		logger:  logger,
	}
}

// Top returns up to limit entries ordered by best score descending.
// An empty leaderboard is a valid, non-error result.
func (s *Service) Top(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	entries, err := s.storage.TopLeaderboardEntries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch standings: %w", err)
	}
	return entries, nil
}

// Best returns the stored entry for a player, or ErrEntryNotFound
func (s *Service) Best(ctx context.Context, fid model.FID) (*model.LeaderboardEntry, error) {
	return s.storage.GetLeaderboardEntry(ctx, fid)
}

// SubmitScore records a finished round, discarding the outcome details.
// It is the fire-and-forget form of SubmitRound used by the game engine.
func (s *Service) SubmitScore(ctx context.Context, player model.Identity, score int) error {
	_, _, err := s.SubmitRound(ctx, player, score)
	return err
}

// SubmitRound records a finished round and returns the stored entry after
// the write decision, plus whether the submission became the new best.
// Zero-score rounds never reach the store. The stored best is read before
// the write decision is made: a score at or below it leaves stored state
// untouched, so repeated submission of the same round is idempotent and a
// tie is not a new best. Reward points accrue for every positive-score
// round regardless of the best-score outcome.
func (s *Service) SubmitRound(ctx context.Context, player model.Identity, score int) (*model.LeaderboardEntry, bool, error) {
	if score <= 0 {
		s.logger.Debug("skipping zero-score submission",
			slog.Int64("fid", int64(player.FID)),
		)
		entry, err := s.storage.GetLeaderboardEntry(ctx, player.FID)
		if errors.Is(err, model.ErrEntryNotFound) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("read stored best score: %w", err)
		}
		return entry, false, nil
	}

	if s.cfg.RewardsEnabled {
		if err := s.accrueRewards(ctx, player.FID, score); err != nil {
			// Reward accrual failure must not block the leaderboard write
			s.logger.Error("reward accrual failed",
				slog.Int64("fid", int64(player.FID)),
				slog.String("error", err.Error()),
			)
		}
	}

	best := 0
	current, err := s.storage.GetLeaderboardEntry(ctx, player.FID)
	switch {
	case err == nil:
		best = current.BestScore
	case errors.Is(err, model.ErrEntryNotFound):
		// First submission for this player
	default:
		return nil, false, fmt.Errorf("read stored best score: %w", err)
	}

	if score <= best {
		s.logger.Info("score does not beat stored best, skipping write",
			slog.Int64("fid", int64(player.FID)),
			slog.Int("score", score),
			slog.Int("best_score", best),
		)
		return current, false, nil
	}

	entry := &model.LeaderboardEntry{
		FID:         player.FID,
		Username:    player.Username,
		DisplayName: player.DisplayName,
		BestScore:   score,
		UpdatedAt:   s.clock.Now(),
	}

	if err := s.storage.UpsertLeaderboardEntry(ctx, entry); err != nil {
		return nil, false, fmt.Errorf("write best score: %w", err)
	}

	s.logger.Info("best score updated",
		slog.Int64("fid", int64(player.FID)),
		slog.Int("best_score", score),
	)

	return entry, true, nil
}

// Rewards returns a player's reward balance, or ErrRewardsNotFound
func (s *Service) Rewards(ctx context.Context, fid model.FID) (*model.RewardBalance, error) {
	if !s.cfg.RewardsEnabled {
		return nil, model.ErrRewardsDisabled
	}
	return s.storage.GetRewardBalance(ctx, fid)
}

// ClaimRewards zeroes a player's unclaimed points and returns the claimed
// amount. This is the placeholder mint action: no settlement happens.
func (s *Service) ClaimRewards(ctx context.Context, fid model.FID) (int, error) {
	if !s.cfg.RewardsEnabled {
		return 0, model.ErrRewardsDisabled
	}

	balance, err := s.storage.GetRewardBalance(ctx, fid)
	if err != nil {
		return 0, err
	}

	claimed := balance.UnclaimedPoints
	if claimed == 0 {
		return 0, nil
	}

	balance.UnclaimedPoints = 0
	balance.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveRewardBalance(ctx, balance); err != nil {
		return 0, fmt.Errorf("save reward balance: %w", err)
	}

	s.logger.Info("rewards claimed",
		slog.Int64("fid", int64(fid)),
		slog.Int("points", claimed),
	)

	return claimed, nil
}

// accrueRewards adds score * multiplier to the player's ledger
func (s *Service) accrueRewards(ctx context.Context, fid model.FID, score int) error {
	points := score * s.cfg.RewardMultiplier

	balance, err := s.storage.GetRewardBalance(ctx, fid)
	if errors.Is(err, model.ErrRewardsNotFound) {
		balance = &model.RewardBalance{FID: fid}
	} else if err != nil {
		return err
	}

	balance.UnclaimedPoints += points
	balance.TotalEarned += points
	balance.UpdatedAt = s.clock.Now()

	return s.storage.SaveRewardBalance(ctx, balance)
}
