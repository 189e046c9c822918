package model

import "errors"

// Common errors used across the application
var (
	// Leaderboard errors
	ErrEntryNotFound = errors.New("leaderboard entry not found")

	// Reward errors
	ErrRewardsNotFound = errors.New("reward balance not found")
	ErrRewardsDisabled = errors.New("rewards are disabled")

	// Session errors
	ErrRoundInProgress = errors.New("a round is already in progress")
	ErrNoActiveRound   = errors.New("no round in progress")

	// Webhook errors
	ErrInvalidPayload   = errors.New("invalid webhook payload")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)
