package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/burrowlabs/bunnyhit-go/internal/dependencies/clock"
	"github.com/burrowlabs/bunnyhit-go/internal/dependencies/random"
	"github.com/burrowlabs/bunnyhit-go/internal/model"
	"github.com/burrowlabs/bunnyhit-go/internal/services/identity"
)

// submitTimeout bounds the fire-and-forget score submission at round end
const submitTimeout = 10 * time.Second

// ScoreSubmitter persists a finished round's score. Implementations must
// treat the call as fallible and bounded; the engine never retries.
type ScoreSubmitter interface {
	SubmitScore(ctx context.Context, player model.Identity, score int) error
}

// Engine drives the session lifecycle idle -> countdown -> playing -> ended.
// It owns the session exclusively: all reads go through Snapshot, all
// mutation happens under the engine's lock, and the round-end submission
// works from an immutable copy of the session.
type Engine struct {
	cfg       Config
	provider  identity.Provider
	submitter ScoreSubmitter
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger

	mu      sync.Mutex
	session model.Session

	countdownTimer *IntervalTimer
	gameTimer      *IntervalTimer
	spawnTimer     *IntervalTimer
}

// NewEngine creates a session engine with stopped timers and an idle session
func NewEngine(
	cfg Config,
	provider identity.Provider,
	submitter ScoreSubmitter,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Engine {
	e := &Engine{
		cfg:       cfg,
		provider:  provider,
		submitter: submitter,
		clock:     clk,
		random:    rnd,
		logger:    logger,
		session: model.Session{
			State:         model.SessionStateIdle,
			TimeRemaining: cfg.GameDuration,
			ActiveCell:    model.NoActiveCell,
		},
	}

	e.countdownTimer = NewIntervalTimer(cfg.CountdownInterval, e.tickCountdown)
	e.gameTimer = NewIntervalTimer(cfg.TickInterval, e.tickClock)
	e.spawnTimer = NewIntervalTimer(cfg.SpawnInterval, e.spawn)

	return e
}

// Start requests a new round. It resolves the player identity first: with
// no identity the request is rejected and the session stays idle with no
// timers running. Otherwise the pre-game countdown begins.
func (e *Engine) Start(ctx context.Context) (model.Session, error) {
	e.mu.Lock()
	if inProgress(e.session.State) {
		s := e.session
		e.mu.Unlock()
		return s, model.ErrRoundInProgress
	}
	e.mu.Unlock()

	// Identity resolution may hit the host over the network; do it outside
	// the lock and re-check the state afterwards.
	player, err := e.provider.Identity(ctx)
	if err != nil {
		e.logger.Warn("round start blocked: no player identity",
			slog.String("error", err.Error()),
		)
		return e.Snapshot(), fmt.Errorf("resolve player identity: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if inProgress(e.session.State) {
		return e.session, model.ErrRoundInProgress
	}

	e.session = model.Session{
		RoundID:       model.RoundID(uuid.NewString()),
		State:         model.SessionStateCountdown,
		Player:        *player,
		Countdown:     e.cfg.CountdownFrom,
		TimeRemaining: e.cfg.GameDuration,
		ActiveCell:    model.NoActiveCell,
	}
	e.countdownTimer.Start()

	e.logger.Info("round countdown started",
		slog.String("round_id", string(e.session.RoundID)),
		slog.Int64("fid", int64(player.FID)),
	)

	return e.session, nil
}

// Hit registers a tap on the given hole. It reports whether the tap landed
// on the active target. Taps outside the playing state or outside the grid
// are ignored; a miss leaves the session untouched.
func (e *Engine) Hit(cell int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.State != model.SessionStatePlaying {
		return false
	}
	if cell < 0 || cell >= e.cfg.HolesCount {
		return false
	}
	if !e.session.TargetShowing() || cell != e.session.ActiveCell {
		return false
	}

	e.session.Score++
	// The target must be re-spawned before it can be hit again
	e.session.ActiveCell = model.NoActiveCell
	return true
}

// Stop ends the round early. A playing round goes through normal round-end
// processing (including submission); a countdown is aborted back to idle
// with nothing submitted.
func (e *Engine) Stop() (model.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.session.State {
	case model.SessionStatePlaying:
		e.endRoundLocked()
	case model.SessionStateCountdown:
		e.countdownTimer.Stop()
		e.session.State = model.SessionStateIdle
		e.logger.Info("countdown aborted",
			slog.String("round_id", string(e.session.RoundID)),
		)
	default:
		return e.session, model.ErrNoActiveRound
	}

	return e.session, nil
}

// Snapshot returns a copy of the current session
func (e *Engine) Snapshot() model.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Close stops all timers. The engine must not be reused after Close.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.countdownTimer.Stop()
	e.gameTimer.Stop()
	e.spawnTimer.Stop()
}

// tickCountdown advances the 3-2-1 pre-game countdown
func (e *Engine) tickCountdown() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.State != model.SessionStateCountdown {
		return
	}

	e.session.Countdown--
	if e.session.Countdown > 0 {
		return
	}

	e.beginPlayLocked()
}

// beginPlayLocked resets the scoreboard and starts the playing timers
func (e *Engine) beginPlayLocked() {
	e.countdownTimer.Stop()

	e.session.State = model.SessionStatePlaying
	e.session.Countdown = 0
	e.session.Score = 0
	e.session.TimeRemaining = e.cfg.GameDuration
	e.session.ActiveCell = model.NoActiveCell
	e.session.StartedAt = e.clock.Now()

	e.gameTimer.Start()
	e.spawnTimer.Start()

	e.logger.Info("round started",
		slog.String("round_id", string(e.session.RoundID)),
		slog.Int("duration_seconds", e.cfg.GameDuration),
	)
}

// tickClock decrements the remaining time, clamping at zero
func (e *Engine) tickClock() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.State != model.SessionStatePlaying {
		return
	}

	e.session.TimeRemaining--
	if e.session.TimeRemaining <= 0 {
		e.session.TimeRemaining = 0
		e.endRoundLocked()
	}
}

// spawn relocates the target to a random hole. The same hole may repeat.
func (e *Engine) spawn() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.State != model.SessionStatePlaying {
		return
	}

	e.session.ActiveCell = e.random.Intn(e.cfg.HolesCount)
}

// endRoundLocked finishes the round and kicks off score submission.
// The playing -> ended guard on every entry point means this runs exactly
// once per round.
func (e *Engine) endRoundLocked() {
	e.gameTimer.Stop()
	e.spawnTimer.Stop()

	e.session.State = model.SessionStateEnded
	e.session.ActiveCell = model.NoActiveCell
	e.session.EndedAt = e.clock.Now()

	// Copy the session before handing it to the async submission so a
	// following round cannot mutate what gets sent.
	snap := e.session

	if snap.Score <= 0 {
		e.logger.Info("round ended with no score, skipping submission",
			slog.String("round_id", string(snap.RoundID)),
		)
		return
	}

	e.logger.Info("round ended",
		slog.String("round_id", string(snap.RoundID)),
		slog.Int("score", snap.Score),
	)

	go e.submitScore(snap)
}

// submitScore is fire-and-forget: failures are logged and swallowed so the
// round-end flow never blocks on persistence.
func (e *Engine) submitScore(snap model.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()

	if err := e.submitter.SubmitScore(ctx, snap.Player, snap.Score); err != nil {
		e.logger.Error("score submission failed",
			slog.String("round_id", string(snap.RoundID)),
			slog.Int("score", snap.Score),
			slog.String("error", err.Error()),
		)
	}
}

func inProgress(s model.SessionState) bool {
	return s == model.SessionStateCountdown || s == model.SessionStatePlaying
}
