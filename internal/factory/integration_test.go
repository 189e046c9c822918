package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/burrowlabs/bunnyhit-go/internal/game"
	"github.com/burrowlabs/bunnyhit-go/internal/model"
	"github.com/burrowlabs/bunnyhit-go/internal/services/identity"
	"github.com/burrowlabs/bunnyhit-go/internal/storage/localfile"
	"github.com/burrowlabs/bunnyhit-go/internal/storage/memory"
	"github.com/burrowlabs/bunnyhit-go/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// newEngine builds an engine wired to the app's leaderboard service.
// Countdown and spawns run fast; the round clock is parked so only Stop
// ends the round. The mock random's empty queue pins every spawn to hole 0.
func (s *IntegrationSuite) newEngine(id model.Identity) *game.Engine {
	cfg := game.DefaultConfig()
	cfg.CountdownInterval = time.Millisecond
	cfg.SpawnInterval = time.Millisecond
	cfg.TickInterval = time.Hour

	eng := game.NewEngine(
		cfg,
		identity.NewStaticProvider(id),
		s.app.LeaderboardService,
		s.app.MockClock,
		s.app.MockRandom,
		testutil.NopLogger(),
	)
	s.T().Cleanup(eng.Close)
	return eng
}

// playRound runs a full round, whacking hole 0 until hits land
func (s *IntegrationSuite) playRound(eng *game.Engine, hits int) {
	_, err := eng.Start(s.ctx)
	s.Require().NoError(err)

	s.Require().Eventually(func() bool {
		return eng.Snapshot().State == model.SessionStatePlaying
	}, time.Second, time.Millisecond)

	landed := 0
	s.Require().Eventually(func() bool {
		if eng.Hit(0) {
			landed++
		}
		return landed >= hits
	}, 5*time.Second, 100*time.Microsecond)

	_, err = eng.Stop()
	s.Require().NoError(err)
	s.Require().Equal(hits, eng.Snapshot().Score)
}

// Test: a full round flows from the engine into the leaderboard and ledger
func (s *IntegrationSuite) TestRoundFlowsIntoLeaderboard() {
	eng := s.newEngine(model.Identity{FID: 42, Username: "alice", DisplayName: "Alice"})

	s.playRound(eng, 5)

	// The engine submits asynchronously after round end
	s.Require().Eventually(func() bool {
		entry, err := s.app.LeaderboardService.Best(s.ctx, 42)
		return err == nil && entry.BestScore == 5
	}, time.Second, time.Millisecond)

	balance, err := s.app.LeaderboardService.Rewards(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal(50, balance.UnclaimedPoints)
}

// Test: a second, lower-scoring round keeps the best but still accrues
func (s *IntegrationSuite) TestSecondRoundKeepsBest() {
	eng := s.newEngine(model.Identity{FID: 42, Username: "alice"})

	s.playRound(eng, 5)
	s.Require().Eventually(func() bool {
		_, err := s.app.LeaderboardService.Best(s.ctx, 42)
		return err == nil
	}, time.Second, time.Millisecond)

	s.playRound(eng, 2)
	s.Require().Eventually(func() bool {
		balance, err := s.app.LeaderboardService.Rewards(s.ctx, 42)
		return err == nil && balance.TotalEarned == 70
	}, time.Second, time.Millisecond)

	entry, err := s.app.LeaderboardService.Best(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal(5, entry.BestScore)
}

// Factory configuration tests

func TestNewDefaultsToMemory(t *testing.T) {
	app, err := New(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := app.Storage.(*memory.Storage); !ok {
		t.Fatalf("expected memory storage, got %T", app.Storage)
	}
}

func TestNewLocalFileStorage(t *testing.T) {
	app, err := New(Config{
		StorageType: StorageTypeLocalFile,
		LocalDir:    t.TempDir(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := app.Storage.(*localfile.Storage); !ok {
		t.Fatalf("expected localfile storage, got %T", app.Storage)
	}
}

func TestNewLocalFileRequiresDir(t *testing.T) {
	if _, err := New(Config{StorageType: StorageTypeLocalFile}); err == nil {
		t.Fatal("expected error for missing LocalDir")
	}
}

func TestNewRedisRequiresConfig(t *testing.T) {
	if _, err := New(Config{StorageType: StorageTypeRedis}); err == nil {
		t.Fatal("expected error for missing RedisConfig")
	}
}

func TestNewRejectsUnknownStorageType(t *testing.T) {
	if _, err := New(Config{StorageType: "carrier-pigeon"}); err == nil {
		t.Fatal("expected error for unknown storage type")
	}
}
