package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/burrowlabs/bunnyhit-go/internal/dependencies/clock"
	"github.com/burrowlabs/bunnyhit-go/internal/dependencies/random"
	"github.com/burrowlabs/bunnyhit-go/internal/game"
	"github.com/burrowlabs/bunnyhit-go/internal/model"
	"github.com/burrowlabs/bunnyhit-go/internal/services/identity"
)

// apiSubmitter submits finished rounds through the server API
type apiSubmitter struct {
	client *Client
}

// Ensure apiSubmitter implements the engine's submitter interface
var _ game.ScoreSubmitter = (*apiSubmitter)(nil)

func (s *apiSubmitter) SubmitScore(ctx context.Context, player model.Identity, score int) error {
	body := map[string]any{
		"fid":          int64(player.FID),
		"username":     player.Username,
		"display_name": player.DisplayName,
		"score":        score,
	}
	return s.client.Post("/api/v1/scores", body, nil)
}

func newPlayCmd() *cobra.Command {
	var (
		fid         int64
		username    string
		displayName string
		duration    int
		offline     bool
		hostURL     string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a round in the terminal",
		Long: `play runs one round of Bunny Hit in the terminal.

Type the number of the hole the bunny is in (1-9) and press enter to whack
it. The round ends when the timer runs out; the final score is submitted to
the server's leaderboard unless --offline is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var provider identity.Provider
			if hostURL != "" {
				hostCfg := identity.DefaultHostConfig()
				hostCfg.BaseURL = hostURL
				provider = identity.NewHostProvider(hostCfg, cfg.Logger())
			} else {
				if fid <= 0 {
					return fmt.Errorf("either --fid or --host-url is required")
				}
				provider = identity.NewStaticProvider(model.Identity{
					FID:         model.FID(fid),
					Username:    username,
					DisplayName: displayName,
				})
			}

			gameCfg := game.DefaultConfig()
			if duration > 0 {
				gameCfg.GameDuration = duration
			}

			var submitter game.ScoreSubmitter = &apiSubmitter{client: client}
			if offline {
				submitter = noopSubmitter{}
			}

			eng := game.NewEngine(gameCfg, provider, submitter, clock.New(), random.New(), cfg.Logger())
			defer eng.Close()

			return runRound(cmd.Context(), eng, gameCfg)
		},
	}

	cmd.Flags().Int64Var(&fid, "fid", 0, "Player id")
	cmd.Flags().StringVar(&username, "username", "", "Player handle")
	cmd.Flags().StringVar(&displayName, "name", "", "Player display name")
	cmd.Flags().IntVar(&duration, "duration", 0, "Round length in seconds (default 30)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Do not submit the score")
	cmd.Flags().StringVar(&hostURL, "host-url", "", "Resolve identity from a mini-app host instead of --fid")

	return cmd
}

// noopSubmitter drops the score, for offline play
type noopSubmitter struct{}

func (noopSubmitter) SubmitScore(ctx context.Context, player model.Identity, score int) error {
	return nil
}

// runRound drives one round: a render loop polling engine snapshots and a
// reader goroutine feeding hole numbers from stdin into Hit.
func runRound(ctx context.Context, eng *game.Engine, gameCfg game.Config) error {
	if _, err := eng.Start(ctx); err != nil {
		return err
	}

	// Reader goroutine: each line is a 1-based hole number
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
			if err != nil {
				continue
			}
			if eng.Hit(n - 1) {
				fmt.Println("BONK! 🐰")
			}
		}
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	last := model.Session{ActiveCell: model.NoActiveCell}
	for {
		select {
		case <-ctx.Done():
			_, _ = eng.Stop()
			return ctx.Err()
		case <-ticker.C:
		}

		snap := eng.Snapshot()
		renderDelta(last, snap, gameCfg)
		last = snap

		if snap.State == model.SessionStateEnded {
			fmt.Printf("\nGame over! Final score: %d\n", snap.Score)
			return nil
		}
	}
}

// renderDelta prints only what changed since the previous snapshot
func renderDelta(prev, cur model.Session, gameCfg game.Config) {
	if cur.State == model.SessionStateCountdown && cur.Countdown != prev.Countdown {
		fmt.Printf("%d...\n", cur.Countdown)
		return
	}

	if cur.State != model.SessionStatePlaying {
		return
	}

	if prev.State != model.SessionStatePlaying {
		fmt.Println("GO! Type the hole number (1-9) and press enter.")
	}

	if cur.ActiveCell != prev.ActiveCell && cur.TargetShowing() {
		renderGrid(cur.ActiveCell, gameCfg.HolesCount)
	}

	if cur.TimeRemaining != prev.TimeRemaining {
		fmt.Printf("⏱ %ds | ⭐ %d\n", cur.TimeRemaining, cur.Score)
	}
}

// renderGrid draws the 3-wide hole grid with the bunny's position
func renderGrid(active, holes int) {
	var b strings.Builder
	for i := 0; i < holes; i++ {
		if i == active {
			b.WriteString("[🐰]")
		} else {
			b.WriteString("[ " + strconv.Itoa(i+1) + "]")
		}
		if (i+1)%3 == 0 {
			b.WriteByte('\n')
		}
	}
	fmt.Print(b.String())
}
