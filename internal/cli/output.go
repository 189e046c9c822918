package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Leaderboard:
		o.printLeaderboard(v)
	case LeaderboardEntry:
		o.printEntry(0, v)
	case SubmitResult:
		o.printSubmitResult(v)
	case RewardBalance:
		o.printRewardBalance(v)
	case ClaimResult:
		o.printClaimResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// LeaderboardEntry response type (matches API)
type LeaderboardEntry struct {
	FID         int64     `json:"fid"`
	Username    string    `json:"username,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	BestScore   int       `json:"best_score"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// SubmitResult response type
type SubmitResult struct {
	Entry    LeaderboardEntry `json:"entry"`
	NewBest  bool             `json:"new_best"`
	Accepted bool             `json:"accepted"`
}

// RewardBalance response type
type RewardBalance struct {
	FID             int64 `json:"fid"`
	UnclaimedPoints int   `json:"unclaimed_points"`
	TotalEarned     int   `json:"total_earned"`
}

// ClaimResult response type
type ClaimResult struct {
	ClaimedPoints int `json:"claimed_points"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Entries) == 0 {
		fmt.Println("Leaderboard is empty")
		return
	}

	fmt.Printf("Top %d:\n", len(l.Entries))
	for i, e := range l.Entries {
		o.printEntry(i+1, e)
	}
}

func (o *Output) printEntry(rank int, e LeaderboardEntry) {
	name := e.DisplayName
	if name == "" {
		name = e.Username
	}
	if name == "" {
		name = fmt.Sprintf("fid:%d", e.FID)
	}
	if rank > 0 {
		fmt.Printf("  %2d. %s - %d\n", rank, name, e.BestScore)
	} else {
		fmt.Printf("%s - %d\n", name, e.BestScore)
	}
}

func (o *Output) printSubmitResult(r SubmitResult) {
	if !r.Accepted {
		fmt.Println("Score not submitted (zero score)")
		return
	}
	if r.NewBest {
		fmt.Printf("New best score: %d!\n", r.Entry.BestScore)
	} else {
		fmt.Printf("Score submitted. Stored best remains %d\n", r.Entry.BestScore)
	}
}

func (o *Output) printRewardBalance(b RewardBalance) {
	fmt.Printf("Unclaimed points: %d\n", b.UnclaimedPoints)
	fmt.Printf("Total earned: %d\n", b.TotalEarned)
}

func (o *Output) printClaimResult(c ClaimResult) {
	fmt.Printf("Claimed %d points\n", c.ClaimedPoints)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
