package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRewardsCmd() *cobra.Command {
	var fid int64

	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "Show a player's reward balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RewardBalance

			if err := client.Get(fmt.Sprintf("/api/v1/rewards/%d", fid), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.PersistentFlags().Int64Var(&fid, "fid", 0, "Player id")
	_ = cmd.MarkPersistentFlagRequired("fid")

	claimCmd := &cobra.Command{
		Use:   "claim",
		Short: "Claim unclaimed reward points (placeholder mint)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ClaimResult

			if err := client.Post(fmt.Sprintf("/api/v1/rewards/%d/claim", fid), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
	cmd.AddCommand(claimCmd)

	return cmd
}
