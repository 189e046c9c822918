package cli

import (
	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var (
		fid         int64
		username    string
		displayName string
		score       int
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a round score",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"fid":          fid,
				"username":     username,
				"display_name": displayName,
				"score":        score,
			}

			var result SubmitResult
			if err := client.Post("/api/v1/scores", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&fid, "fid", 0, "Player id")
	cmd.Flags().StringVar(&username, "username", "", "Player handle")
	cmd.Flags().StringVar(&displayName, "name", "", "Player display name")
	cmd.Flags().IntVar(&score, "score", 0, "Final score")
	_ = cmd.MarkFlagRequired("fid")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}
