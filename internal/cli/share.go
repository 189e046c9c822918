package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/burrowlabs/bunnyhit-go/internal/services/share"
)

func newShareCmd() *cobra.Command {
	var (
		score   int
		hostURL string
	)

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Share a final score",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Host composer first when configured, stdout as last resort
			targets := []share.Target{}
			if hostURL != "" {
				targets = append(targets, share.NewHostTarget(hostURL, 0))
			}
			targets = append(targets, share.NewWriterTarget(os.Stdout))

			svc := share.New(cfg.Logger(), targets...)

			target, err := svc.Share(cmd.Context(), score)
			if err != nil {
				return err
			}

			if cfg.Verbose {
				NewOutput(cfg.Output).PrintMessage("shared via " + target)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&score, "score", 0, "Final score to share")
	cmd.Flags().StringVar(&hostURL, "host-url", "", "Mini-app host compose endpoint")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}
