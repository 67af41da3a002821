package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ytget/app-inspector/internal/screen"
)

var launchCmd = &cobra.Command{
	Use:   "launch [id]",
	Short: "Launch an app, or the app selected last time",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	rt.serveMetrics(ctx)

	detail := rt.detailController(ctx, len(args) == 0)
	defer detail.Dispose()

	notices := detail.Notifications(ctx)
	if len(args) == 1 {
		detail.Dispatch(screen.DetailLoad{ID: args[0]})
	}
	detail.Dispatch(screen.LaunchAction{})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n, ok := <-notices:
			if !ok {
				return errors.New("notification stream closed")
			}
			switch n.(type) {
			case screen.LaunchSucceeded:
				printNotice(cmd.OutOrStdout(), n)
				return nil
			case screen.LaunchFailed:
				printNotice(cmd.ErrOrStderr(), n)
				return errors.New(n.Text())
			case screen.LoadFailed:
				// details are not needed to launch
				rt.logger.Debug("details unavailable", "notice", n.Text())
			}
		}
	}
}
