package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/app-inspector/internal/catalog"
	"github.com/ytget/app-inspector/internal/model"
	"github.com/ytget/app-inspector/internal/screen"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the details of an app and remember it as the current selection",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Show the details of the app selected last time",
	Args:  cobra.NoArgs,
	RunE:  runResume,
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(resumeCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	return showDetails(cmd, args[0])
}

func runResume(cmd *cobra.Command, args []string) error {
	return showDetails(cmd, "")
}

// showDetails loads id, or resumes the persisted selection when id is empty
func showDetails(cmd *cobra.Command, id string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	rt.serveMetrics(ctx)

	detail := rt.detailController(ctx, id == "")
	defer detail.Dispose()

	states := detail.Watch(ctx)
	if id != "" {
		detail.Dispatch(screen.DetailLoad{ID: id})
	} else if detail.State().Status == model.StatusIdle {
		fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render(rt.catalog.Text(catalog.KeySelectApp)))
		return nil
	}

	state, err := waitDetail(ctx, states, detail.State().ID)
	if err != nil {
		return err
	}
	if state.Status == model.StatusFailed {
		printError(cmd.ErrOrStderr(), rt.catalog, state.Err)
		return fmt.Errorf("show %s: %w", state.ID, state.Err)
	}
	printDetails(cmd.OutOrStdout(), rt.catalog, state.Details)
	return nil
}

// waitDetail waits for the outcome of loading id
func waitDetail(ctx context.Context, states <-chan screen.DetailState, id string) (screen.DetailState, error) {
	return waitFor(ctx, states, func(s screen.DetailState) bool {
		return s.ID == id && s.Status.IsFinished()
	})
}
