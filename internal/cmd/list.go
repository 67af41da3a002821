package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/app-inspector/internal/model"
	"github.com/ytget/app-inspector/internal/screen"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed apps sorted by name",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	rt.serveMetrics(ctx)

	list := rt.listController(ctx)
	defer list.Dispose()

	states := list.Watch(ctx)
	list.Dispatch(screen.ListLoad{})

	state, err := waitFor(ctx, states, func(s screen.ListState) bool { return s.Status.IsFinished() })
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if state.Status == model.StatusFailed {
		printError(cmd.ErrOrStderr(), rt.catalog, state.Err)
		return fmt.Errorf("list apps: %w", state.Err)
	}
	printApps(out, rt.catalog, state.Apps)
	return nil
}
