package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ning0612/drawfolders/internal/domain"
	"github.com/Ning0612/drawfolders/internal/logger"
	"github.com/Ning0612/drawfolders/internal/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <client>",
	Short: "Print the latest open target of a client whenever its folder changes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := resolveClient(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		w, err := watch.New(client.Path, watch.WithDebounce(watchDebounce), watch.WithLogger(logger.Get()))
		if err != nil {
			return err
		}
		defer w.Stop()
		if err := w.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		show := func() {
			target, _, err := eng.LatestOpenTarget(ctx, client.Path)
			switch {
			case errors.Is(err, domain.ErrNoDrawings):
				fmt.Fprintf(out, "%s  (no drawings)\n", time.Now().Format(time.TimeOnly))
			case err != nil:
				fmt.Fprintf(cmd.ErrOrStderr(), "%s  %v\n", time.Now().Format(time.TimeOnly), err)
			default:
				fmt.Fprintf(out, "%s  %s\n", time.Now().Format(time.TimeOnly), target)
			}
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (Ctrl+C to stop)\n", client.Path)
		show()
		for range w.Events() {
			show()
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "quiet period before re-reading the folder")
	rootCmd.AddCommand(watchCmd)
}
