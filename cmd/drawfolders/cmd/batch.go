package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Ning0612/drawfolders/internal/config"
	"github.com/Ning0612/drawfolders/internal/engine"
	"github.com/Ning0612/drawfolders/internal/progress"
)

var (
	batchCode string
	batchFrom int
	batchTo   int
	batchRev0 bool
)

const progressWidth = 30

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Create a range of drawing folders in any directory",
	Long: `Create the drawing folders <code>-<from> through <code>-<to> inside dir.
Folders that already exist are kept. Failures are listed at the end and do
not stop the batch.

Examples:
  drawfolders batch "/mnt/share/Desenhos/123 - Acme" --code 123 --from 1 --to 20
  drawfolders batch ./out --code 000 --from 5 --to 9 --rev0`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationStandalone: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		stderr := cmd.ErrOrStderr()
		reporter := progress.NewCallbackReporter(func(u progress.Update) {
			if outputFormat != outputText || u.Type == progress.UpdateStart {
				return
			}
			fmt.Fprintf(stderr, "\r%s %s %s", progress.FormatProgress(int64(u.Done()), int64(u.FoldersTotal), progressWidth),
				progress.FormatCount(u.Done(), u.FoldersTotal), u.CurrentFolder)
		})

		batchEngine := newEngine(engine.WithReporter(reporter))
		result, err := batchEngine.CreateBatch(cmd.Context(), config.ExpandPath(args[0]), batchCode, batchFrom, batchTo, batchRev0)
		if outputFormat == outputText && len(result.Created)+len(result.Failed) > 0 {
			fmt.Fprintln(stderr)
		}
		if err != nil {
			return err
		}

		if renderErr := render(cmd.OutOrStdout(), outputFormat, result, func(w io.Writer) error {
			fmt.Fprintf(w, "%d created, %d failed\n", len(result.Created), len(result.Failed))
			for _, f := range result.Failed {
				fmt.Fprintf(w, "  %s: %s\n", f.Name, f.Reason)
			}
			return nil
		}); renderErr != nil {
			return renderErr
		}

		if len(result.Failed) > 0 {
			return fmt.Errorf("%d of %d folders could not be created", len(result.Failed), batchTo-batchFrom+1)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchCode, "code", "", "three-digit client code (required)")
	batchCmd.Flags().IntVar(&batchFrom, "from", 1, "first drawing number")
	batchCmd.Flags().IntVar(&batchTo, "to", 1, "last drawing number, inclusive")
	batchCmd.Flags().BoolVar(&batchRev0, "rev0", false, "create Rev-00 inside every drawing")
	_ = batchCmd.MarkFlagRequired("code")

	rootCmd.AddCommand(batchCmd)
}
