package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Ning0612/drawfolders/internal/adapter/local"
	"github.com/Ning0612/drawfolders/internal/config"
	"github.com/Ning0612/drawfolders/internal/datefolder"
	"github.com/Ning0612/drawfolders/internal/logger"
)

var datesDryRun bool

type datesResult struct {
	DryRun  bool                `json:"dry_run" yaml:"dry_run"`
	Renamed []datefolder.Rename `json:"renamed" yaml:"renamed"`
	Errors  []string            `json:"errors,omitempty" yaml:"errors,omitempty"`
}

var datesCmd = &cobra.Command{
	Use:   "dates <dir>",
	Short: "Rename dd-mm-yyyy folders to yyyy-mm-dd below a directory",
	Long: `Rename every folder named dd-mm-yyyy below dir to yyyy-mm-dd, so that
date folders sort chronologically. Impossible dates such as 31-02-2023 are
left alone, and so is any folder whose new name is already taken.

Examples:
  drawfolders dates "/mnt/share/Obras" --dry-run
  drawfolders dates "/mnt/share/Obras"`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationStandalone: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start := config.ExpandPath(args[0])
		fs := local.New()
		log := logger.With("command", "dates", "start", start)

		renames, planErr := datefolder.Plan(ctx, fs, start)
		if planErr != nil && renames == nil {
			return planErr
		}
		res := datesResult{DryRun: datesDryRun, Renamed: renames}
		if planErr != nil {
			log.Warn("some folders could not be scanned", "error", planErr)
			res.Errors = append(res.Errors, planErr.Error())
		}

		if !datesDryRun {
			applied := datefolder.Apply(ctx, fs, renames)
			res.Renamed = applied.Renamed
			for _, err := range applied.Errors {
				res.Errors = append(res.Errors, err.Error())
			}
			log.Info("date folders renamed", "renamed", len(applied.Renamed), "errors", len(applied.Errors))
		}
		if res.Renamed == nil {
			res.Renamed = []datefolder.Rename{}
		}

		if err := render(cmd.OutOrStdout(), outputFormat, res, func(w io.Writer) error {
			verb := "renamed"
			if datesDryRun {
				verb = "would rename"
			}
			for _, r := range res.Renamed {
				fmt.Fprintf(w, "%s %s -> %s\n", verb, r.From, filepath.Base(r.To))
			}
			fmt.Fprintf(w, "%d folders %s\n", len(res.Renamed), verb)
			for _, e := range res.Errors {
				fmt.Fprintf(w, "  error: %s\n", e)
			}
			return nil
		}); err != nil {
			return err
		}

		if len(res.Errors) > 0 {
			return fmt.Errorf("%d errors while renaming date folders", len(res.Errors))
		}
		return nil
	},
}

func init() {
	datesCmd.Flags().BoolVar(&datesDryRun, "dry-run", false, "only show what would be renamed")
	rootCmd.AddCommand(datesCmd)
}
