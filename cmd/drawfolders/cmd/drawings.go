package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Ning0612/drawfolders/internal/convention"
	"github.com/Ning0612/drawfolders/internal/domain"
	"github.com/Ning0612/drawfolders/internal/engine"
	"github.com/Ning0612/drawfolders/internal/logger"
)

type drawingRow struct {
	Name           string `json:"name" yaml:"name"`
	Path           string `json:"path" yaml:"path"`
	LatestRevision string `json:"latest_revision,omitempty" yaml:"latest_revision,omitempty"`
	Revisions      int    `json:"revisions" yaml:"revisions"`
	Latest         bool   `json:"latest" yaml:"latest"`
}

var drawingsCmd = &cobra.Command{
	Use:   "drawings <client>",
	Short: "List the drawings of a client with their latest revision",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := resolveClient(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		drawings, err := eng.ListDrawings(ctx, client.Path)
		if err != nil {
			return err
		}
		engine.SortDrawings(drawings)
		latest, _ := engine.LatestDrawing(drawings)

		rows := make([]drawingRow, 0, len(drawings))
		for _, d := range drawings {
			revisions, err := eng.ListRevisions(ctx, d.Path)
			if err != nil {
				logger.Get().Warn("skipping revisions", "drawing", d.Name, "error", err)
			}
			row := drawingRow{Name: d.Name, Path: d.Path, Revisions: len(revisions), Latest: d.Path == latest.Path}
			if rev, ok := engine.LatestRevision(revisions); ok {
				row.LatestRevision = rev.Name
			}
			rows = append(rows, row)
		}

		return render(cmd.OutOrStdout(), outputFormat, rows, func(w io.Writer) error {
			fmt.Fprintln(w, client.Name)
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			for _, r := range rows {
				marker := " "
				if r.Latest {
					marker = "*"
				}
				rev := r.LatestRevision
				if rev == "" {
					rev = "-"
				}
				fmt.Fprintf(tw, "%s %s\t%s\t%d\n", marker, r.Name, rev, r.Revisions)
			}
			return tw.Flush()
		})
	},
}

type latestResult struct {
	Client  string `json:"client" yaml:"client"`
	Drawing string `json:"drawing" yaml:"drawing"`
	Target  string `json:"target" yaml:"target"`
}

var copyTarget bool

var latestCmd = &cobra.Command{
	Use:   "latest <client>",
	Short: "Show the folder to open for the latest drawing of a client",
	Long: `Show the folder to open for the latest drawing of a client: its
latest revision, or the drawing folder itself when it has no revisions.

Examples:
  drawfolders latest 123
  drawfolders latest "sao paulo" --copy`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := resolveClient(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		target, drawing, err := eng.LatestOpenTarget(ctx, client.Path)
		if err != nil {
			return err
		}

		if copyTarget {
			if err := clipboard.WriteAll(target); err != nil {
				logger.Get().Warn("clipboard unavailable", "error", err)
				fmt.Fprintln(cmd.ErrOrStderr(), "could not copy to clipboard:", err)
			}
		}

		res := latestResult{Client: client.Name, Drawing: drawing.Name, Target: target}
		return render(cmd.OutOrStdout(), outputFormat, res, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, target)
			return err
		})
	},
}

type nextResult struct {
	Client   string `json:"client" yaml:"client"`
	Code     string `json:"code" yaml:"code"`
	Sequence int    `json:"sequence" yaml:"sequence"`
	Name     string `json:"name" yaml:"name"`
}

var nextCmd = &cobra.Command{
	Use:   "next <client>",
	Short: "Show the next free drawing number of a client",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := resolveClient(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		seq, err := eng.NextDrawingNumber(ctx, client.Path)
		if err != nil {
			return err
		}
		code := root.CodeFor(client)
		if !convention.ValidSequence(seq) {
			return fmt.Errorf("%w: %s has no drawing numbers left", domain.ErrCreationFailed, client.Name)
		}

		res := nextResult{Client: client.Name, Code: code, Sequence: seq, Name: convention.FormatDrawingName(code, seq)}
		return render(cmd.OutOrStdout(), outputFormat, res, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, res.Name)
			return err
		})
	},
}

var (
	createNumber int
	createRev0   bool
	createNoRev0 bool
)

type createResult struct {
	Client  string `json:"client" yaml:"client"`
	Drawing string `json:"drawing" yaml:"drawing"`
	Path    string `json:"path" yaml:"path"`
	Target  string `json:"target" yaml:"target"`
}

var createCmd = &cobra.Command{
	Use:   "create <client>",
	Short: "Create a new drawing folder for a client",
	Long: `Create a new drawing folder for a client.

Without --number the next free number is claimed; if another operator
takes it first, the following number is used. Rev-00 is created inside
the drawing when the root is configured for it, unless overridden.

Examples:
  drawfolders create 123
  drawfolders create acme --number 42 --no-rev0`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if createRev0 && createNoRev0 {
			return errors.New("--rev0 and --no-rev0 are mutually exclusive")
		}

		client, err := resolveClient(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		rev0 := root.CreateRevisionZero
		switch {
		case createRev0:
			rev0 = true
		case createNoRev0:
			rev0 = false
		}
		code := root.CodeFor(client)

		var drawing domain.DrawingFolder
		if cmd.Flags().Changed("number") {
			drawing, err = eng.CreateDrawing(ctx, client.Path, code, createNumber, rev0)
		} else {
			drawing, err = eng.CreateNextDrawing(ctx, client.Path, code, rev0)
		}
		if err != nil {
			return err
		}

		target, err := eng.ResolveOpenTarget(ctx, drawing.Path)
		if err != nil {
			target = drawing.Path
		}

		res := createResult{Client: client.Name, Drawing: drawing.Name, Path: drawing.Path, Target: target}
		return render(cmd.OutOrStdout(), outputFormat, res, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, target)
			return err
		})
	},
}

func init() {
	latestCmd.Flags().BoolVar(&copyTarget, "copy", false, "copy the folder path to the clipboard")

	createCmd.Flags().IntVarP(&createNumber, "number", "n", 0, "create this drawing number instead of the next free one")
	createCmd.Flags().BoolVar(&createRev0, "rev0", false, "create Rev-00 inside the drawing")
	createCmd.Flags().BoolVar(&createNoRev0, "no-rev0", false, "do not create Rev-00 inside the drawing")

	rootCmd.AddCommand(drawingsCmd)
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(createCmd)
}
