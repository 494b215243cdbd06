package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Ning0612/drawfolders/internal/domain"
	"github.com/Ning0612/drawfolders/internal/engine"
)

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "List the configured roots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return render(cmd.OutOrStdout(), outputFormat, cfg.Roots, func(w io.Writer) error {
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			for _, r := range cfg.Roots {
				marker := " "
				if r.Name == root.Name {
					marker = "*"
				}
				fmt.Fprintf(tw, "%s %s\t%s\t%s\n", marker, r.Name, r.Mode, r.Path)
			}
			return tw.Flush()
		})
	},
}

var clientsCmd = &cobra.Command{
	Use:   "clients [query]",
	Short: "List client folders, optionally filtered",
	Long: `List the client folders of the selected root.

The query matches the client code, the client name or the folder name,
ignoring case and accents.

Examples:
  drawfolders clients
  drawfolders clients sao
  drawfolders --root laser clients acme`,
	RunE: func(cmd *cobra.Command, args []string) error {
		clients, err := eng.ListClients(cmd.Context(), root.Path, root.Mode)
		if err != nil {
			return err
		}
		engine.SortClients(clients)
		clients = engine.FilterClients(clients, strings.Join(args, " "))
		if clients == nil {
			clients = []domain.ClientFolder{}
		}

		return render(cmd.OutOrStdout(), outputFormat, clients, func(w io.Writer) error {
			for _, c := range clients {
				fmt.Fprintln(w, c.Name)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(rootsCmd)
	rootCmd.AddCommand(clientsCmd)
}
