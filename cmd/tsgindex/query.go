package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/tsgindex/internal/store"
)

func newQueryCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "query <symbol>",
		Short: "Look up a symbol in a persisted graph",
		Long: `Print the definitions and references of a symbol recorded in a graph
written with --db.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(dbPath); err != nil {
				return fmt.Errorf("no graph at %s: %w", dbPath, err)
			}
			db, err := store.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open %s: %w", dbPath, err)
			}
			defer db.Close()

			ctx := cmd.Context()
			defs, err := db.FindDefinitions(ctx, args[0])
			if err != nil {
				return err
			}
			refs, err := db.FindReferences(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(defs) == 0 && len(refs) == 0 {
				fmt.Fprintf(out, "%s: not found\n", args[0])
				return nil
			}
			for _, d := range defs {
				fmt.Fprintf(out, "def  %s  %s\n", d.File, d.ID)
			}
			for _, r := range refs {
				fmt.Fprintf(out, "ref  %s  %s\n", r.File, r.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", ".tsgindex/graph", "path of the persisted graph")
	return cmd
}
