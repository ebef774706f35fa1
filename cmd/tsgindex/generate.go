package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/tsgindex/internal/lang"
	"github.com/dusk-indust/tsgindex/internal/tsggen"
)

func newGenerateCmd(stderr io.Writer) *cobra.Command {
	var (
		root    string
		force   bool
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "generate <language>...",
		Short: "Write stack graph rule skeletons for languages",
		Long: `Write stack-graphs.tsg, builtins.cfg and a builtins stub for each named
language under <tsg-root>/tree-sitter-stack-graphs-<id>/src. Existing
directories are left alone unless --force-overwrite is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]lang.ID, 0, len(args))
			for _, a := range args {
				id, ok := lang.Parse(a)
				if !ok {
					return fmt.Errorf("unknown language %q", a)
				}
				ids = append(ids, id)
			}

			level := slogLevel(verbose)
			gen := tsggen.New(root, force, newLogger(stderr, level))
			for _, id := range ids {
				l, _ := lang.Lookup(id)
				wrote, err := gen.Generate(l)
				if err != nil {
					return err
				}
				status := "exists"
				if wrote {
					status = "generated"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s  %s\n", l.Name, status, tsggen.Dir(gen.Root, id))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "tsg-root", tsggen.DefaultRoot, "directory for generated rule skeletons")
	cmd.Flags().BoolVar(&force, "force-overwrite", false, "replace existing rule skeletons")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log progress")
	return cmd
}
