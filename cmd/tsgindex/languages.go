package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/tsgindex/internal/lang"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages and how each is indexed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSTRATEGY\tEXTENSIONS")
			for _, l := range lang.All() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.ID, l.Name, l.Strategy(), strings.Join(l.Extensions, ","))
			}
			return tw.Flush()
		},
	}
}
