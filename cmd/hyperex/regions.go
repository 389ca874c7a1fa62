package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ebedthan/hyperex/internal/primer"
)

func newRegionsCmd() *cobra.Command {
	var showPrimers bool
	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List built-in regions and primers",
		Example: `  hyperex regions              # region names and their primer pairs
  hyperex regions --primers    # every built-in primer with its region tag`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := primer.NewBuiltinTable()
			if showPrimers {
				return writePrimers(cmd.OutOrStdout(), t)
			}
			return writeRegions(cmd.OutOrStdout(), t)
		},
	}
	cmd.Flags().BoolVar(&showPrimers, "primers", false, "list primers instead of regions")
	return cmd
}

func writeRegions(w io.Writer, t *primer.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REGION\tFORWARD\tREVERSE\tFORWARD_SEQ\tREVERSE_SEQ")
	for _, d := range t.Regions() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			d.Name, d.Forward.Name, d.Reverse.Name, d.Forward.Sequence, d.Reverse.Sequence)
	}
	return tw.Flush()
}

func writePrimers(w io.Writer, t *primer.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRIMER\tORIENTATION\tTAG\tSEQUENCE")
	for _, p := range t.Primers() {
		tag, _ := t.Tag(p.Sequence)
		if tag == "" {
			tag = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Orientation, tag, p.Sequence)
	}
	return tw.Flush()
}
