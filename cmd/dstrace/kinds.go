package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/g-m-twostay/go-dstrace/Engines"
)

func newKindsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the structure kinds and the verbs each accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl := table.NewWriter()
			tbl.SetStyle(table.StyleLight)
			tbl.AppendHeader(table.Row{"Kind", "Verbs"})
			for _, k := range Engines.Kinds() {
				e, err := Engines.New(k, Engines.DefaultConfig(), opts.logger())
				if err != nil {
					return err
				}
				tbl.AppendRow(table.Row{k, strings.Join(e.Verbs(), ", ")})
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
			return err
		},
	}
}
