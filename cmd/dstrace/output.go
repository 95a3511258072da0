package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/g-m-twostay/go-dstrace/Engines"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
)

// report is the YAML form of a run.
type report struct {
	Kind     Engines.Kind        `yaml:"kind"`
	Outcomes []*Engines.Outcome `yaml:"outcomes"`
	State    string              `yaml:"state"`
}

func write(w io.Writer, format string, e Engines.Engine, outs []*Engines.Outcome) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report{Kind: e.Kind(), Outcomes: outs, State: e.State()}); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return enc.Close()
	case formatTable:
		_, err := fmt.Fprintln(w, renderTable(e, outs))
		return err
	}
	return errors.Errorf("unknown output format %q", format)
}

// highlight colours results that report a rejected or missed operation.
func highlight(result string) string {
	switch {
	case result == "full", result == "exists", strings.HasPrefix(result, "not found"):
		return color.New(color.FgYellow).Sprint(result)
	}
	return color.New(color.FgGreen).Sprint(result)
}

func renderTable(e Engines.Engine, outs []*Engines.Outcome) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(e.Kind().String())
	tbl.AppendHeader(table.Row{"#", "Command", "Result", "Path", "Events", "State"})
	for i, o := range outs {
		tbl.AppendRow(table.Row{
			i + 1,
			strings.TrimSpace(o.Verb + " " + strings.Join(o.Args, " ")),
			highlight(o.Result),
			strings.Join(o.Path, " "),
			strings.Join(o.Events, "\n"),
			o.State,
		})
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("Total: %d commands", len(outs))})
	return tbl.Render()
}
