package main

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/g-m-twostay/go-dstrace/Engines"
)

// Script is the YAML document the script command reads.
type Script struct {
	Kind  string            `yaml:"kind"`
	Steps []Engines.Command `yaml:"steps"`
}

// parseCommand splits "verb a, b" into its verb and operands. The engine splits list operands on commas itself.
func parseCommand(s string) (Engines.Command, error) {
	fs := strings.Fields(s)
	if len(fs) == 0 {
		return Engines.Command{}, errors.New("empty command")
	}
	return Engines.Command{Verb: strings.ToLower(fs[0]), Args: fs[1:]}, nil
}

// applyAll runs cmds in order and stops at the first failure. The outcomes so far are returned with the error.
func applyAll(e Engines.Engine, cmds []Engines.Command) ([]*Engines.Outcome, error) {
	outs := make([]*Engines.Outcome, 0, len(cmds))
	for i, c := range cmds {
		o, err := e.Apply(c)
		if err != nil {
			return outs, errors.Wrapf(err, "step %d (%s)", i+1, c.Verb)
		}
		outs = append(outs, o)
	}
	return outs, nil
}

func newRunCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <kind> <command>...",
		Short: "Apply commands to a fresh structure",
		Long: `Apply each quoted command, in order, to a fresh structure of the given kind.

Examples:
  dstrace run avl "create 1, 2, 3" "insert 4" "delete 1"
  dstrace run hash_table "insert 10" "insert 21" "search 21"
  dstrace run linked_list "create 1 2 3" "insert 9 at 2" "delete last"
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.engine(args[0])
			if err != nil {
				return err
			}
			cmds := make([]Engines.Command, len(args)-1)
			for i, a := range args[1:] {
				if cmds[i], err = parseCommand(a); err != nil {
					return err
				}
			}
			outs, err := applyAll(e, cmds)
			if werr := write(cmd.OutOrStdout(), opts.format, e, outs); werr != nil {
				return werr
			}
			return err
		},
	}
}

func readScript(r io.Reader) (*Script, error) {
	s := new(Script)
	if err := yaml.NewDecoder(r).Decode(s); err != nil {
		return nil, errors.Wrap(err, "decode script")
	}
	if s.Kind == "" {
		return nil, errors.New("script has no kind")
	}
	return s, nil
}

func newScriptCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "script <file.yaml|->",
		Short: "Apply the steps of a YAML script",
		Long: `Apply the steps of a YAML script to a fresh structure.

Example script:
  kind: bplus
  steps:
    - verb: create
      args: [10, 20, 5, 6]
    - verb: delete
      args: [6]
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := io.Reader(os.Stdin)
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "open script")
				}
				defer f.Close()
				r = f
			}
			s, err := readScript(r)
			if err != nil {
				return err
			}
			e, err := opts.engine(s.Kind)
			if err != nil {
				return err
			}
			outs, err := applyAll(e, s.Steps)
			if werr := write(cmd.OutOrStdout(), opts.format, e, outs); werr != nil {
				return werr
			}
			return err
		},
	}
}
