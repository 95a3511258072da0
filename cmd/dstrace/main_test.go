package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/g-m-twostay/go-dstrace/Engines"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand(&out)
	root.SetArgs(append([]string{"--no-color"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	requireT := require.New(t)
	c, err := parseCommand("  Insert 9 at 2 ")
	requireT.NoError(err)
	requireT.Equal(Engines.Command{Verb: "insert", Args: []string{"9", "at", "2"}}, c)
	c, err = parseCommand("clear")
	requireT.NoError(err)
	requireT.Empty(c.Args)
	_, err = parseCommand(" ")
	requireT.Error(err)
}

func TestRun_YAML(t *testing.T) {
	requireT := require.New(t)
	out, err := execute(t, "run", "avl", "create 1, 2, 3", "insert 4", "--format", "yaml")
	requireT.NoError(err)

	var r struct {
		Kind     string             `yaml:"kind"`
		Outcomes []*Engines.Outcome `yaml:"outcomes"`
		State    string             `yaml:"state"`
	}
	requireT.NoError(yaml.Unmarshal([]byte(out), &r))
	requireT.Equal("avl", r.Kind)
	requireT.Len(r.Outcomes, 2)
	requireT.Equal("create", r.Outcomes[0].Verb)
	requireT.Equal([]string{"rotate_left pivot=1 subroot=2"}, r.Outcomes[0].Events)
	requireT.Equal("inserted node=4", r.Outcomes[1].Result)
	requireT.Equal("2(1,3(-,4))", r.State)
}

func TestRun_Table(t *testing.T) {
	requireT := require.New(t)
	out, err := execute(t, "run", "stack", "push 1", "pop", "pop")
	requireT.ErrorContains(err, "step 3 (pop)")
	requireT.Contains(out, "push 1")
	requireT.Contains(strings.ToUpper(out), "TOTAL: 2 COMMANDS")

	_, err = execute(t, "run", "heap", "create 1")
	requireT.ErrorContains(err, "unknown structure kind")
	_, err = execute(t, "run", "queue", "create 1", "--format", "xml")
	requireT.ErrorContains(err, "unknown output format")
}

func TestScript(t *testing.T) {
	requireT := require.New(t)
	path := filepath.Join(t.TempDir(), "script.yaml")
	requireT.NoError(os.WriteFile(path, []byte(`kind: bplus
steps:
  - verb: create
    args: [1, 2, 3]
  - verb: insert
    args: [4]
`), 0o600))
	cfg := filepath.Join(t.TempDir(), "dstrace.yaml")
	requireT.NoError(os.WriteFile(cfg, []byte("bplus:\n  order: 4\n"), 0o600))

	out, err := execute(t, "script", path, "--config", cfg, "-f", "yaml")
	requireT.NoError(err)
	var r report
	requireT.NoError(yaml.Unmarshal([]byte(out), &r))
	requireT.Equal(Engines.KindBPlus, r.Kind)
	requireT.Equal("[3] | [1, 2] [3, 4]", r.State)
	requireT.Equal([]string{"4"}, r.Outcomes[1].Args)

	_, err = readScript(strings.NewReader("steps: []\n"))
	requireT.ErrorContains(err, "no kind")
}

func TestKinds(t *testing.T) {
	requireT := require.New(t)
	out, err := execute(t, "kinds")
	requireT.NoError(err)
	for _, k := range Engines.Kinds() {
		requireT.Contains(out, k.String())
	}
	requireT.Contains(out, "random")
}
