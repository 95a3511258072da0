// Package Engines drives every traced container through one structured command interface. Each kind has a table of
// verbs; applying a command runs the matching operation and reports its result, trace and the state it left behind.
package Engines

import (
	"io"
	"log/slog"
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	dstrace "github.com/g-m-twostay/go-dstrace"
)

var ErrUnknownVerb = errors.New("unknown verb")

// Command is one request to an engine. Args are the operands already split apart; a list operand may also be passed
// as one comma separated argument.
type Command struct {
	Verb string   `yaml:"verb" json:"verb"`
	Args []string `yaml:"args,omitempty" json:"args,omitempty"`
}

// Outcome of an applied command.
// Path holds the nodes or cells visited in order, Events the trace of the operation, and Snapshots the number of
// snapshots the trace carried. State is the engine state after the command.
type Outcome struct {
	Verb      string   `yaml:"verb" json:"verb"`
	Args      []string `yaml:"args,omitempty" json:"args,omitempty"`
	Result    string   `yaml:"result" json:"result"`
	Path      []string `yaml:"path,omitempty" json:"path,omitempty"`
	Events    []string `yaml:"events,omitempty" json:"events,omitempty"`
	Snapshots int      `yaml:"snapshots,omitempty" json:"snapshots,omitempty"`
	State     string   `yaml:"state" json:"state"`
}

// Engine owns one structure. It is not safe for concurrent use.
type Engine interface {
	Kind() Kind
	//Verbs accepted by Apply, sorted.
	Verbs() []string
	//Apply runs c. A failed command leaves the structure as it was.
	Apply(c Command) (*Outcome, error)
	//State renders the structure.
	State() string
}

type handler func(args []string) (*Outcome, error)

// engine is the verb table every kind fills in.
type engine struct {
	kind  Kind
	verbs map[string]handler
	state func() string
	log   *slog.Logger
}

var _ Engine = (*engine)(nil)

func (u *engine) Kind() Kind {
	return u.kind
}

func (u *engine) Verbs() []string {
	vs := lo.Keys(u.verbs)
	slices.Sort(vs)
	return vs
}

func (u *engine) State() string {
	return u.state()
}

func (u *engine) Apply(c Command) (*Outcome, error) {
	h, ok := u.verbs[c.Verb]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownVerb, "%s has no verb %q", u.kind, c.Verb)
	}
	o, err := h(c.Args)
	if err != nil {
		u.log.Debug("command failed", "verb", c.Verb, "args", c.Args, "err", err)
		return nil, err
	}
	o.Verb, o.Args, o.State = c.Verb, c.Args, u.state()
	u.log.Debug("command applied", "verb", c.Verb, "args", c.Args, "result", o.Result, "events", len(o.Events))
	return o, nil
}

// New engine of kind over an empty structure. A nil log discards.
func New(kind Kind, cfg Config, log *slog.Logger) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	var (
		u   *engine
		err error
	)
	switch kind {
	case KindLinkedList:
		u = newLinkedList()
	case KindStack:
		u, err = newStack(cfg.Stack)
	case KindQueue:
		u, err = newQueue(cfg.Queue)
	case KindSeqList:
		u, err = newSeqList(cfg.SeqList)
	case KindBST, KindAVL, KindRB:
		u = newTree(kind)
	case KindBPlus:
		u, err = newBPlus(cfg.BPlus)
	case KindTrie:
		u = newTrie()
	case KindHuffman:
		u = newHuffman()
	case KindHashTable:
		u, err = newHashTable(cfg.HashTable)
	default:
		return nil, errors.Wrapf(dstrace.ErrInvalidArgument, "unknown structure kind %d", kind)
	}
	if err != nil {
		return nil, err
	}
	u.kind, u.log = kind, log.With("engine", kind.String())
	return u, nil
}
