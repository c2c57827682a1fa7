// Package replay runs YAML scripts of operations against an IndexedGraph and
// reports the result of every query step.
package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jzelinskie/stringz"
	"gopkg.in/yaml.v3"

	log "github.com/authzed/indexedgraph/internal/logging"
	"github.com/authzed/indexedgraph/pkg/graphassert"
	"github.com/authzed/indexedgraph/pkg/indexedgraph"
)

// ErrUnknownOperation is returned when a script names an operation that does
// not exist.
var ErrUnknownOperation = errors.New("unknown operation")

// ErrMissingKey is returned when an operation that requires a key has none.
var ErrMissingKey = errors.New("operation requires a key")

const (
	OpInsert       = "insert"
	OpInsertEdge   = "insert-edge"
	OpEdge         = "edge"
	OpGet          = "get"
	OpGetKeyValues = "get-key-values"
	OpContains     = "contains"
	OpFirst        = "first"
	OpLast         = "last"
	OpPopFirst     = "pop-first"
	OpPopLast      = "pop-last"
	OpLen          = "len"
	OpEntries      = "entries"
	OpKeys         = "keys"
	OpIndex        = "index"
	OpIter         = "iter"
	OpIterBack     = "iter-back"
	OpClear        = "clear"
)

// Operations lists every supported operation.
var Operations = []string{
	OpInsert, OpInsertEdge, OpEdge, OpGet, OpGetKeyValues, OpContains,
	OpFirst, OpLast, OpPopFirst, OpPopLast, OpLen, OpEntries, OpKeys,
	OpIndex, OpIter, OpIterBack, OpClear,
}

var keyedOperations = []string{OpInsert, OpInsertEdge, OpEdge, OpGet, OpGetKeyValues, OpContains}

// Operation is a single step of a script.
type Operation struct {
	Op    string `yaml:"op"`
	Key   string `yaml:"key,omitempty"`
	Value string `yaml:"value,omitempty"`
	To    string `yaml:"to,omitempty"`
}

// Script is an ordered list of operations.
type Script struct {
	Operations []Operation `yaml:"operations"`
}

// Load decodes and validates a script.
func Load(r io.Reader) (*Script, error) {
	var script Script
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&script); err != nil {
		if errors.Is(err, io.EOF) {
			return &script, nil
		}
		return nil, fmt.Errorf("error decoding replay script: %w", err)
	}

	for i, op := range script.Operations {
		if err := op.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	log.Info().Int("operations", len(script.Operations)).Msg("loaded replay script")
	return &script, nil
}

func (op Operation) validate() error {
	if !stringz.SliceContains(Operations, op.Op) {
		return fmt.Errorf("%w: %q", ErrUnknownOperation, op.Op)
	}
	if op.Key == "" && stringz.SliceContains(keyedOperations, op.Op) {
		return fmt.Errorf("%w: %s", ErrMissingKey, op.Op)
	}
	return nil
}

// Runner applies scripts to a graph and writes one line per step.
type Runner struct {
	graph *indexedgraph.IndexedGraph[string, string]
	out   io.Writer
}

// NewRunner returns a Runner over an empty graph.
func NewRunner(out io.Writer) *Runner {
	return &Runner{
		graph: indexedgraph.New[string, string](),
		out:   out,
	}
}

// Graph returns the graph the runner mutates.
func (r *Runner) Graph() *indexedgraph.IndexedGraph[string, string] {
	return r.graph
}

// Run applies every operation of the script in order. It stops at the first
// invalid or failing step or when the context is done.
func (r *Runner) Run(ctx context.Context, script *Script) error {
	for i, op := range script.Operations {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("replay interrupted at step %d: %w", i, err)
		}

		if err := op.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}

		result, err := r.apply(op)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}

		log.Debug().Int("step", i).Str("op", op.Op).Str("key", op.Key).Msg("applied replay step")
		if _, err := fmt.Fprintf(r.out, "%d %s %s\n", i, color.CyanString(op.Op), result); err != nil {
			return fmt.Errorf("error writing replay output: %w", err)
		}
	}
	return nil
}

func (r *Runner) apply(op Operation) (string, error) {
	g := r.graph
	switch op.Op {
	case OpInsert:
		return g.Insert(op.Key, op.Value), nil

	case OpInsertEdge:
		from, to := g.InsertEdge(op.Key, op.To)
		return from + "->" + to, nil

	case OpEdge:
		to, ok := g.Edge(op.Key)
		if !ok {
			return none(), nil
		}
		return op.Key + "->" + to, nil

	case OpGet:
		return list(g.Get(op.Key)), nil

	case OpGetKeyValues:
		return entries(g.GetKeyValues(op.Key)), nil

	case OpContains:
		return strconv.FormatBool(g.ContainsKey(op.Key)), nil

	case OpFirst:
		return entry(g.FirstKeyValue()), nil

	case OpLast:
		return entry(g.LastKeyValue()), nil

	case OpPopFirst:
		return entry(g.PopFirst()), nil

	case OpPopLast:
		return entry(g.PopLast()), nil

	case OpLen:
		return strconv.Itoa(g.Len()), nil

	case OpEntries:
		return strconv.Itoa(g.EntryCount()), nil

	case OpKeys:
		return list(g.Keys()), nil

	case OpIndex:
		copied := g.IndexCopy()
		parts := make([]string, 0, copied.Len())
		for _, key := range copied.Keys() {
			positions, _ := copied.Get(key)
			strs := make([]string, 0, len(positions))
			for _, pos := range positions {
				strs = append(strs, strconv.Itoa(pos))
			}
			parts = append(parts, key+":"+list(strs))
		}
		return "{" + strings.Join(parts, " ") + "}", nil

	case OpIter:
		var collected []indexedgraph.Entry[string, string]
		for key, value := range g.All() {
			collected = append(collected, indexedgraph.Entry[string, string]{Key: key, Value: value})
		}
		return entries(collected), nil

	case OpIterBack:
		var collected []indexedgraph.Entry[string, string]
		for key, value := range g.Backward() {
			collected = append(collected, indexedgraph.Entry[string, string]{Key: key, Value: value})
		}
		return entries(collected), nil

	case OpClear:
		g.Clear()
		return "ok", nil

	default:
		return "", graphassert.MustBugf("unhandled replay operation %q", op.Op)
	}
}

func none() string { return color.YellowString("none") }

func list(items []string) string {
	return "[" + strings.Join(items, " ") + "]"
}

func entry(key, value string, ok bool) string {
	if !ok {
		return none()
	}
	return "(" + key + "," + value + ")"
}

func entries(es []indexedgraph.Entry[string, string]) string {
	strs := make([]string, 0, len(es))
	for _, e := range es {
		strs = append(strs, entry(e.Key, e.Value, true))
	}
	return list(strs)
}
