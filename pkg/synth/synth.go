// Package synth is the top-level synthesis loop: it wires the sketch
// queue, sketch completer, transpiler, executor, and validator into a
// breadth-first search for a query that reproduces the target table.
package synth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/cyphersynth/synth/pkg/completer"
	"github.com/cyphersynth/synth/pkg/example"
	"github.com/cyphersynth/synth/pkg/executor"
	"github.com/cyphersynth/synth/pkg/idl"
	"github.com/cyphersynth/synth/pkg/sketch"
	"github.com/cyphersynth/synth/pkg/symtab"
	"github.com/cyphersynth/synth/pkg/transpile"
	"github.com/cyphersynth/synth/pkg/validate"
)

// ErrSearchExhausted is returned when no program reproduces the
// target table within the configured sketch-dequeue budget.
var ErrSearchExhausted = errors.New("search exhausted")

// DefaultMaxSketchDequeues bounds how many sketches a Synthesizer will
// pop off the queue before giving up, since the frontier grows without
// bound otherwise.
const DefaultMaxSketchDequeues = 10

// Result is a synthesized query: the ground program and its rendered
// Cypher text.
type Result struct {
	Program idl.Program
	Cypher  string
}

// Synthesizer searches for a Cypher query that reproduces an Example's
// target table.
type Synthesizer struct {
	// MaxSketchDequeues caps how many sketches are explored before
	// ErrSearchExhausted is returned. Zero means DefaultMaxSketchDequeues.
	MaxSketchDequeues int
	Executor          executor.Executor
}

// New returns a Synthesizer that evaluates candidates with ex.
func New(ex executor.Executor) *Synthesizer {
	return &Synthesizer{MaxSketchDequeues: DefaultMaxSketchDequeues, Executor: ex}
}

// Synthesize runs the breadth-first sketch search: dequeue a sketch,
// complete it into ground programs, transpile and execute each one in
// the completer's deterministic order, and return the first whose
// result matches ex's target table. A sketch that is exhausted
// without a match is expanded into its two successors and both are
// re-enqueued.
func (s *Synthesizer) Synthesize(ctx context.Context, ex *example.Example) (*Result, error) {
	st, err := symtab.Build(ex)
	if err != nil {
		return nil, err
	}

	limit := s.MaxSketchDequeues
	if limit <= 0 {
		limit = DefaultMaxSketchDequeues
	}

	queue := sketch.NewQueue()
	dequeues := 0
	lastSize := 0

	for dequeues < limit {
		sk, ok := queue.Pop()
		if !ok {
			break
		}
		dequeues++
		lastSize = len(sk)

		seq, err := completer.Complete(sk, st)
		if err != nil {
			return nil, fmt.Errorf("completing sketch: %w", err)
		}

		for program := range seq {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			cypher, err := transpile.Transpile(program)
			if err != nil {
				return nil, fmt.Errorf("transpiling candidate: %w", err)
			}

			table, err := s.Executor.Execute(ctx, cypher)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				// Executor failures reject the candidate, never the search.
				log.Debug().Err(err).Str("cypher", cypher).Msg("executor rejected candidate")
				continue
			}

			if validate.Matches(table, ex.OutputRows) {
				return &Result{Program: program, Cypher: cypher}, nil
			}
		}

		addRequire, addLeadingMatch := sk.Expand()
		queue.Push(addRequire)
		queue.Push(addLeadingMatch)
	}

	return nil, fmt.Errorf("%w: no program reproduced the target table within %d sketch dequeues (last sketch size %d)",
		ErrSearchExhausted, dequeues, lastSize)
}
