// Package completer expands one sketch into the set of ground IDL
// programs it can produce, assigning operands level by level in a
// deterministic order.
package completer

import (
	"iter"
	"sort"

	"github.com/cyphersynth/synth/pkg/idl"
	"github.com/cyphersynth/synth/pkg/sketch"
	"github.com/cyphersynth/synth/pkg/symtab"
)

// partial is one breadth-first branch: the statements accumulated so
// far and the variable environment they bind. env is kept as an
// ordered slice (insertion order of the binding Match) rather than a
// map, since map iteration order is unspecified in Go and synthesis
// must emit the same candidates in the same order on every run.
type partial struct {
	stmts idl.Program
	env   []string
}

func containsVar(env []string, v string) bool {
	for _, e := range env {
		if e == v {
			return true
		}
	}
	return false
}

func (p partial) extend(stmt idl.Statement, newVars ...string) partial {
	stmts := make(idl.Program, len(p.stmts)+1)
	copy(stmts, p.stmts)
	stmts[len(p.stmts)] = stmt

	// Dedup against the env being built, not just p.env: a self-join
	// triple names the same node variable twice and must still bind it
	// once.
	env := append([]string(nil), p.env...)
	for _, v := range newVars {
		if !containsVar(env, v) {
			env = append(env, v)
		}
	}
	return partial{stmts: stmts, env: env}
}

// Complete returns a sequence of ground programs for sk. The partial
// programs for every level before the trailing Return are built eagerly
// when Complete is called; the Return-level programs are generated
// lazily, and iteration stops as soon as the caller breaks out of the
// range loop, so a winning candidate skips the Return choices not yet
// produced.
//
// Complete returns sketch.ErrMalformed if sk does not begin with Match
// and end with Return.
func Complete(sk sketch.Sketch, st *symtab.SymbolTable) (iter.Seq[idl.Program], error) {
	if err := sk.Validate(); err != nil {
		return nil, err
	}

	partials := []partial{{}}
	for _, kind := range sk[:len(sk)-1] {
		switch kind {
		case idl.KindMatch:
			partials = expandMatch(partials, st)
		case idl.KindRequire:
			partials = expandRequire(partials, st)
		}
	}

	numColumns := len(st.FixedReturn)
	return func(yield func(idl.Program) bool) {
		for _, p := range partials {
			if !yieldReturns(p, st.FixedReturn, numColumns, yield) {
				return
			}
		}
	}, nil
}

// expandMatch extends every partial with each possible Match:
// single-node extensions precede triple extensions, and triples are
// iterated in lexicographic order over (node label index, relation
// label index, node label index).
func expandMatch(partials []partial, st *symtab.SymbolTable) []partial {
	var next []partial
	for _, p := range partials {
		for _, n := range st.DSLNodes {
			next = append(next, p.extend(idl.MatchNode(n), n.Variable))
		}
		for _, n := range st.DSLNodes {
			for _, r := range st.DSLRelations {
				for _, n2 := range st.DSLNodes {
					next = append(next, p.extend(idl.MatchTriple(n, r, n2), n.Variable, r.Variable, n2.Variable))
				}
			}
		}
	}
	return next
}

// expandRequire extends every partial with each equality predicate
// over its bound variables, their properties, and the example's
// constants. A partial with an empty environment (impossible once the
// first Match has run, but checked anyway) contributes no extensions
// at this level.
func expandRequire(partials []partial, st *symtab.SymbolTable) []partial {
	var next []partial
	for _, p := range partials {
		if len(p.env) == 0 {
			continue
		}
		for _, v := range p.env {
			label := st.VariableToLabel[v]
			for _, prop := range st.PropertiesOfLabel[label] {
				for _, c := range st.Constants {
					cond := idl.EqualTo{Variable: v, Property: prop, Constant: c}
					next = append(next, p.extend(idl.RequireEqualTo(cond)))
				}
			}
		}
	}
	return next
}

// yieldReturns emits, for partial p, one program per element of
// env^numColumns (k-fold Cartesian product with repetition), in
// lexicographic order over the variable names. Returns false if the
// caller asked to stop early.
func yieldReturns(p partial, properties []string, numColumns int, yield func(idl.Program) bool) bool {
	if len(p.env) == 0 || numColumns == 0 {
		return true
	}
	vars := append([]string(nil), p.env...)
	sort.Strings(vars)

	choice := make([]string, numColumns)
	var recurse func(i int) bool
	recurse = func(i int) bool {
		if i == numColumns {
			ret := idl.ReturnOf(properties, append([]string(nil), choice...))
			program := make(idl.Program, len(p.stmts)+1)
			copy(program, p.stmts)
			program[len(p.stmts)] = ret
			return yield(program)
		}
		for _, v := range vars {
			choice[i] = v
			if !recurse(i + 1) {
				return false
			}
		}
		return true
	}
	return recurse(0)
}
