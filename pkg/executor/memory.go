package executor

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/cyphersynth/synth/pkg/example"
)

// Memory is an in-process Executor that evaluates the exact Cypher
// fragment pkg/transpile emits — fixed-direction MATCH patterns, AND-
// chained equality/null-check WHERE clauses, a single trailing RETURN
// — directly against an in-memory Example, without round-tripping
// through a real Cypher engine: the graph is held as plain Go
// slices/maps and queries are answered by walking them.
type Memory struct {
	ex *example.Example
}

// NewMemory returns a Memory executor backed by ex.
func NewMemory(ex *example.Example) *Memory {
	return &Memory{ex: ex}
}

func (m *Memory) Close() error { return nil }

// binding maps each bound variable to the properties of the entity it
// is bound to, plus the entity's identity so a variable reappearing in
// a later pattern is constrained to the same entity rather than
// silently rebound — the Cypher semantics of a repeated variable,
// including the self-joining triples the completer can emit.
type binding struct {
	props map[string]map[string]string
	ids   map[string]string
}

func emptyBinding() binding {
	return binding{props: map[string]map[string]string{}, ids: map[string]string{}}
}

// bind returns b extended with variable bound to the entity identified
// by id. ok is false when variable is already bound to a different
// entity, in which case the combination is dropped.
func (b binding) bind(variable, id string, props map[string]string) (binding, bool) {
	if bound, exists := b.ids[variable]; exists {
		return b, bound == id
	}
	next := binding{
		props: make(map[string]map[string]string, len(b.props)+1),
		ids:   make(map[string]string, len(b.ids)+1),
	}
	for k, v := range b.props {
		next.props[k] = v
	}
	for k, v := range b.ids {
		next.ids[k] = v
	}
	next.props[variable] = props
	next.ids[variable] = id
	return next, true
}

func nodeKey(label string, id int) string     { return fmt.Sprintf("n:%s#%d", label, id) }
func relationKey(label string, id int) string { return fmt.Sprintf("r:%s#%d", label, id) }

var (
	singleNodeRe = regexp.MustCompile(`^MATCH \((\w+):(\w+)\)$`)
	tripleRe     = regexp.MustCompile(`^MATCH \((\w+):(\w+)\)-\[(\w+):(\w+)\]->\((\w+):(\w+)\)$`)
)

// Execute evaluates cypher and returns the resulting table.
func (m *Memory) Execute(ctx context.Context, cypher string) (Table, error) {
	lines := strings.Split(cypher, "\n")

	bindings := []binding{emptyBinding()}
	i := 0
	for ; i < len(lines) && strings.HasPrefix(lines[i], "MATCH "); i++ {
		next, err := m.applyMatch(bindings, lines[i])
		if err != nil {
			return Table{}, err
		}
		bindings = next
	}
	if i == 0 {
		return Table{}, fmt.Errorf("%w: query has no MATCH clause", ErrUnsupportedQuery)
	}

	for i < len(lines) {
		if ctx.Err() != nil {
			return Table{}, ctx.Err()
		}
		if lines[i] != "WITH *" {
			return Table{}, fmt.Errorf("%w: expected WITH *, got %q", ErrUnsupportedQuery, lines[i])
		}
		i++
		if i >= len(lines) || !strings.HasPrefix(lines[i], "WHERE ") {
			return Table{}, fmt.Errorf("%w: expected WHERE after WITH *", ErrUnsupportedQuery)
		}
		whereExpr := strings.TrimPrefix(lines[i], "WHERE ")
		i++

		if i < len(lines) && strings.HasPrefix(lines[i], "RETURN ") {
			bindings = filterNullChecks(bindings, whereExpr)
			return m.project(bindings, strings.TrimPrefix(lines[i], "RETURN "))
		}

		filtered, err := filterEquality(bindings, whereExpr)
		if err != nil {
			return Table{}, err
		}
		bindings = filtered
	}

	return Table{}, fmt.Errorf("%w: query has no RETURN clause", ErrUnsupportedQuery)
}

func (m *Memory) applyMatch(bindings []binding, line string) ([]binding, error) {
	if g := singleNodeRe.FindStringSubmatch(line); g != nil {
		variable, label := g[1], g[2]
		var next []binding
		for _, b := range bindings {
			for _, n := range m.ex.Nodes[label] {
				if extended, ok := b.bind(variable, nodeKey(label, n.ID), n.Properties); ok {
					next = append(next, extended)
				}
			}
		}
		return next, nil
	}
	if g := tripleRe.FindStringSubmatch(line); g != nil {
		srcVar, srcLabel, relVar, relLabel, dstVar, dstLabel := g[1], g[2], g[3], g[4], g[5], g[6]
		var next []binding
		for _, b := range bindings {
			for _, r := range m.ex.Relations[relLabel] {
				if r.SrcLabel != srcLabel || r.DstLabel != dstLabel {
					continue
				}
				srcNode, ok := m.findNode(srcLabel, r.SrcID)
				if !ok {
					continue
				}
				dstNode, ok := m.findNode(dstLabel, r.DstID)
				if !ok {
					continue
				}
				extended, ok := b.bind(srcVar, nodeKey(srcLabel, srcNode.ID), srcNode.Properties)
				if !ok {
					continue
				}
				extended, ok = extended.bind(relVar, relationKey(relLabel, r.ID), r.Properties)
				if !ok {
					continue
				}
				extended, ok = extended.bind(dstVar, nodeKey(dstLabel, dstNode.ID), dstNode.Properties)
				if !ok {
					continue
				}
				next = append(next, extended)
			}
		}
		return next, nil
	}
	return nil, fmt.Errorf("%w: malformed MATCH clause %q", ErrUnsupportedQuery, line)
}

func (m *Memory) findNode(label string, id int) (example.Node, bool) {
	for _, n := range m.ex.Nodes[label] {
		if n.ID == id {
			return n, true
		}
	}
	return example.Node{}, false
}

var equalityRe = regexp.MustCompile(`^(\w+)\.(\w+) = "(.*)"$`)

var unescapeConstant = strings.NewReplacer(`\\`, `\`, `\"`, `"`)

// splitConditions splits a fused WHERE expression into its conditions
// on " AND " separators outside any double-quoted string literal, so a
// constant whose value contains the separator text stays intact.
func splitConditions(whereExpr string) []string {
	const sep = " AND "
	var clauses []string
	start := 0
	inString := false
	for i := 0; i < len(whereExpr); i++ {
		switch {
		case inString:
			switch whereExpr[i] {
			case '\\':
				i++
			case '"':
				inString = false
			}
		case whereExpr[i] == '"':
			inString = true
		case strings.HasPrefix(whereExpr[i:], sep):
			clauses = append(clauses, whereExpr[start:i])
			start = i + len(sep)
			i = start - 1
		}
	}
	return append(clauses, whereExpr[start:])
}

func filterEquality(bindings []binding, whereExpr string) ([]binding, error) {
	clauses := splitConditions(whereExpr)
	var next []binding
	for _, b := range bindings {
		ok := true
		for _, clause := range clauses {
			g := equalityRe.FindStringSubmatch(clause)
			if g == nil {
				return nil, fmt.Errorf("%w: malformed WHERE clause %q", ErrUnsupportedQuery, clause)
			}
			variable, prop, want := g[1], g[2], unescapeConstant.Replace(g[3])
			if b.props[variable][prop] != want {
				ok = false
				break
			}
		}
		if ok {
			next = append(next, b)
		}
	}
	return next, nil
}

func filterNullChecks(bindings []binding, whereExpr string) []binding {
	clauses := splitConditions(whereExpr)
	var next []binding
	for _, b := range bindings {
		ok := true
		for _, clause := range clauses {
			ref := strings.TrimSuffix(clause, " IS NOT NULL")
			dot := strings.IndexByte(ref, '.')
			if dot < 0 {
				continue
			}
			variable, prop := ref[:dot], ref[dot+1:]
			if _, present := b.props[variable][prop]; !present {
				ok = false
				break
			}
		}
		if ok {
			next = append(next, b)
		}
	}
	return next
}

func (m *Memory) project(bindings []binding, returnExpr string) (Table, error) {
	refs := strings.Split(returnExpr, ", ")
	columns := make([]string, len(refs))
	vars := make([]string, len(refs))
	props := make([]string, len(refs))
	for i, ref := range refs {
		dot := strings.IndexByte(ref, '.')
		if dot < 0 {
			return Table{}, fmt.Errorf("%w: malformed RETURN projection %q", ErrUnsupportedQuery, ref)
		}
		vars[i], props[i] = ref[:dot], ref[dot+1:]
		columns[i] = ref
	}

	rows := make([][]string, 0, len(bindings))
	for _, b := range bindings {
		row := make([]string, len(refs))
		for i := range refs {
			row[i] = b.props[vars[i]][props[i]]
		}
		rows = append(rows, row)
	}
	return Table{Columns: columns, Rows: rows}, nil
}
