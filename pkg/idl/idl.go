// Package idl defines the typed intermediate language the synthesizer
// searches over before it is rendered to Cypher. It is a closed set of
// statement variants — there is no open inheritance, only a sum type
// dispatched on Kind.
package idl

// Kind identifies a statement variant, used by the sketch queue and
// completer to describe program shapes before operands are assigned.
type Kind int

const (
	KindMatch Kind = iota
	KindRequire
	KindReturn
)

func (k Kind) String() string {
	switch k {
	case KindMatch:
		return "Match"
	case KindRequire:
		return "Require"
	case KindReturn:
		return "Return"
	default:
		return "Unknown"
	}
}

// Node is a single-label graph pattern variable: `(variable:label)`.
type Node struct {
	Variable string
	Label    string
}

// Relation is a single-label directed edge pattern variable:
// `-[variable:label]->`.
type Relation struct {
	Variable string
	Label    string
}

// Condition is the sum type for Require predicates. EqualTo is
// currently the only variant; the interface exists so additional
// predicate kinds (NotEqual, InSet) can be added without touching the
// transpiler's statement-level contract.
type Condition interface {
	isCondition()
}

// EqualTo asserts Variable.Property equals the literal Constant.
type EqualTo struct {
	Variable string
	Property string
	Constant string
}

func (EqualTo) isCondition() {}

// Statement is the sum type for program statements, dispatched by Kind.
// Exactly one of the payload fields is meaningful for a given Kind.
type Statement struct {
	Kind Kind

	// Match payload. Node2/Relation are nil for a single-node Match.
	Node     *Node
	Relation *Relation
	Node2    *Node

	// Require payload.
	Condition Condition

	// Return payload: parallel sequences of equal length.
	Properties []string
	Variables  []string
}

// MatchNode builds a single-node Match statement.
func MatchNode(n Node) Statement {
	return Statement{Kind: KindMatch, Node: &n}
}

// MatchTriple builds a directed node-relation-node Match statement.
func MatchTriple(n Node, r Relation, n2 Node) Statement {
	return Statement{Kind: KindMatch, Node: &n, Relation: &r, Node2: &n2}
}

// RequireEqualTo builds a Require statement over an EqualTo condition.
func RequireEqualTo(cond EqualTo) Statement {
	return Statement{Kind: KindRequire, Condition: cond}
}

// ReturnOf builds a Return statement binding each output column (in
// properties) to the variable at the same index.
func ReturnOf(properties, variables []string) Statement {
	return Statement{Kind: KindReturn, Properties: properties, Variables: variables}
}

// IsTriple reports whether a Match statement is the node-relation-node
// variant rather than the single-node variant.
func (s Statement) IsTriple() bool {
	return s.Kind == KindMatch && s.Relation != nil
}

// Program is an ordered sequence of statements. A well-formed program
// (see Shape) has at least one leading Match, zero or more Require
// statements, and exactly one trailing Return.
type Program []Statement

// Shape returns the statement kinds of a program, in order — the
// sketch this program is a ground instance of.
func (p Program) Shape() []Kind {
	kinds := make([]Kind, len(p))
	for i, s := range p {
		kinds[i] = s.Kind
	}
	return kinds
}
