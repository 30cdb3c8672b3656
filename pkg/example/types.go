// Package example loads the input/output example a Cypher query is
// synthesized from: a small property graph plus the result table the
// synthesized query must reproduce.
package example

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned while loading or validating an Example.
var (
	// ErrExampleUnderspecified is returned when a required part of the
	// example is missing: an empty node/relation family, or an output
	// table with no columns.
	ErrExampleUnderspecified = errors.New("example underspecified")

	// ErrUnknownExampleKind is returned when a source file's first line
	// names a kind tag other than output, node, rel, or constant.
	ErrUnknownExampleKind = errors.New("unknown example kind")
)

// Node is one row of a labeled node family. ID is unique within Label.
type Node struct {
	Label      string
	ID         int
	Properties map[string]string
}

// Relation is one row of a labeled directed-edge family. ID is unique
// within Label. The endpoints are resolved by label+id against the
// node families parsed earlier in the same Example.
type Relation struct {
	Label      string
	ID         int
	SrcLabel   string
	SrcID      int
	DstLabel   string
	DstID      int
	Properties map[string]string
}

// Row is a single row of the output table, values in header order.
type Row []string

// Example is a complete, immutable input/output example: a property
// graph, a target result table, and the constants allowed as equality
// RHS values. Once loaded it is never mutated by the synthesizer.
type Example struct {
	// NodeLabelOrder preserves the order node labels were first seen,
	// since the Symbol Table's variable numbering depends on it.
	NodeLabelOrder []string
	Nodes          map[string][]Node

	// PropertyOrder fixes, per label, the property names observed on
	// the first entity of that label — the canonical property set
	// every other entity of the label is assumed to share.
	PropertyOrder map[string][]string

	RelationLabelOrder []string
	Relations          map[string][]Relation

	OutputHeader []string
	OutputRows   []Row

	Constants []string
}

// Validate checks the invariants every Example must satisfy: at least
// one node family, no empty families, and a non-empty output header.
func (e *Example) Validate() error {
	if len(e.NodeLabelOrder) == 0 {
		return ErrExampleUnderspecified
	}
	if len(e.OutputHeader) == 0 {
		return ErrExampleUnderspecified
	}
	for _, label := range e.NodeLabelOrder {
		if len(e.Nodes[label]) == 0 {
			return ErrExampleUnderspecified
		}
	}
	for _, label := range e.RelationLabelOrder {
		if len(e.Relations[label]) == 0 {
			return ErrExampleUnderspecified
		}
	}
	// A constant with a raw newline cannot be rendered as a Cypher
	// string literal, so the example itself is rejected rather than
	// every candidate that uses it.
	for _, c := range e.Constants {
		if strings.ContainsAny(c, "\n\r") {
			return fmt.Errorf("%w: constant %q contains a raw newline", ErrExampleUnderspecified, c)
		}
	}
	return nil
}
