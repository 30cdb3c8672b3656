// Package symtab builds the Symbol Table: the fixed set of variables,
// labels, and properties a synthesis run searches over, derived once
// from an Example and never mutated afterward.
package symtab

import (
	"fmt"

	"github.com/cyphersynth/synth/pkg/example"
	"github.com/cyphersynth/synth/pkg/idl"
)

// SymbolTable is the Example projected into IDL-ready symbols: one
// generated variable per node/relation label, the fixed return shape,
// and the constants available to Require predicates.
type SymbolTable struct {
	NodeLabels     []string
	RelationLabels []string

	// PropertiesOfLabel maps any node or relation label to its ordered
	// property names, fixed by the first entity of that label.
	PropertiesOfLabel map[string][]string

	DSLNodes     []idl.Node
	DSLRelations []idl.Relation

	// VariableToLabel inverts DSLNodes/DSLRelations for quick lookup of
	// which label a bound variable belongs to.
	VariableToLabel map[string]string

	// FixedReturn holds the output column names; variables are filled
	// in per-candidate by the Sketch Completer.
	FixedReturn []string

	Constants []string
}

// Build derives a SymbolTable from ex. It rejects an empty node or
// relation family and an empty output header with
// example.ErrExampleUnderspecified; the other checks of
// example.Example.Validate() are not repeated here.
func Build(ex *example.Example) (*SymbolTable, error) {
	st := &SymbolTable{
		PropertiesOfLabel: make(map[string][]string),
		VariableToLabel:   make(map[string]string),
	}

	for _, label := range ex.NodeLabelOrder {
		if len(ex.Nodes[label]) == 0 {
			return nil, fmt.Errorf("%w: node label %q has no entities", example.ErrExampleUnderspecified, label)
		}
		st.NodeLabels = append(st.NodeLabels, label)
		st.PropertiesOfLabel[label] = ex.PropertyOrder[label]

		variable := fmt.Sprintf("node%d", len(st.DSLNodes))
		st.DSLNodes = append(st.DSLNodes, idl.Node{Variable: variable, Label: label})
		st.VariableToLabel[variable] = label
	}

	for _, label := range ex.RelationLabelOrder {
		if len(ex.Relations[label]) == 0 {
			return nil, fmt.Errorf("%w: relation label %q has no entities", example.ErrExampleUnderspecified, label)
		}
		st.RelationLabels = append(st.RelationLabels, label)
		st.PropertiesOfLabel[label] = ex.PropertyOrder[label]

		variable := fmt.Sprintf("rel%d", len(st.DSLRelations))
		st.DSLRelations = append(st.DSLRelations, idl.Relation{Variable: variable, Label: label})
		st.VariableToLabel[variable] = label
	}

	if len(ex.OutputHeader) == 0 {
		return nil, example.ErrExampleUnderspecified
	}
	st.FixedReturn = append([]string(nil), ex.OutputHeader...)
	st.Constants = append([]string(nil), ex.Constants...)

	return st, nil
}
