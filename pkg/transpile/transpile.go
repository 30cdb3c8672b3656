// Package transpile renders a ground IDL program to Cypher text.
// Every IDL construct has exactly one rendering.
package transpile

import (
	"fmt"
	"strings"

	"github.com/cyphersynth/synth/pkg/example"
	"github.com/cyphersynth/synth/pkg/idl"
)

// Transpile walks a ground program in statement order. Consecutive
// Require statements are fused into a single WITH */WHERE block
// rendered just before the final Return's own null-check block.
func Transpile(p idl.Program) (string, error) {
	var lines []string
	var fused []string

	for _, stmt := range p {
		switch stmt.Kind {
		case idl.KindMatch:
			lines = append(lines, renderMatch(stmt))
		case idl.KindRequire:
			cond, err := renderCondition(stmt.Condition)
			if err != nil {
				return "", err
			}
			fused = append(fused, cond)
		case idl.KindReturn:
			if len(fused) > 0 {
				lines = append(lines, "WITH *", "WHERE "+strings.Join(fused, " AND "))
			}
			returnLines, err := renderReturn(stmt)
			if err != nil {
				return "", err
			}
			lines = append(lines, returnLines...)
		}
	}

	return strings.Join(lines, "\n"), nil
}

func renderMatch(stmt idl.Statement) string {
	if stmt.Node2 == nil {
		return fmt.Sprintf("MATCH (%s:%s)", stmt.Node.Variable, stmt.Node.Label)
	}
	return fmt.Sprintf("MATCH (%s:%s)-[%s:%s]->(%s:%s)",
		stmt.Node.Variable, stmt.Node.Label,
		stmt.Relation.Variable, stmt.Relation.Label,
		stmt.Node2.Variable, stmt.Node2.Label,
	)
}

func renderCondition(cond idl.Condition) (string, error) {
	switch c := cond.(type) {
	case idl.EqualTo:
		quoted, err := quoteConstant(c.Constant)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s.%s = \"%s\"", c.Variable, c.Property, quoted), nil
	default:
		return "", fmt.Errorf("transpile: unsupported condition type %T", cond)
	}
}

func renderReturn(stmt idl.Statement) ([]string, error) {
	projections := make([]string, len(stmt.Properties))
	nullChecks := make([]string, len(stmt.Properties))
	for i := range stmt.Properties {
		proj := fmt.Sprintf("%s.%s", stmt.Variables[i], stmt.Properties[i])
		projections[i] = proj
		nullChecks[i] = proj + " IS NOT NULL"
	}
	return []string{
		"WITH *",
		"WHERE " + strings.Join(nullChecks, " AND "),
		"RETURN " + strings.Join(projections, ", "),
	}, nil
}

// quoteConstant escapes a constant for use as a double-quoted Cypher
// string literal. Raw newlines are rejected rather than escaped.
func quoteConstant(c string) (string, error) {
	if strings.ContainsAny(c, "\n\r") {
		return "", fmt.Errorf("%w: constant %q contains a raw newline", example.ErrExampleUnderspecified, c)
	}
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(c), nil
}
