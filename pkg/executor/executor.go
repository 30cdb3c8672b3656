// Package executor runs transpiled Cypher against a graph and returns
// the result table. Executor is the seam between the synthesizer core
// and whatever actually stores the graph; the core treats it as an
// opaque oracle over Cypher strings.
package executor

import (
	"context"
	"errors"
)

// ErrUnsupportedQuery is returned by an Executor that cannot evaluate
// a query outside the fragment the transpiler ever emits.
var ErrUnsupportedQuery = errors.New("executor: unsupported query")

// Table is a query result: a column header and its rows, in the order
// the executor produced them. Row order is not meaningful; validation
// compares tables as multisets of rows.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Executor evaluates Cypher text and returns its result table. Close
// releases any resources the implementation holds open.
type Executor interface {
	Execute(ctx context.Context, cypher string) (Table, error)
	Close() error
}
